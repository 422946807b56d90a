package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics counts pipeline activity: orders opened, confirmations by
// outcome, webhook deliveries by event type.
type PaymentMetrics struct {
	OrdersCreatedTotal   prometheus.Counter
	DonationAmountTotal  prometheus.Counter
	PaymentsVerifiedTotal *prometheus.CounterVec
	WebhookEventsTotal   *prometheus.CounterVec
	ReceiptFailuresTotal prometheus.Counter
}

func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)
	return &PaymentMetrics{
		OrdersCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "donation_orders_created_total",
			Help: "Gateway orders opened for donations",
		}),
		DonationAmountTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "donation_completed_amount_rupees_total",
			Help: "Sum of completed donation amounts in rupees",
		}),
		PaymentsVerifiedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donation_payments_verified_total",
			Help: "Client-side payment confirmations by result",
		}, []string{"result"}),
		WebhookEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donation_webhook_events_total",
			Help: "Gateway webhook deliveries by event",
		}, []string{"event"}),
		ReceiptFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "donation_receipt_failures_total",
			Help: "Receipt render or upload failures (payment still succeeds)",
		}),
	}
}
