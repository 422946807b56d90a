package donation

type CreateOrderRequest struct {
	Amount int64   `json:"amount" binding:"required" example:"501"`
	Note   *string `json:"note" example:"For Hanuman Jayanti"`
}

type CreateOrderResponse struct {
	OrderID    string `json:"orderId" example:"order_NXhT2eZkC1x9ab"`
	Amount     int64  `json:"amount" example:"501"`
	Key        string `json:"key" example:"rzp_live_abc123"`
	DonationID string `json:"donationId" example:"6f1c7d58-0b3a-4f2e-9a77-2f19cb2d9f10"`
}

type VerifyPaymentRequest struct {
	OrderID    string `json:"razorpay_order_id"`
	PaymentID  string `json:"razorpay_payment_id"`
	Signature  string `json:"razorpay_signature"`
	DonationID string `json:"donationId"`
}

type DonationSummary struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

type VerifyPaymentResponse struct {
	Success    bool            `json:"success"`
	ReceiptURL *string         `json:"receiptUrl"`
	Donation   DonationSummary `json:"donation"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Invalid payment signature"`
}
