package razorpay

import (
	"fmt"

	rzpsdk "github.com/razorpay/razorpay-go"
)

// Order is the slice of the gateway's order entity the service cares about.
type Order struct {
	ID          string
	AmountPaise int64
}

// Client wraps the Razorpay SDK behind a small surface so services can be
// tested against a fake gateway.
type Client struct {
	sdk   *rzpsdk.Client
	keyID string
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{sdk: rzpsdk.NewClient(keyID, keySecret), keyID: keyID}
}

// KeyID is the publishable key the browser checkout needs.
func (c *Client) KeyID() string { return c.keyID }

// CreateOrder requests a gateway order for the given amount in paise.
func (c *Client) CreateOrder(amountPaise int64, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}

	amount := amountPaise
	switch v := body["amount"].(type) {
	case float64:
		amount = int64(v)
	case int64:
		amount = v
	}

	return &Order{ID: id, AmountPaise: amount}, nil
}
