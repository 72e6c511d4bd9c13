package payments

// Notification is the webhook payload the gateway POSTs on every transaction
// status change. gross_amount arrives as a decimal string ("100000.00").
type Notification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	Currency          string `json:"currency"`
	StatusCode        string `json:"status_code" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
}
