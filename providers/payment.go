package providers

import "context"

// ChargeResult is the outcome of a synchronous charge. A declined card
// yields Success=false with an ErrorCode and a nil error; errors are
// reserved for transport/gateway failures.
type ChargeResult struct {
	Success       bool
	TransactionID string
	ErrorCode     string
}

// RefundResult is the outcome of a refund request.
type RefundResult struct {
	Success  bool
	RefundID string
}

// PaymentGateway is the payment collaborator invoked inside the
// checkout transaction window and by the cancellation/refund path.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, currency, token string) (ChargeResult, error)
	Refund(ctx context.Context, transactionID string, amount float64, reason string) (RefundResult, error)
}
