package services

// ServiceError is a typed error with a machine-readable code and the HTTP
// status the transport layer should answer with. No internal identifiers or
// stack traces reach the client; Message is safe to return verbatim.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Error codes covering the order-domain taxonomy.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeIllegalState      = "ILLEGAL_STATE"
	CodeNotAuthorized     = "NOT_AUTHORIZED"
	CodePaymentGateway    = "PAYMENT_GATEWAY"
	CodeValidation        = "VALIDATION"
	CodeWebhookSignature  = "WEBHOOK_SIGNATURE"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)
