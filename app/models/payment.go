package models

// Default values applied when an incoming payload does not carry the field.
const (
	DefaultPaymentCurrency    = "ARS"
	DefaultPaymentStatus      = "received"
	DefaultPaymentDescription = "Pago recibido"
	DefaultPaymentPayer       = "Desconocido"
)

// Payment is the canonical record every incoming payload shape is mapped to.
// A Payment is never mutated after normalization.
type Payment struct {
	ID              string         `json:"id"`
	TransactionID   string         `json:"transactionId,omitempty"`
	Amount          float64        `json:"amount"`
	Currency        string         `json:"currency"`
	Status          string         `json:"status"`
	Type            string         `json:"type,omitempty"`
	Description     string         `json:"description"`
	Payer           string         `json:"payer"`
	Reference       string         `json:"reference,omitempty"`
	Timestamp       string         `json:"timestamp"`
	ResponseCode    string         `json:"responseCode,omitempty"`
	ResponseMessage string         `json:"responseMessage,omitempty"`
	PaymentMethod   string         `json:"paymentMethod,omitempty"`
	Tokens          *PaymentTokens `json:"tokens,omitempty"`
	RawData         map[string]any `json:"rawData"`
}

// PaymentTokens holds the sensitive payment-method tokens copied from the
// source payload. It only exists on a Payment when at least one field is set.
type PaymentTokens struct {
	Token         string `json:"token,omitempty"`
	TokenID       string `json:"tokenId,omitempty"`
	PanToken      string `json:"panToken,omitempty"`
	CommerceToken string `json:"commerceToken,omitempty"`
}

// IsEmpty reports whether no token field is set.
func (t PaymentTokens) IsEmpty() bool {
	return t.Token == "" && t.TokenID == "" && t.PanToken == "" && t.CommerceToken == ""
}

// GateStatus is the payload of a gate-state change.
type GateStatus struct {
	Enabled bool `json:"enabled"`
}
