package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/ManuelReschke/PayHook/app/models"
)

// Normalizer maps incoming payloads of any known shape to a canonical Payment.
type Normalizer struct {
	now   func() time.Time
	newID func() string
}

// NewNormalizer returns a Normalizer using the wall clock and random UUIDs.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now, newID: uuid.NewString}
}

// NewNormalizerWith returns a Normalizer with an injected clock and id source.
func NewNormalizerWith(now func() time.Time, newID func() string) *Normalizer {
	n := NewNormalizer()
	if now != nil {
		n.now = now
	}
	if newID != nil {
		n.newID = newID
	}
	return n
}

var defaultNormalizer = NewNormalizer()

// Normalize maps raw with the default Normalizer.
func Normalize(raw map[string]any) models.Payment {
	return defaultNormalizer.Normalize(raw)
}

// Normalize never fails: missing or malformed fields fall back to defaults.
// raw is kept unmodified as the record's RawData.
func (n *Normalizer) Normalize(raw map[string]any) models.Payment {
	if raw == nil {
		raw = map[string]any{}
	}
	return n.build(Detect(raw).fields(), raw)
}

func (n *Normalizer) build(f recordFields, raw map[string]any) models.Payment {
	id := f.ID
	if id == "" {
		id = n.newID()
	}
	ts := f.Timestamp
	if ts == "" {
		ts = n.now().UTC().Format(TimestampLayout)
	}

	return models.Payment{
		ID:              id,
		TransactionID:   f.TransactionID,
		Amount:          f.Amount,
		Currency:        orDefault(f.Currency, models.DefaultPaymentCurrency),
		Status:          orDefault(f.Status, models.DefaultPaymentStatus),
		Type:            f.Type,
		Description:     orDefault(f.Description, models.DefaultPaymentDescription),
		Payer:           orDefault(f.Payer, models.DefaultPaymentPayer),
		Reference:       f.Reference,
		Timestamp:       ts,
		ResponseCode:    f.ResponseCode,
		ResponseMessage: f.ResponseMessage,
		PaymentMethod:   f.PaymentMethod,
		Tokens:          f.Tokens,
		RawData:         raw,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
