package payments

import "github.com/ManuelReschke/PayHook/app/models"

// Shape identifies which payload layout a payload was matched against.
type Shape int

const (
	// ShapeMinimal is the earliest flat layout: direct field copy with
	// English/Spanish aliases and no nested objects.
	ShapeMinimal Shape = iota
	// ShapeFlat is the SQS/legacy layout with optional nested payer and
	// payment-method objects.
	ShapeFlat
	// ShapeCollector carries a collector_detail object and a
	// payment_methods array.
	ShapeCollector
)

func (s Shape) String() string {
	switch s {
	case ShapeCollector:
		return "collector"
	case ShapeFlat:
		return "flat"
	default:
		return "minimal"
	}
}

// flatMarkers are keys that only the SQS/legacy producer ever sent.
var flatMarkers = []string{
	"payment_id",
	"transactionId",
	"paymentMethod",
	"externalReference",
	"responseCode",
	"responseMessage",
	"processed_at",
}

// Detected is the result of shape detection. It is implemented only by
// CollectorPayload, FlatPayload and MinimalPayload.
type Detected interface {
	Shape() Shape
	fields() recordFields
}

// recordFields are the values a shape resolved before defaults are applied.
type recordFields struct {
	ID              string
	TransactionID   string
	Amount          float64
	Currency        string
	Status          string
	Type            string
	Description     string
	Payer           string
	Reference       string
	Timestamp       string
	ResponseCode    string
	ResponseMessage string
	PaymentMethod   string
	Tokens          *models.PaymentTokens
}

// Detect matches raw against the known shapes in priority order. Every input
// matches exactly one shape.
func Detect(raw map[string]any) Detected {
	if raw == nil {
		raw = map[string]any{}
	}
	if c, ok := matchCollector(raw); ok {
		return c
	}
	if f, ok := matchFlat(raw); ok {
		return f
	}
	return MinimalPayload{Root: raw}
}

// CollectorPayload is a payload with a collector detail object and a list of
// payment methods.
type CollectorPayload struct {
	Root      map[string]any
	Collector map[string]any
	Method    map[string]any
	Detail    map[string]any
}

func matchCollector(raw map[string]any) (CollectorPayload, bool) {
	collector, ok := asObject(raw["collector_detail"])
	if !ok {
		return CollectorPayload{}, false
	}
	methods, ok := asArray(raw["payment_methods"])
	if !ok {
		return CollectorPayload{}, false
	}
	details, _ := asArray(raw["details"])
	return CollectorPayload{
		Root:      raw,
		Collector: collector,
		Method:    firstObject(methods),
		Detail:    firstObject(details),
	}, true
}

func (CollectorPayload) Shape() Shape { return ShapeCollector }

func (p CollectorPayload) fields() recordFields {
	transactionID := firstString(p.Root, "external_transaction_id")
	if transactionID == "" {
		if gateway, ok := asObject(p.Method["gateway"]); ok {
			transactionID = firstString(gateway, "transaction_id")
		}
	}

	txType := firstString(p.Root, "type")
	if txType == "" {
		txType = firstString(p.Method, "type")
	}

	return recordFields{
		ID:              firstString(p.Root, "payment_id", "id"),
		TransactionID:   transactionID,
		Amount:          amountOf(p.Root, "amount", "transaction_amount"),
		Currency:        firstString(p.Root, "currency", "currency_id"),
		Status:          firstString(p.Root, "status"),
		Type:            txType,
		Description:     firstString(p.Detail, "description"),
		Payer:           firstString(p.Collector, "name"),
		Reference:       firstString(p.Detail, "external_reference", "reference"),
		Timestamp:       firstTimestamp(p.Root, "paid_date", "process_date", "last_update_date"),
		ResponseCode:    firstString(p.Root, "response_code"),
		ResponseMessage: firstString(p.Root, "response_message"),
		PaymentMethod: MethodLabel(
			firstString(p.Method, "media_payment_detail", "brand", "type"),
			firstString(p.Method, "last_four_digits"),
		),
		Tokens: tokensFrom(p.Method, [4]string{"token", "token_id", "pan_token", "commerce_token"}),
	}
}

// FlatPayload is the SQS/legacy payload with English or Spanish field names.
type FlatPayload struct {
	Root        map[string]any
	PayerObject map[string]any // nil when payer is a plain value
	Method      map[string]any // nil when paymentMethod is a plain value
}

func matchFlat(raw map[string]any) (FlatPayload, bool) {
	payer, payerIsObject := asObject(raw["payer"])
	if !payerIsObject && !hasAny(raw, flatMarkers...) {
		return FlatPayload{}, false
	}
	p := FlatPayload{Root: raw}
	if payerIsObject {
		p.PayerObject = payer
	}
	if method, ok := asObject(raw["paymentMethod"]); ok {
		p.Method = method
	}
	return p, true
}

func (FlatPayload) Shape() Shape { return ShapeFlat }

func (p FlatPayload) fields() recordFields {
	var payer string
	if p.PayerObject != nil {
		payer = firstString(p.PayerObject, "name", "email")
	} else {
		payer = firstString(p.Root, "payer", "pagador")
	}

	var label string
	var tokens *models.PaymentTokens
	if p.Method != nil {
		label = MethodLabel(
			firstString(p.Method, "brand", "type"),
			firstString(p.Method, "lastFourDigits"),
		)
		tokens = tokensFrom(p.Method, [4]string{"token", "tokenId", "panToken", "commerceToken"})
	} else {
		label = MaskLabel(firstString(p.Root, "paymentMethod"))
	}

	return recordFields{
		ID:              firstString(p.Root, "payment_id", "id"),
		TransactionID:   firstString(p.Root, "transactionId"),
		Amount:          amountOf(p.Root, "amount", "monto"),
		Currency:        firstString(p.Root, "currency", "moneda"),
		Status:          firstString(p.Root, "status", "estado"),
		Type:            firstString(p.Root, "type", "tipo"),
		Description:     firstString(p.Root, "description", "descripcion"),
		Payer:           payer,
		Reference:       firstString(p.Root, "externalReference", "reference", "referencia"),
		Timestamp:       firstTimestamp(p.Root, "processed_at", "timestamp"),
		ResponseCode:    firstString(p.Root, "responseCode"),
		ResponseMessage: firstString(p.Root, "responseMessage"),
		PaymentMethod:   label,
		Tokens:          tokens,
	}
}

// MinimalPayload is the earliest flat payload. Fields are copied directly.
type MinimalPayload struct {
	Root map[string]any
}

func (MinimalPayload) Shape() Shape { return ShapeMinimal }

func (p MinimalPayload) fields() recordFields {
	return recordFields{
		ID:          firstString(p.Root, "id"),
		Amount:      amountOf(p.Root, "amount", "monto"),
		Currency:    firstString(p.Root, "currency", "moneda"),
		Status:      firstString(p.Root, "status", "estado"),
		Description: firstString(p.Root, "description", "descripcion"),
		Payer:       firstString(p.Root, "payer", "pagador"),
		Reference:   firstString(p.Root, "reference", "referencia"),
		Timestamp:   firstTimestamp(p.Root, "timestamp", "fecha"),
	}
}
