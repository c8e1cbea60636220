package broadcast

import "github.com/ManuelReschke/PayHook/app/models"

// Event names understood by the dashboard client.
const (
	EventHistory    = "payments-history"
	EventNewPayment = "new-payment"
	EventGateStatus = "webhook-status"
)

// Event is a single push message. It is encoded as {"event": ..., "data": ...}.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

func HistoryEvent(payments []models.Payment) Event {
	if payments == nil {
		payments = []models.Payment{}
	}
	return Event{Name: EventHistory, Data: payments}
}

func NewPaymentEvent(p models.Payment) Event {
	return Event{Name: EventNewPayment, Data: p}
}

func GateStatusEvent(enabled bool) Event {
	return Event{Name: EventGateStatus, Data: models.GateStatus{Enabled: enabled}}
}
