package notifications

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type TicketEventType string

const (
	TicketEventPurchased TicketEventType = "TICKET_PURCHASED"
	TicketEventCancelled TicketEventType = "TICKET_CANCELLED"
)

// TicketEvent is the message published after a purchase or cancellation has
// committed. Downstream consumers (mail, analytics) key on UserID.
type TicketEvent struct {
	ID              uuid.UUID       `json:"id"`
	Type            TicketEventType `json:"type"`
	TicketID        int64           `json:"ticket_id"`
	TicketReference string          `json:"ticket_reference"`
	EventSeatID     int64           `json:"event_seat_id"`
	UserID          int64           `json:"user_id"`
	Price           float64         `json:"price"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// NewTicketEvent stamps a fresh id and time on a ticket event.
func NewTicketEvent(t TicketEventType, ticketID int64, reference string, eventSeatID, userID int64, price float64, now time.Time) *TicketEvent {
	return &TicketEvent{
		ID:              uuid.New(),
		Type:            t,
		TicketID:        ticketID,
		TicketReference: reference,
		EventSeatID:     eventSeatID,
		UserID:          userID,
		Price:           price,
		OccurredAt:      now.UTC(),
	}
}

func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps every event of one user on one partition, in order.
func (e *TicketEvent) PartitionKey() string {
	return strconv.FormatInt(e.UserID, 10)
}
