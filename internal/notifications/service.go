package notifications

import (
	"context"

	"ticketeer/internal/shared/clock"
	"ticketeer/pkg/logger"
)

// Notifier turns committed ticket changes into published events. Delivery is
// best effort: a failure is logged and never reaches the buyer.
type Notifier struct {
	publisher Publisher
	clock     clock.Clock
	log       *logger.Logger
}

func NewNotifier(publisher Publisher, clk clock.Clock) *Notifier {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Notifier{publisher: publisher, clock: clk, log: logger.GetDefault()}
}

func (n *Notifier) TicketPurchased(ctx context.Context, ticketID int64, reference string, eventSeatID, userID int64, price float64) {
	n.publish(ctx, NewTicketEvent(TicketEventPurchased, ticketID, reference, eventSeatID, userID, price, n.clock.Now()))
}

func (n *Notifier) TicketCancelled(ctx context.Context, ticketID int64, reference string, eventSeatID, userID int64, price float64) {
	n.publish(ctx, NewTicketEvent(TicketEventCancelled, ticketID, reference, eventSeatID, userID, price, n.clock.Now()))
}

func (n *Notifier) publish(ctx context.Context, event *TicketEvent) {
	if err := n.publisher.PublishTicketEvent(ctx, event); err != nil {
		n.log.WarnContext(ctx, "ticket event not published",
			"type", event.Type, "ticket_id", event.TicketID, "user_id", event.UserID, "error", err)
	}
}
