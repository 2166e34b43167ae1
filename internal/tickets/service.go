package tickets

import (
	"context"
	"errors"
	"fmt"
	"math"

	"ticketeer/internal/eventareas"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"
	"ticketeer/pkg/logger"

	"github.com/google/uuid"
)

// Seats is the slice of the event inventory a purchase touches.
type Seats interface {
	LockEventSeat(ctx context.Context, id int64) (*eventareas.EventSeat, error)
	GetEventAreaByID(ctx context.Context, id int64) (*eventareas.EventArea, error)
	SetEventSeatState(ctx context.Context, id int64, from, to eventareas.SeatState) (bool, error)
}

// Ledger holds customer balances.
type Ledger interface {
	GetBalance(ctx context.Context, userID int64) (float64, error)
	Debit(ctx context.Context, userID int64, amount float64) error
	Credit(ctx context.Context, userID int64, amount float64) error
}

// Notifier is told about committed purchases and cancellations.
type Notifier interface {
	TicketPurchased(ctx context.Context, ticketID int64, reference string, eventSeatID, userID int64, price float64)
	TicketCancelled(ctx context.Context, ticketID int64, reference string, eventSeatID, userID int64, price float64)
}

type Service interface {
	Buy(ctx context.Context, req BuyRequest) (*PurchaseResult, error)
	// Cancel frees the seat, refunds the price and removes the ticket. A
	// non-zero userID restricts the cancel to that user's own tickets.
	Cancel(ctx context.Context, ticketID, userID int64) error
	GetTicket(ctx context.Context, ticketID, userID int64) (*Ticket, error)
	ListUserTickets(ctx context.Context, userID int64, q pagination.Query) (*pagination.Result[Ticket], error)
}

type service struct {
	repo     Repository
	tx       database.Transactor
	seats    Seats
	ledger   Ledger
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, tx database.Transactor, seats Seats, ledger Ledger, notifier Notifier) Service {
	if notifier == nil {
		notifier = notifications.NewNotifier(nil, nil)
	}
	return &service{
		repo:     repo,
		tx:       tx,
		seats:    seats,
		ledger:   ledger,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

// Buy sells a free seat. The seat row stays locked from the state check to
// the ticket insert, so of two buyers racing for one seat the second sees it
// occupied and gets ErrSeatUnavailable.
func (s *service) Buy(ctx context.Context, req BuyRequest) (*PurchaseResult, error) {
	if req.Price <= 0 {
		return nil, apperr.Invalid("ticket", "price", "must be greater than 0")
	}
	if req.UserID <= 0 {
		return nil, apperr.Invalid("ticket", "user_id", "must be greater than 0")
	}

	var result PurchaseResult
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		seat, err := s.seats.LockEventSeat(ctx, req.EventSeatID)
		if err != nil {
			return err
		}
		if seat.State != eventareas.SeatFree {
			return fmt.Errorf("event seat %d: %w", seat.ID, apperr.ErrSeatUnavailable)
		}

		area, err := s.seats.GetEventAreaByID(ctx, seat.EventAreaID)
		if err != nil {
			return err
		}
		if area.Price <= 0 {
			return apperr.Invalid("event area", "price", "must be greater than 0 before seats can be sold")
		}
		if !samePrice(area.Price, req.Price) {
			return apperr.Invalid("ticket", "price", fmt.Sprintf("does not match the current price %.2f", area.Price))
		}

		balance, err := s.ledger.GetBalance(ctx, req.UserID)
		if err != nil {
			return err
		}
		if balance < req.Price {
			result = PurchaseResult{Outcome: OutcomeInsufficientFunds, Balance: balance}
			return nil
		}

		if err := s.ledger.Debit(ctx, req.UserID, req.Price); err != nil {
			if errors.Is(err, apperr.ErrInsufficientFunds) {
				result = PurchaseResult{Outcome: OutcomeInsufficientFunds, Balance: balance}
				return nil
			}
			return fmt.Errorf("debit user %d: %w", req.UserID, err)
		}

		ok, err := s.seats.SetEventSeatState(ctx, seat.ID, eventareas.SeatFree, eventareas.SeatOccupied)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("event seat %d: %w", seat.ID, apperr.ErrSeatUnavailable)
		}

		ticket := &Ticket{
			Reference:   uuid.NewString(),
			EventSeatID: seat.ID,
			UserID:      req.UserID,
			Price:       req.Price,
		}
		if err := s.repo.CreateTicket(ctx, ticket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}

		result = PurchaseResult{Outcome: OutcomePurchased, Ticket: ticket, Balance: balance - req.Price}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if t := result.Ticket; t != nil {
		s.log.LogTicketPurchased(ctx, t.ID, t.EventSeatID, t.UserID, t.Price)
		s.notifier.TicketPurchased(ctx, t.ID, t.Reference, t.EventSeatID, t.UserID, t.Price)
	}
	return &result, nil
}

// Cancel reports ErrInconsistentState when the ticket points at a seat that
// is missing or already free.
func (s *service) Cancel(ctx context.Context, ticketID, userID int64) error {
	var ticket *Ticket
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		ticket, err = s.repo.LockTicket(ctx, ticketID)
		if err != nil {
			return err
		}
		if userID != 0 && ticket.UserID != userID {
			return apperr.NotFound("ticket", ticketID)
		}

		seat, err := s.seats.LockEventSeat(ctx, ticket.EventSeatID)
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("ticket %d references missing event seat %d: %w",
				ticket.ID, ticket.EventSeatID, apperr.ErrInconsistentState)
		}
		if err != nil {
			return err
		}
		if seat.State != eventareas.SeatOccupied {
			return fmt.Errorf("ticket %d references free event seat %d: %w",
				ticket.ID, seat.ID, apperr.ErrInconsistentState)
		}

		ok, err := s.seats.SetEventSeatState(ctx, seat.ID, eventareas.SeatOccupied, eventareas.SeatFree)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("event seat %d changed under lock: %w", seat.ID, apperr.ErrInconsistentState)
		}

		if err := s.ledger.Credit(ctx, ticket.UserID, ticket.Price); err != nil {
			return fmt.Errorf("refund user %d: %w", ticket.UserID, err)
		}
		return s.repo.DeleteTicket(ctx, ticket.ID)
	})
	if err != nil {
		return err
	}

	s.log.LogTicketCancelled(ctx, ticket.ID, ticket.EventSeatID, ticket.UserID)
	s.notifier.TicketCancelled(ctx, ticket.ID, ticket.Reference, ticket.EventSeatID, ticket.UserID, ticket.Price)
	return nil
}

func (s *service) GetTicket(ctx context.Context, ticketID, userID int64) (*Ticket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && ticket.UserID != userID {
		return nil, apperr.NotFound("ticket", ticketID)
	}
	return ticket, nil
}

func (s *service) ListUserTickets(ctx context.Context, userID int64, q pagination.Query) (*pagination.Result[Ticket], error) {
	tickets, total, err := s.repo.ListTicketsByUser(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(tickets, total, q)
	return &result, nil
}

// samePrice compares two amounts stored with two decimals.
func samePrice(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
