package tickets

import "time"

// Ticket binds a user to an event seat at the price captured on purchase.
type Ticket struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Reference   string    `json:"reference" gorm:"type:varchar(36);uniqueIndex;not null"`
	EventSeatID int64     `json:"event_seat_id" gorm:"uniqueIndex;not null"`
	UserID      int64     `json:"user_id" gorm:"index;not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

type Outcome string

const (
	OutcomePurchased         Outcome = "PURCHASED"
	OutcomeInsufficientFunds Outcome = "INSUFFICIENT_FUNDS"
)

// PurchaseResult is the answer to a Buy that passed all caller checks. A
// short balance is a normal outcome, not an error.
type PurchaseResult struct {
	Outcome Outcome `json:"outcome"`
	Ticket  *Ticket `json:"ticket,omitempty"`
	Balance float64 `json:"balance"`
}

type BuyRequest struct {
	EventSeatID int64   `json:"event_seat_id" binding:"required"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"-"`
}
