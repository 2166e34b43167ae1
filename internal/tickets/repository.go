package tickets

import (
	"context"

	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicketByID(ctx context.Context, id int64) (*Ticket, error)
	LockTicket(ctx context.Context, id int64) (*Ticket, error)
	ListTicketsByUser(ctx context.Context, userID int64, q pagination.Query) ([]Ticket, int64, error)
	DeleteTicket(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTicket(ctx context.Context, ticket *Ticket) error {
	return database.Translate(database.Conn(ctx, r.db).Create(ticket).Error, "ticket", ticket.ID)
}

func (r *repository) GetTicketByID(ctx context.Context, id int64) (*Ticket, error) {
	var ticket Ticket
	if err := database.Conn(ctx, r.db).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "ticket", id)
	}
	return &ticket, nil
}

func (r *repository) LockTicket(ctx context.Context, id int64) (*Ticket, error) {
	var ticket Ticket
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, database.Translate(err, "ticket", id)
	}
	return &ticket, nil
}

func (r *repository) ListTicketsByUser(ctx context.Context, userID int64, q pagination.Query) ([]Ticket, int64, error) {
	query := database.Conn(ctx, r.db).Model(&Ticket{}).Where("user_id = ?", userID)

	var tickets []Ticket
	total, err := database.Paginate(query, q, &tickets)
	if err != nil {
		return nil, 0, database.Translate(err, "ticket", 0)
	}
	return tickets, total, nil
}

func (r *repository) DeleteTicket(ctx context.Context, id int64) error {
	n, err := database.DeleteByIDs(ctx, r.db, &Ticket{}, []int64{id})
	if err != nil {
		return database.Translate(err, "ticket", id)
	}
	if n == 0 {
		return database.Translate(gorm.ErrRecordNotFound, "ticket", id)
	}
	return nil
}
