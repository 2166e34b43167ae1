package users

import (
	"context"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/database"

	"gorm.io/gorm"
)

// Repository is the balance ledger. Debit and Credit join the transaction
// carried by ctx, so a purchase moves money and seats together.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetBalance(ctx context.Context, userID int64) (float64, error)
	Debit(ctx context.Context, userID int64, amount float64) error
	Credit(ctx context.Context, userID int64, amount float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *User) error {
	return database.Translate(database.Conn(ctx, r.db).Create(user).Error, "user", user.ID)
}

func (r *repository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := database.Conn(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, database.Translate(err, "user", id)
	}
	return &user, nil
}

func (r *repository) GetBalance(ctx context.Context, userID int64) (float64, error) {
	var balances []float64
	err := database.Conn(ctx, r.db).Model(&User{}).
		Where("id = ?", userID).
		Pluck("balance", &balances).Error
	if err != nil {
		return 0, database.Translate(err, "user", userID)
	}
	if len(balances) == 0 {
		return 0, apperr.NotFound("user", userID)
	}
	return balances[0], nil
}

// Debit takes amount off the balance unless that would leave it negative.
func (r *repository) Debit(ctx context.Context, userID int64, amount float64) error {
	res := database.Conn(ctx, r.db).Model(&User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Updates(map[string]any{
			"balance": gorm.Expr("balance - ?", amount),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return database.Translate(res.Error, "user", userID)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	if _, err := r.GetBalance(ctx, userID); err != nil {
		return err
	}
	return apperr.ErrInsufficientFunds
}

func (r *repository) Credit(ctx context.Context, userID int64, amount float64) error {
	res := database.Conn(ctx, r.db).Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"balance": gorm.Expr("balance + ?", amount),
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return database.Translate(res.Error, "user", userID)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", userID)
	}
	return nil
}
