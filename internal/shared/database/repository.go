package database

import (
	"context"
	"errors"
	"fmt"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/pagination"

	"gorm.io/gorm"
)

// Translate maps gorm errors onto the shared error taxonomy.
func Translate(err error, entity string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Invalid(entity, "", "already exists")
	default:
		return fmt.Errorf("%s storage: %w", entity, err)
	}
}

// UpdateVersioned writes fields to the row (id, version) and bumps the
// version. It reports NotFound when the row is gone and Conflict when another
// writer got there first.
func UpdateVersioned(ctx context.Context, db *gorm.DB, model any, entity string, id, version int64, fields map[string]any) error {
	fields["version"] = gorm.Expr("version + 1")
	res := Conn(ctx, db).Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	if res.Error != nil {
		return Translate(res.Error, entity, id)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := Conn(ctx, db).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return Translate(err, entity, id)
	}
	if count == 0 {
		return apperr.NotFound(entity, id)
	}
	return apperr.Conflict(entity, id)
}

// DeleteByIDs removes the rows of model with the given ids and returns how
// many were deleted.
func DeleteByIDs(ctx context.Context, db *gorm.DB, model any, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := Conn(ctx, db).Where("id IN ?", ids).Delete(model)
	return int(res.RowsAffected), res.Error
}

// Paginate counts the rows matched by query and loads one page into dest.
func Paginate(query *gorm.DB, q pagination.Query, dest any) (int64, error) {
	q = q.Normalize()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := query.Order("id ASC").Offset(q.Offset()).Limit(q.Limit).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Exists reports whether query matches at least one row.
func Exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
