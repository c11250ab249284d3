package gormdb

import (
	"context"
	"errors"
	"strings"

	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conn returns the transaction from context if available, otherwise the default db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// locking adds FOR UPDATE when running inside a unit of work. The SQLite dialect drops
// the clause.
func locking(ctx context.Context, db *gorm.DB) *gorm.DB {
	if persistence.TxFromContext(ctx) != nil {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// inTx runs fn on the unit of work's transaction, or opens one when called standalone.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// translate maps a GORM error onto the domain error model.
func translate(entity string, notFound shared.Kind, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewError(notFound, entity, "")
	case isDuplicate(err):
		return shared.NewConflictError(entity, err)
	default:
		return shared.Wrap(shared.KindInternal, entity, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
