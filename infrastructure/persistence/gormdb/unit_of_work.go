package gormdb

import (
	"context"
	"fmt"

	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence"
	"foodorder/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork runs a workflow inside one GORM transaction.
// Each attempt begins a fresh transaction and commits or rolls back exactly once;
// attempts that lost a race are retried per the retry config.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retryConfig}
}

// Execute injects the transaction into ctx for repositories; a nested call reuses the
// outer transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
