package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx returns a context carrying tx. Repositories reading their connection
// through Conn join that transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// Conn returns the transaction carried by ctx, or base bound to ctx.
func Conn(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

// InTx runs fn inside a transaction. A transaction already carried by ctx is
// joined through a savepoint.
func InTx(ctx context.Context, base *gorm.DB, fn func(ctx context.Context) error) error {
	return Conn(ctx, base).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
