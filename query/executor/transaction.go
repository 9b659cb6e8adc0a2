package executor

import (
	"context"
	"database/sql"
	"fmt"
)

// TxBeginner starts transactions; *sql.DB and *sql.Conn implement it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTx runs fn with an executor bound to a new transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (e *Executor) RunInTx(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(tx *Executor) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	txExec := &Executor{
		db:        tx,
		compiler:  e.compiler,
		generator: e.generator,
		logger:    e.logger,
	}
	if err := fn(txExec); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
