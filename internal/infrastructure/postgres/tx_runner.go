package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-pms-api/internal/application/folio"
	"github.com/jhoicas/hotel-pms-api/internal/application/stays"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var (
	_ folio.TxRunner = (*TxRunner)(nil)
	_ stays.TxRunner = (*TxRunner)(nil)
)

// txBeginner lo implementan *pgxpool.Pool y pgxmock.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db txBeginner) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFolio ejecuta fn con repositorios de folios y anticipos atados a una transacción
// (división de folio, aplicación de anticipos, pagos).
func (r *TxRunner) RunFolio(ctx context.Context, fn func(bills repository.BillRepository, advances repository.AdvanceRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewBillRepository(tx), NewAdvanceRepository(tx))
	})
}

// RunStay ejecuta fn con los repositorios de estadía atados a una transacción
// (check-in y check-out mueven check-in, reserva, habitación y tarea a la vez).
func (r *TxRunner) RunStay(ctx context.Context, fn func(stays.Repos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(stays.Repos{
			CheckIns:     NewCheckInRepository(tx),
			Reservations: NewReservationRepository(tx),
			Rooms:        NewRoomRepository(tx),
			Tasks:        NewHousekeepingTaskRepository(tx),
		})
	})
}
