package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var _ repository.AdvanceRepository = (*AdvanceRepo)(nil)

// AdvanceRepo implementación de AdvanceRepository (usable con pool o tx).
type AdvanceRepo struct {
	q Querier
}

// NewAdvanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdvanceRepository(q Querier) *AdvanceRepo {
	return &AdvanceRepo{q: q}
}

// Create persiste un anticipo.
func (r *AdvanceRepo) Create(ctx context.Context, a *entity.Advance) error {
	query := `
		INSERT INTO advances (id, reservation_id, check_in_id, amount, method, reference, received_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, a.ID, a.ReservationID, a.CheckInID, a.Amount, a.Method, a.Reference, a.ReceivedBy, a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert advance: %w", err)
	}
	return nil
}

// ListByReservation anticipos de la reserva en orden de cobro.
func (r *AdvanceRepo) ListByReservation(ctx context.Context, reservationID string) ([]*entity.Advance, error) {
	query := `
		SELECT id, reservation_id, check_in_id, amount, method, reference, received_by, created_at
		FROM advances WHERE reservation_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list advances: %w", err)
	}
	defer rows.Close()

	var list []*entity.Advance
	for rows.Next() {
		var a entity.Advance
		if err := rows.Scan(&a.ID, &a.ReservationID, &a.CheckInID, &a.Amount, &a.Method, &a.Reference, &a.ReceivedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan advance: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
