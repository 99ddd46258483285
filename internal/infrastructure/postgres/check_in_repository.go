package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var _ repository.CheckInRepository = (*CheckInRepo)(nil)

const checkInColumns = `ci.id, ci.reservation_id, ci.room_id, ci.guest_name, ci.check_in_at, ci.expected_checkout,
	ci.checked_out_at, ci.status, ci.overdue, ci.created_by, ci.created_at, ci.updated_at`

// CheckInRepo implementación de CheckInRepository (usable con pool o tx).
type CheckInRepo struct {
	q Querier
}

// NewCheckInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCheckInRepository(q Querier) *CheckInRepo {
	return &CheckInRepo{q: q}
}

// Create persiste un check-in.
func (r *CheckInRepo) Create(ctx context.Context, ci *entity.CheckIn) error {
	query := `
		INSERT INTO check_ins (id, reservation_id, room_id, guest_name, check_in_at, expected_checkout,
			checked_out_at, status, overdue, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		ci.ID, ci.ReservationID, ci.RoomID, ci.GuestName, ci.CheckInAt, ci.ExpectedCheckout,
		ci.CheckedOutAt, ci.Status, ci.Overdue, ci.CreatedBy, ci.CreatedAt, ci.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert check-in: %w", err)
	}
	return nil
}

// GetByID obtiene el check-in con la reserva (id y tarifa) cargada si existe.
func (r *CheckInRepo) GetByID(ctx context.Context, id string) (*entity.CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `, res.rate
		FROM check_ins ci
		LEFT JOIN reservations res ON res.id = ci.reservation_id
		WHERE ci.id = $1`
	var rate decimal.NullDecimal
	ci, err := scanCheckIn(r.q.QueryRow(ctx, query, id), &rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	if ci.ReservationID != nil {
		ci.Reservation = &entity.Reservation{ID: *ci.ReservationID, Rate: rate}
	}
	return ci, nil
}

// GetActiveByRoom check-in activo de la habitación; nil si está libre.
func (r *CheckInRepo) GetActiveByRoom(ctx context.Context, roomID string) (*entity.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins ci WHERE ci.room_id = $1 AND ci.status = $2`
	ci, err := scanCheckIn(r.q.QueryRow(ctx, query, roomID, entity.CheckInActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active check-in: %w", err)
	}
	return ci, nil
}

// Update persiste el estado mutable del check-in.
func (r *CheckInRepo) Update(ctx context.Context, ci *entity.CheckIn) error {
	query := `
		UPDATE check_ins
		SET expected_checkout = $2, checked_out_at = $3, status = $4, overdue = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, ci.ID, ci.ExpectedCheckout, ci.CheckedOutAt, ci.Status, ci.Overdue, ci.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update check-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveDueBefore check-ins activos cuya salida prevista es anterior a t.
func (r *CheckInRepo) ListActiveDueBefore(ctx context.Context, t time.Time) ([]*entity.CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins ci
		WHERE ci.status = $1 AND ci.expected_checkout < $2
		ORDER BY ci.expected_checkout`
	rows, err := r.q.Query(ctx, query, entity.CheckInActive, t)
	if err != nil {
		return nil, fmt.Errorf("list due check-ins: %w", err)
	}
	defer rows.Close()

	var list []*entity.CheckIn
	for rows.Next() {
		ci, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		list = append(list, ci)
	}
	return list, rows.Err()
}

// scanCheckIn lee las columnas de checkInColumns seguidas de extra.
func scanCheckIn(row rowScanner, extra ...any) (*entity.CheckIn, error) {
	var ci entity.CheckIn
	dest := []any{
		&ci.ID, &ci.ReservationID, &ci.RoomID, &ci.GuestName, &ci.CheckInAt, &ci.ExpectedCheckout,
		&ci.CheckedOutAt, &ci.Status, &ci.Overdue, &ci.CreatedBy, &ci.CreatedAt, &ci.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &ci, nil
}
