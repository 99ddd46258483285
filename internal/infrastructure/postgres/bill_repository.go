package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/billing"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `b.id, b.check_in_id, b.total_amount, b.paid_amount, b.advance_amount, b.balance_amount,
	b.settlement_status, b.rate_basis, b.notes, b.closed_at, b.created_at, b.updated_at`

const billWithStayQuery = `
	SELECT ` + billColumns + `, ci.reservation_id, ci.room_id, ci.guest_name, res.rate
	FROM bills b
	LEFT JOIN check_ins ci ON ci.id = b.check_in_id
	LEFT JOIN reservations res ON res.id = ci.reservation_id
	WHERE b.id = $1`

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste un folio con sus montos derivados.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (id, check_in_id, total_amount, paid_amount, advance_amount, balance_amount,
			settlement_status, rate_basis, notes, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CheckInID, b.TotalAmount, b.PaidAmount, b.AdvanceAmount, b.BalanceAmount,
		b.SettlementStatus.String(), b.BasisRate, b.Notes, b.ClosedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene el folio con check-in y tarifa de la reserva; nil si no existe.
// Los montos derivados se devuelven tal como están persistidos.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	return r.getWithStay(ctx, billWithStayQuery, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila del folio hasta el fin de
// la transacción. Usar solo con un Querier transaccional.
func (r *BillRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Bill, error) {
	return r.getWithStay(ctx, billWithStayQuery+` FOR UPDATE OF b`, id)
}

func (r *BillRepo) getWithStay(ctx context.Context, query, id string) (*entity.Bill, error) {
	var (
		reservationID, roomID, guestName *string
		rate                             decimal.NullDecimal
	)
	b, known, err := scanBill(r.q.QueryRow(ctx, query, id), &reservationID, &roomID, &guestName, &rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if b.CheckInID != nil {
		ci := &entity.CheckIn{
			ID:            *b.CheckInID,
			ReservationID: reservationID,
			RoomID:        derefString(roomID),
			GuestName:     derefString(guestName),
		}
		if reservationID != nil {
			ci.Reservation = &entity.Reservation{ID: *reservationID, Rate: rate}
		}
		b.CheckIn = ci
	}
	if !known {
		b.RederiveStatus()
	}
	return b, nil
}

// ListByCheckIn folios de un check-in por fecha de creación.
func (r *BillRepo) ListByCheckIn(ctx context.Context, checkInID string) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills b WHERE b.check_in_id = $1 ORDER BY b.created_at`
	rows, err := r.q.Query(ctx, query, checkInID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var list []*entity.Bill
	for rows.Next() {
		b, known, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if !known {
			b.RederiveStatus()
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update persiste montos, estado y cierre del folio.
func (r *BillRepo) Update(ctx context.Context, b *entity.Bill) error {
	query := `
		UPDATE bills
		SET total_amount = $2, paid_amount = $3, advance_amount = $4, balance_amount = $5,
			settlement_status = $6, rate_basis = $7, notes = $8, closed_at = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.TotalAmount, b.PaidAmount, b.AdvanceAmount, b.BalanceAmount,
		b.SettlementStatus.String(), b.BasisRate, b.Notes, b.ClosedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPayment registra un pago.
func (r *BillRepo) AddPayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO bill_payments (id, bill_id, amount, method, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.BillID, p.Amount, p.Method, p.Reference, p.CreatedBy, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

const paymentColumns = `id, bill_id, amount, method, reference, created_by, voided_at, voided_by, created_at`

// GetPayment obtiene un pago; nil si no existe.
func (r *BillRepo) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM bill_payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// VoidPayment marca el pago como anulado. Un pago ya anulado es un conflicto.
func (r *BillRepo) VoidPayment(ctx context.Context, p *entity.Payment) error {
	query := `UPDATE bill_payments SET voided_at = $2, voided_by = $3 WHERE id = $1 AND voided_at IS NULL`
	tag, err := r.q.Exec(ctx, query, p.ID, p.VoidedAt, p.VoidedBy)
	if err != nil {
		return fmt.Errorf("void payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListPayments pagos del folio en orden de registro.
func (r *BillRepo) ListPayments(ctx context.Context, billID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM bill_payments WHERE bill_id = $1 ORDER BY created_at`, billID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// AddCharge registra un cargo.
func (r *BillRepo) AddCharge(ctx context.Context, c *entity.Charge) error {
	query := `
		INSERT INTO bill_charges (id, bill_id, description, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.BillID, c.Description, c.Amount, c.CreatedBy, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}
	return nil
}

// ListCharges cargos del folio en orden de registro.
func (r *BillRepo) ListCharges(ctx context.Context, billID string) ([]*entity.Charge, error) {
	query := `SELECT id, bill_id, description, amount, created_by, created_at FROM bill_charges WHERE bill_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	var list []*entity.Charge
	for rows.Next() {
		var c entity.Charge
		if err := rows.Scan(&c.ID, &c.BillID, &c.Description, &c.Amount, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// scanBill lee un folio; known es false si el estado persistido no se reconoce y
// debe re-derivarse una vez cargada la base (check-in y tarifa).
func scanBill(row rowScanner, extra ...any) (*entity.Bill, bool, error) {
	var b entity.Bill
	var status string
	dest := []any{
		&b.ID, &b.CheckInID, &b.TotalAmount, &b.PaidAmount, &b.AdvanceAmount, &b.BalanceAmount,
		&status, &b.BasisRate, &b.Notes, &b.ClosedAt, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, false, err
	}
	s, ok := billing.ParseSettlementStatus(status)
	b.SettlementStatus = s
	return &b, ok, nil
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	var voidedBy *string
	if err := row.Scan(&p.ID, &p.BillID, &p.Amount, &p.Method, &p.Reference, &p.CreatedBy, &p.VoidedAt, &voidedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.VoidedBy = derefString(voidedBy)
	return &p, nil
}
