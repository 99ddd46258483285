package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// Roles que pueden anular pagos.
var voidPaymentRoles = []string{rbac.RoleManager.Code(), rbac.RoleAdmin.Code()}

// BillUseCase casos de uso del folio.
type BillUseCase struct {
	bills    repository.BillRepository
	checkIns repository.CheckInRepository
	advances repository.AdvanceRepository
	tx       TxRunner
	checker  PermissionChecker
	now      func() time.Time
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	bills repository.BillRepository,
	checkIns repository.CheckInRepository,
	advances repository.AdvanceRepository,
	tx TxRunner,
	checker PermissionChecker,
) *BillUseCase {
	return &BillUseCase{
		bills:    bills,
		checkIns: checkIns,
		advances: advances,
		tx:       tx,
		checker:  checker,
		now:      time.Now,
	}
}

// Create genera un folio. Si se asocia a un check-in con reserva, la tarifa pasa a ser
// la base del saldo y se aplican los anticipos de la reserva que aún no estén
// aplicados a otro folio del mismo check-in.
func (uc *BillUseCase) Create(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total_amount negativo", domain.ErrInvalidInput)
	}
	now := uc.now()
	bill := entity.NewBill(uuid.New().String(), nil, in.TotalAmount, now)
	bill.Notes = in.Notes

	var ci *entity.CheckIn
	if in.CheckInID != nil {
		var err error
		ci, err = uc.checkIns.GetByID(ctx, *in.CheckInID)
		if err != nil {
			return nil, err
		}
		if ci == nil {
			return nil, domain.ErrNotFound
		}
		bill.SetCheckIn(ci)
	}

	err := uc.tx.RunFolio(ctx, func(bills repository.BillRepository, advances repository.AdvanceRepository) error {
		if ci != nil && ci.ReservationID != nil {
			pending, err := unappliedAdvances(ctx, bills, advances, ci)
			if err != nil {
				return err
			}
			bill.SetAdvanceAmount(pending)
		}
		return bills.Create(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, nil, nil), nil
}

// unappliedAdvances anticipos de la reserva menos lo ya aplicado a folios del check-in.
func unappliedAdvances(
	ctx context.Context,
	bills repository.BillRepository,
	advances repository.AdvanceRepository,
	ci *entity.CheckIn,
) (decimal.Decimal, error) {
	list, err := advances.ListByReservation(ctx, *ci.ReservationID)
	if err != nil {
		return decimal.Zero, err
	}
	existing, err := bills.ListByCheckIn(ctx, ci.ID)
	if err != nil {
		return decimal.Zero, err
	}
	applied := decimal.Zero
	for _, b := range existing {
		applied = applied.Add(b.AdvanceAmount)
	}
	pending := sumAdvances(list).Sub(applied)
	if pending.IsNegative() {
		return decimal.Zero, nil
	}
	return pending, nil
}

// Get devuelve el folio con pagos y cargos.
func (uc *BillUseCase) Get(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.mustGet(ctx, uc.bills, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.bills.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	charges, err := uc.bills.ListCharges(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, payments, charges), nil
}

// ListByCheckIn folios del check-in.
func (uc *BillUseCase) ListByCheckIn(ctx context.Context, checkInID string) ([]dto.BillResponse, error) {
	if checkInID == "" {
		return nil, fmt.Errorf("%w: check_in_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.bills.ListByCheckIn(ctx, checkInID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBillResponse(b, nil, nil))
	}
	return out, nil
}

// AddPayment registra un pago y actualiza lo pagado del folio.
func (uc *BillUseCase) AddPayment(ctx context.Context, billID string, in dto.PaymentRequest) (*dto.BillResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
	}
	var out *entity.Bill
	err := uc.tx.RunFolio(ctx, func(bills repository.BillRepository, _ repository.AdvanceRepository) error {
		bill, err := uc.openBill(ctx, bills, billID)
		if err != nil {
			return err
		}
		now := uc.now()
		payment := &entity.Payment{
			ID:        uuid.New().String(),
			BillID:    bill.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
			CreatedBy: actor(ctx),
			CreatedAt: now,
		}
		if err := bills.AddPayment(ctx, payment); err != nil {
			return err
		}
		bill.SetPaidAmount(bill.PaidAmount.Add(in.Amount))
		bill.UpdatedAt = now
		out = bill
		return bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(out, nil, nil), nil
}

// VoidPayment anula un pago (solo gerente o administrador) y descuenta su monto.
func (uc *BillUseCase) VoidPayment(ctx context.Context, billID, paymentID string) (*dto.BillResponse, error) {
	if !uc.checker.HasAnyRole(ctx, voidPaymentRoles...) {
		return nil, domain.ErrForbidden
	}
	var out *entity.Bill
	err := uc.tx.RunFolio(ctx, func(bills repository.BillRepository, _ repository.AdvanceRepository) error {
		bill, err := uc.openBill(ctx, bills, billID)
		if err != nil {
			return err
		}
		payment, err := bills.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil || payment.BillID != bill.ID {
			return domain.ErrNotFound
		}
		if payment.IsVoided() {
			return domain.NewRuleError("pago ya anulado", payment.ID)
		}
		now := uc.now()
		payment.VoidedAt = &now
		payment.VoidedBy = actor(ctx)
		if err := bills.VoidPayment(ctx, payment); err != nil {
			return err
		}
		bill.SetPaidAmount(bill.PaidAmount.Sub(payment.Amount))
		bill.UpdatedAt = now
		out = bill
		return bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(out, nil, nil), nil
}

// AddCharge registra un cargo e incrementa el total del folio.
func (uc *BillUseCase) AddCharge(ctx context.Context, billID string, in dto.ChargeRequest) (*dto.BillResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
	}
	var out *entity.Bill
	err := uc.tx.RunFolio(ctx, func(bills repository.BillRepository, _ repository.AdvanceRepository) error {
		bill, err := uc.openBill(ctx, bills, billID)
		if err != nil {
			return err
		}
		now := uc.now()
		charge := &entity.Charge{
			ID:          uuid.New().String(),
			BillID:      bill.ID,
			Description: in.Description,
			Amount:      in.Amount,
			CreatedBy:   actor(ctx),
			CreatedAt:   now,
		}
		if err := bills.AddCharge(ctx, charge); err != nil {
			return err
		}
		bill.SetTotalAmount(bill.TotalAmount.Add(in.Amount))
		bill.UpdatedAt = now
		out = bill
		return bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(out, nil, nil), nil
}

// Split divide el folio en varios folios nuevos del mismo check-in. Requiere permiso
// FULL sobre folios. Los montos deben ser positivos y sumar exactamente el total.
// La tarifa (si el folio la usa como base) y los anticipos se reparten en proporción
// a cada parte, de modo que los saldos de las partes suman el saldo del origen. El
// folio origen queda cerrado con total, anticipos y saldo cero.
func (uc *BillUseCase) Split(ctx context.Context, billID string, in dto.SplitBillRequest) ([]dto.BillResponse, error) {
	if !uc.checker.HasModulePermission(ctx, rbac.ModuleBills, rbac.LevelFull) {
		return nil, domain.ErrForbidden
	}
	if len(in.Amounts) < 2 {
		return nil, domain.NewRuleError("división de folio", "se requieren al menos dos partes")
	}
	sum := decimal.Zero
	for i, a := range in.Amounts {
		if !a.IsPositive() {
			return nil, domain.NewRuleError("división de folio", fmt.Sprintf("la parte %d no es positiva", i+1))
		}
		sum = sum.Add(a)
	}

	var parts []*entity.Bill
	err := uc.tx.RunFolio(ctx, func(bills repository.BillRepository, _ repository.AdvanceRepository) error {
		// ── 1. Validar folio origen ───────────────────────────────────────────
		source, err := uc.openBill(ctx, bills, billID)
		if err != nil {
			return err
		}
		if !sum.Equal(source.TotalAmount) {
			return domain.NewRuleError("división de folio",
				fmt.Sprintf("las partes suman %s y el total es %s", sum.StringFixed(2), source.TotalAmount.StringFixed(2)))
		}
		if source.PaidAmount.IsPositive() {
			return domain.NewRuleError("división de folio", "el folio ya tiene pagos registrados")
		}

		// ── 2. Crear folios nuevos ────────────────────────────────────────────
		rate := source.RateBasis()
		var rateShares []decimal.Decimal
		if rate.Valid {
			rateShares = prorate(rate.Decimal, in.Amounts, source.TotalAmount)
		}
		advanceShares := prorate(source.AdvanceAmount, in.Amounts, source.TotalAmount)

		now := uc.now()
		for i, amount := range in.Amounts {
			part := entity.NewBill(uuid.New().String(), source.CheckInID, amount, now)
			part.Notes = "división de " + source.ID
			if rate.Valid {
				part.SetBasisRate(rateShares[i])
			}
			part.SetAdvanceAmount(advanceShares[i])
			if err := bills.Create(ctx, part); err != nil {
				return err
			}
			parts = append(parts, part)
		}

		// ── 3. Cerrar origen ──────────────────────────────────────────────────
		source.SetTotalAmount(decimal.Zero)
		source.SetAdvanceAmount(decimal.Zero)
		source.SetBalanceAmount(decimal.Zero)
		source.ClosedAt = &now
		source.UpdatedAt = now
		return bills.Update(ctx, source)
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.BillResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, *toBillResponse(p, nil, nil))
	}
	return out, nil
}

// prorate reparte value en proporción a amounts/total, redondeando a centavos; la
// última parte absorbe la diferencia de redondeo.
func prorate(value decimal.Decimal, amounts []decimal.Decimal, total decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(amounts))
	assigned := decimal.Zero
	for i, a := range amounts {
		if i == len(amounts)-1 {
			out[i] = value.Sub(assigned)
			break
		}
		out[i] = value.Mul(a).Div(total).Round(2)
		assigned = assigned.Add(out[i])
	}
	return out
}

func (uc *BillUseCase) mustGet(ctx context.Context, bills repository.BillRepository, id string) (*entity.Bill, error) {
	bill, err := bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return bill, nil
}

// openBill carga y bloquea un folio abierto; solo dentro de RunFolio.
func (uc *BillUseCase) openBill(ctx context.Context, bills repository.BillRepository, id string) (*entity.Bill, error) {
	bill, err := bills.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.IsClosed() {
		return nil, domain.NewRuleError("folio cerrado", bill.ID)
	}
	return bill, nil
}

func sumAdvances(list []*entity.Advance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range list {
		total = total.Add(a.Amount)
	}
	return total
}

// actor usuario autenticado que ejecuta la operación.
func actor(ctx context.Context) string {
	if p, ok := access.PrincipalFrom(ctx); ok {
		return p.Username
	}
	return "system"
}

func toBillResponse(b *entity.Bill, payments []*entity.Payment, charges []*entity.Charge) *dto.BillResponse {
	out := &dto.BillResponse{
		ID:               b.ID,
		CheckInID:        b.CheckInID,
		TotalAmount:      b.TotalAmount,
		PaidAmount:       b.PaidAmount,
		AdvanceAmount:    b.AdvanceAmount,
		BalanceAmount:    b.BalanceAmount,
		SettlementStatus: b.SettlementStatus.String(),
		Notes:            b.Notes,
		ClosedAt:         b.ClosedAt,
		CreatedAt:        b.CreatedAt,
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			Voided:    p.IsVoided(),
			CreatedAt: p.CreatedAt,
		})
	}
	for _, c := range charges {
		out.Charges = append(out.Charges, dto.ChargeResponse{
			ID:          c.ID,
			Description: c.Description,
			Amount:      c.Amount,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out
}
