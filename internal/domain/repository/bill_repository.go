package repository

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// BillRepository puerto de persistencia de folios, pagos y cargos.
type BillRepository interface {
	Create(ctx context.Context, b *entity.Bill) error
	// GetByID devuelve el folio con su check-in y reserva cargados para la base por tarifa.
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	// GetByIDForUpdate como GetByID, bloqueando el folio dentro de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Bill, error)
	ListByCheckIn(ctx context.Context, checkInID string) ([]*entity.Bill, error)
	Update(ctx context.Context, b *entity.Bill) error

	AddPayment(ctx context.Context, p *entity.Payment) error
	GetPayment(ctx context.Context, id string) (*entity.Payment, error)
	VoidPayment(ctx context.Context, p *entity.Payment) error
	ListPayments(ctx context.Context, billID string) ([]*entity.Payment, error)

	AddCharge(ctx context.Context, c *entity.Charge) error
	ListCharges(ctx context.Context, billID string) ([]*entity.Charge, error)
}
