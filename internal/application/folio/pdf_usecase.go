package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// Document datos ya resueltos que necesita el generador para dibujar el folio.
type Document struct {
	HotelName   string
	Bill        *entity.Bill
	GuestName   string
	RoomID      string
	Payments    []*entity.Payment
	Charges     []*entity.Charge
	GeneratedAt time.Time
}

// PDFUseCase genera el PDF del folio.
type PDFUseCase struct {
	bills     repository.BillRepository
	generator PDFGenerator
	hotelName string
	now       func() time.Time
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(bills repository.BillRepository, generator PDFGenerator, hotelName string) *PDFUseCase {
	return &PDFUseCase{bills: bills, generator: generator, hotelName: hotelName, now: time.Now}
}

// Download devuelve (pdf, nombre de archivo). domain.ErrNotFound si el folio no existe.
func (uc *PDFUseCase) Download(ctx context.Context, billID string) ([]byte, string, error) {
	bill, err := uc.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener folio: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}
	payments, err := uc.bills.ListPayments(ctx, billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pagos: %w", err)
	}
	charges, err := uc.bills.ListCharges(ctx, billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cargos: %w", err)
	}

	doc := &Document{
		HotelName:   uc.hotelName,
		Bill:        bill,
		Payments:    payments,
		Charges:     charges,
		GeneratedAt: uc.now(),
	}
	if bill.CheckIn != nil {
		doc.GuestName = bill.CheckIn.GuestName
		doc.RoomID = bill.CheckIn.RoomID
	}

	pdf, err := uc.generator.GenerateFolio(doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return pdf, fmt.Sprintf("folio-%s.pdf", bill.ID), nil
}
