// Package pdf genera el folio imprimible de un huésped.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hotel                │  N° Folio + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HUÉSPED: Nombre + Habitación + Check-in                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CARGOS: Fecha | Descripción | Valor                         │
//	│  PAGOS:  Fecha | Método | Referencia | Valor                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Anticipos / SALDO + Estado        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/application/folio"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoided  = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa folio.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ folio.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateFolio genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateFolio(doc *folio.Document) ([]byte, error) {
	if doc == nil || doc.Bill == nil {
		return nil, fmt.Errorf("pdf: documento sin folio")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Folio "+doc.Bill.ID, true).
		WithAuthor(nonEmpty(doc.HotelName, "Hotel"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(guestRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CARGOS"))
	m.AddRows(chargeRows(doc.Charges)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PAGOS"))
	m.AddRows(paymentRows(doc.Payments)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Bill))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *folio.Document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.HotelName, "Hotel"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado de cuenta del huésped", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FOLIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Bill.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func guestRow(doc *folio.Document) core.Row {
	checkIn := "-"
	if ci := doc.Bill.CheckIn; ci != nil {
		checkIn = ci.CheckInAt.Format("02/01/2006") + " → " + ci.ExpectedCheckout.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("HUÉSPED", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.GuestName, "Sin huésped asociado"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Habitación: %s   |   Estadía: %s",
				nonEmpty(doc.RoomID, "-"), checkIn,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func chargeRows(charges []*entity.Charge) []core.Row {
	if len(charges) == 0 {
		return []core.Row{emptyRow("Sin cargos registrados")}
	}
	rows := make([]core.Row, 0, len(charges))
	for _, ch := range charges {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(ch.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(ch.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New("$"+money(ch.Amount), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// paymentRows lista también los pagos anulados, marcados en rojo.
func paymentRows(payments []*entity.Payment) []core.Row {
	if len(payments) == 0 {
		return []core.Row{emptyRow("Sin pagos registrados")}
	}
	rows := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		color := colorGray
		method := p.Method
		if p.IsVoided() {
			color = colorVoided
			method += " (ANULADO)"
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(p.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(method, props.Text{Size: 8, Top: 1, Left: 1, Color: color})),
			col.New(4).Add(text.New(nonEmpty(p.Reference, "-"), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New("$"+money(p.Amount), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color,
			})),
		))
	}
	return rows
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

func totalsRow(b *entity.Bill) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	basis, basisValue := "Total del folio:", b.TotalAmount
	if r := b.RateBasis(); r.Valid {
		basis, basisValue = "Tarifa de la estadía:", r.Decimal
	}

	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label(basis),
			label("Pagado:"),
			label("Anticipos:"),
			label("SALDO:"),
			label("Estado:"),
		),
		col.New(4).Add(
			value("$"+money(basisValue)),
			value("$"+money(b.PaidAmount)),
			value("$"+money(b.AdvanceAmount)),
			grand("$"+money(b.BalanceAmount)),
			grand(b.SettlementStatus.String()),
		),
	)
}

// footerRow incluye un QR con el id del folio para buscarlo en recepción.
func footerRow(doc *folio.Document) core.Row {
	legend := "Conserve este documento como soporte de su estadía."
	if doc.Bill.IsClosed() {
		legend = "Folio cerrado el " + doc.Bill.ClosedAt.Format("02/01/2006") + ". " + legend
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(doc.Bill.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New(legend, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y dos decimales.
// Ej: 1234567.5 → "1.234.567,50"
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := formatThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
