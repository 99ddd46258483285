package folio_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// memDB implementa en memoria los repositorios que usa el paquete y el TxRunner.
// RunFolio trabaja sobre una copia y solo la publica si fn no falla.
type memDB struct {
	bills        map[string]*entity.Bill
	payments     map[string]*entity.Payment
	charges      map[string]*entity.Charge
	advances     map[string]*entity.Advance
	checkIns     map[string]*entity.CheckIn
	reservations map[string]*entity.Reservation
	seq          int
	locked       []string // folios leídos con bloqueo
}

func newMemDB() *memDB {
	return &memDB{
		bills:        map[string]*entity.Bill{},
		payments:     map[string]*entity.Payment{},
		charges:      map[string]*entity.Charge{},
		advances:     map[string]*entity.Advance{},
		checkIns:     map[string]*entity.CheckIn{},
		reservations: map[string]*entity.Reservation{},
	}
}

func (m *memDB) clone() *memDB {
	c := newMemDB()
	c.seq = m.seq
	c.locked = m.locked
	for k, v := range m.bills {
		cp := *v
		c.bills[k] = &cp
	}
	for k, v := range m.payments {
		cp := *v
		c.payments[k] = &cp
	}
	for k, v := range m.charges {
		c.charges[k] = v
	}
	for k, v := range m.advances {
		c.advances[k] = v
	}
	c.checkIns = m.checkIns
	c.reservations = m.reservations
	return c
}

func (m *memDB) RunFolio(_ context.Context, fn func(repository.BillRepository, repository.AdvanceRepository) error) error {
	tx := m.clone()
	if err := fn(billRepo{tx}, advanceRepo{tx}); err != nil {
		return err
	}
	*m = *tx
	return nil
}

// ─── Bills ────────────────────────────────────────────────────────────────────

type billRepo struct{ db *memDB }

func (r billRepo) Create(_ context.Context, b *entity.Bill) error {
	r.db.seq++
	cp := *b
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(r.db.seq))
	r.db.bills[b.ID] = &cp
	return nil
}

func (r billRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	b, ok := r.db.bills[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	if cp.CheckInID != nil {
		if ci, ok := r.db.checkIns[*cp.CheckInID]; ok {
			cp.CheckIn = ci
		}
	}
	return &cp, nil
}

func (r billRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Bill, error) {
	r.db.locked = append(r.db.locked, id)
	return r.GetByID(ctx, id)
}

func (r billRepo) ListByCheckIn(_ context.Context, checkInID string) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.db.bills {
		if b.CheckInID != nil && *b.CheckInID == checkInID {
			cp := *b
			cp.CheckIn = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r billRepo) Update(_ context.Context, b *entity.Bill) error {
	if _, ok := r.db.bills[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	cp.CheckIn = nil
	r.db.bills[b.ID] = &cp
	return nil
}

func (r billRepo) AddPayment(_ context.Context, p *entity.Payment) error {
	cp := *p
	r.db.payments[p.ID] = &cp
	return nil
}

func (r billRepo) GetPayment(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := r.db.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r billRepo) VoidPayment(_ context.Context, p *entity.Payment) error {
	cur, ok := r.db.payments[p.ID]
	if !ok || cur.IsVoided() {
		return domain.ErrConflict
	}
	cp := *p
	r.db.payments[p.ID] = &cp
	return nil
}

func (r billRepo) ListPayments(_ context.Context, billID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.db.payments {
		if p.BillID == billID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r billRepo) AddCharge(_ context.Context, c *entity.Charge) error {
	r.db.charges[c.ID] = c
	return nil
}

func (r billRepo) ListCharges(_ context.Context, billID string) ([]*entity.Charge, error) {
	var out []*entity.Charge
	for _, c := range r.db.charges {
		if c.BillID == billID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ─── Advances, check-ins, reservas ────────────────────────────────────────────

type advanceRepo struct{ db *memDB }

func (r advanceRepo) Create(_ context.Context, a *entity.Advance) error {
	r.db.advances[a.ID] = a
	return nil
}

func (r advanceRepo) ListByReservation(_ context.Context, reservationID string) ([]*entity.Advance, error) {
	var out []*entity.Advance
	for _, a := range r.db.advances {
		if a.ReservationID == reservationID {
			out = append(out, a)
		}
	}
	return out, nil
}

type checkInRepo struct{ db *memDB }

func (r checkInRepo) Create(_ context.Context, ci *entity.CheckIn) error {
	r.db.checkIns[ci.ID] = ci
	return nil
}

func (r checkInRepo) GetByID(_ context.Context, id string) (*entity.CheckIn, error) {
	return r.db.checkIns[id], nil
}

func (r checkInRepo) Update(_ context.Context, ci *entity.CheckIn) error {
	r.db.checkIns[ci.ID] = ci
	return nil
}

func (r checkInRepo) ListActiveDueBefore(context.Context, time.Time) ([]*entity.CheckIn, error) {
	return nil, nil
}

func (r checkInRepo) GetActiveByRoom(context.Context, string) (*entity.CheckIn, error) {
	return nil, nil
}

type reservationRepo struct{ db *memDB }

func (r reservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	r.db.reservations[res.ID] = res
	return nil
}

func (r reservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	return r.db.reservations[id], nil
}

func (r reservationRepo) List(context.Context, repository.ReservationFilter) ([]*entity.Reservation, error) {
	return nil, nil
}

func (r reservationRepo) UpdateStatus(_ context.Context, id, status string, _ time.Time) error {
	r.db.reservations[id].Status = status
	return nil
}

// ─── Checker ──────────────────────────────────────────────────────────────────

type fakeChecker struct {
	level rbac.PermissionLevel
	codes []string
}

func (f fakeChecker) HasModulePermission(_ context.Context, _ rbac.Module, level rbac.PermissionLevel) bool {
	return f.level.Allows(level)
}

func (f fakeChecker) HasAnyRole(_ context.Context, codes ...string) bool {
	for _, c := range codes {
		for _, have := range f.codes {
			if c == have {
				return true
			}
		}
	}
	return false
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }
