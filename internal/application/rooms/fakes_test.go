package rooms_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

var errDB = errors.New("conexión perdida")

type memRooms struct {
	items     map[string]*entity.Room
	failOn    map[string]bool
	listErr   error
	lastWrite time.Time
}

func newMemRooms(rooms ...*entity.Room) *memRooms {
	m := &memRooms{items: map[string]*entity.Room{}, failOn: map[string]bool{}}
	for _, r := range rooms {
		m.items[r.ID] = r
	}
	return m
}

func (m *memRooms) GetByID(_ context.Context, id string) (*entity.Room, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRooms) List(_ context.Context, status string) ([]*entity.Room, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*entity.Room
	for _, r := range m.items {
		if status == "" || r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *memRooms) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	if m.failOn[id] {
		return errDB
	}
	r, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = at
	m.lastWrite = at
	return nil
}

type memTasks struct {
	items map[string]*entity.HousekeepingTask
}

func newMemTasks(tasks ...*entity.HousekeepingTask) *memTasks {
	m := &memTasks{items: map[string]*entity.HousekeepingTask{}}
	for _, t := range tasks {
		m.items[t.ID] = t
	}
	return m
}

func (m *memTasks) Create(_ context.Context, t *entity.HousekeepingTask) error {
	m.items[t.ID] = t
	return nil
}

func (m *memTasks) GetByID(_ context.Context, id string) (*entity.HousekeepingTask, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) Update(_ context.Context, t *entity.HousekeepingTask) error {
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *memTasks) List(_ context.Context, roomID, status string) ([]*entity.HousekeepingTask, error) {
	var out []*entity.HousekeepingTask
	for _, t := range m.items {
		if (roomID == "" || t.RoomID == roomID) && (status == "" || t.Status == status) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) CountOpenByRoom(_ context.Context, roomID string) (int, error) {
	n := 0
	for _, t := range m.items {
		if t.RoomID == roomID && t.Status != entity.TaskCompleted {
			n++
		}
	}
	return n, nil
}

type memCheckIns struct {
	items map[string]*entity.CheckIn
}

func (m *memCheckIns) Create(_ context.Context, ci *entity.CheckIn) error {
	m.items[ci.ID] = ci
	return nil
}

func (m *memCheckIns) GetByID(_ context.Context, id string) (*entity.CheckIn, error) {
	return m.items[id], nil
}

func (m *memCheckIns) Update(_ context.Context, ci *entity.CheckIn) error {
	m.items[ci.ID] = ci
	return nil
}

func (m *memCheckIns) ListActiveDueBefore(_ context.Context, t time.Time) ([]*entity.CheckIn, error) {
	var out []*entity.CheckIn
	for _, ci := range m.items {
		if ci.Status == entity.CheckInActive && ci.ExpectedCheckout.Before(t) {
			out = append(out, ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCheckIns) GetActiveByRoom(_ context.Context, roomID string) (*entity.CheckIn, error) {
	for _, ci := range m.items {
		if ci.RoomID == roomID && ci.Status == entity.CheckInActive {
			return ci, nil
		}
	}
	return nil, nil
}
