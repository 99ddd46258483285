package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var (
	_ repository.RoomRepository             = (*RoomRepo)(nil)
	_ repository.HousekeepingTaskRepository = (*HousekeepingTaskRepo)(nil)
)

// RoomRepo implementación de RoomRepository (usable con pool o tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// GetByID obtiene una habitación; nil si no existe.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	var room entity.Room
	err := r.q.QueryRow(ctx, `SELECT id, number, type_code, floor, status, updated_at FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Number, &room.TypeCode, &room.Floor, &room.Status, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// List habitaciones ordenadas por número; status vacío no filtra.
func (r *RoomRepo) List(ctx context.Context, status string) ([]*entity.Room, error) {
	query := `
		SELECT id, number, type_code, floor, status, updated_at
		FROM rooms WHERE ($1 = '' OR status = $1) ORDER BY number`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var list []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Number, &room.TypeCode, &room.Floor, &room.Status, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la habitación.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE rooms SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HousekeepingTaskRepo implementación de HousekeepingTaskRepository (usable con pool o tx).
type HousekeepingTaskRepo struct {
	q Querier
}

// NewHousekeepingTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHousekeepingTaskRepository(q Querier) *HousekeepingTaskRepo {
	return &HousekeepingTaskRepo{q: q}
}

const taskColumns = `id, room_id, kind, status, assigned_to, notes, completed_at, created_at, updated_at`

// Create persiste una tarea.
func (r *HousekeepingTaskRepo) Create(ctx context.Context, t *entity.HousekeepingTask) error {
	query := `INSERT INTO housekeeping_tasks (` + taskColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.RoomID, t.Kind, t.Status, t.AssignedTo, t.Notes, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert housekeeping task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea; nil si no existe.
func (r *HousekeepingTaskRepo) GetByID(ctx context.Context, id string) (*entity.HousekeepingTask, error) {
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM housekeeping_tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get housekeeping task: %w", err)
	}
	return t, nil
}

// Update persiste estado, asignación y cierre.
func (r *HousekeepingTaskRepo) Update(ctx context.Context, t *entity.HousekeepingTask) error {
	query := `
		UPDATE housekeeping_tasks
		SET status = $2, assigned_to = $3, notes = $4, completed_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Status, t.AssignedTo, t.Notes, t.CompletedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update housekeeping task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tareas filtradas por habitación y estado (vacío no filtra), más recientes primero.
func (r *HousekeepingTaskRepo) List(ctx context.Context, roomID, status string) ([]*entity.HousekeepingTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM housekeeping_tasks
		WHERE ($1 = '' OR room_id::text = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, roomID, status)
	if err != nil {
		return nil, fmt.Errorf("list housekeeping tasks: %w", err)
	}
	defer rows.Close()

	var list []*entity.HousekeepingTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan housekeeping task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountOpenByRoom tareas no completadas de la habitación.
func (r *HousekeepingTaskRepo) CountOpenByRoom(ctx context.Context, roomID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM housekeeping_tasks WHERE room_id = $1 AND status <> $2`, roomID, entity.TaskCompleted).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open tasks: %w", err)
	}
	return n, nil
}

func scanTask(row rowScanner) (*entity.HousekeepingTask, error) {
	var t entity.HousekeepingTask
	if err := row.Scan(&t.ID, &t.RoomID, &t.Kind, &t.Status, &t.AssignedTo, &t.Notes, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
