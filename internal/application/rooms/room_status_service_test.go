package rooms_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-pms-api/internal/application/rooms"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
)

func TestProcessAutomaticRoomStatusUpdates(t *testing.T) {
	done := time.Now().Add(-time.Hour)
	roomsRepo := newMemRooms(
		&entity.Room{ID: "r1", Number: "101", Status: entity.RoomCheckedOut},
		&entity.Room{ID: "r2", Number: "102", Status: entity.RoomCheckedOut},
		&entity.Room{ID: "r3", Number: "103", Status: entity.RoomCheckedOut},
		&entity.Room{ID: "r4", Number: "104", Status: entity.RoomOccupied},
	)
	roomsRepo.failOn["r3"] = true
	tasks := newMemTasks(
		&entity.HousekeepingTask{ID: "t1", RoomID: "r1", Status: entity.TaskCompleted, CompletedAt: &done},
		&entity.HousekeepingTask{ID: "t2", RoomID: "r2", Status: entity.TaskPending},
		&entity.HousekeepingTask{ID: "t3", RoomID: "r2", Status: entity.TaskInProgress},
	)
	svc := rooms.NewRoomStatusService(roomsRepo, tasks, &memCheckIns{items: map[string]*entity.CheckIn{}}, logger.Nop())

	res, err := svc.ProcessAutomaticRoomStatusUpdates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalProcessed)
	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, 2, res.Failed)
	assert.False(t, res.ProcessingDate.IsZero())

	assert.Equal(t, entity.RoomAvailable, roomsRepo.items["r1"].Status)
	assert.Equal(t, entity.RoomCheckedOut, roomsRepo.items["r2"].Status)
	assert.Equal(t, entity.RoomOccupied, roomsRepo.items["r4"].Status)

	require.Len(t, res.Details, 3)
	assert.True(t, res.Details[0].Success)
	assert.Equal(t, entity.RoomAvailable, res.Details[0].NewStatus)
	assert.Contains(t, res.Details[1].Reason, "2 tareas")
	assert.Equal(t, errDB.Error(), res.Details[2].Reason)
}

func TestProcessAutomaticRoomStatusUpdates_LogueaDetallePorHabitacion(t *testing.T) {
	roomsRepo := newMemRooms(
		&entity.Room{ID: "r1", Number: "101", Status: entity.RoomCheckedOut},
		&entity.Room{ID: "r2", Number: "102", Status: entity.RoomCheckedOut},
	)
	tasks := newMemTasks(&entity.HousekeepingTask{ID: "t1", RoomID: "r2", Status: entity.TaskPending})
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})
	svc := rooms.NewRoomStatusService(roomsRepo, tasks, &memCheckIns{items: map[string]*entity.CheckIn{}}, log)

	_, err := svc.ProcessAutomaticRoomStatusUpdates(context.Background())
	require.NoError(t, err)

	var entry struct {
		Level   string `json:"level"`
		Total   int    `json:"total"`
		Failed  int    `json:"failed"`
		Details []struct {
			RoomID     string `json:"room_id"`
			RoomNumber string `json:"room_number"`
			Success    bool   `json:"success"`
			NewStatus  string `json:"new_status"`
			Reason     string `json:"reason"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, 2, entry.Total)
	assert.Equal(t, 1, entry.Failed)
	require.Len(t, entry.Details, 2)
	assert.Equal(t, "101", entry.Details[0].RoomNumber)
	assert.True(t, entry.Details[0].Success)
	assert.Equal(t, entity.RoomAvailable, entry.Details[0].NewStatus)
	assert.Equal(t, "r2", entry.Details[1].RoomID)
	assert.Contains(t, entry.Details[1].Reason, "1 tareas")
}

func TestProcessAutomaticRoomStatusUpdates_SinHabitaciones(t *testing.T) {
	svc := rooms.NewRoomStatusService(newMemRooms(), newMemTasks(), &memCheckIns{items: map[string]*entity.CheckIn{}}, logger.Nop())
	res, err := svc.ProcessAutomaticRoomStatusUpdates(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.TotalProcessed)
	assert.NotNil(t, res.Details)
}

func TestProcessAutomaticRoomStatusUpdates_ErrorAlListar(t *testing.T) {
	roomsRepo := newMemRooms()
	roomsRepo.listErr = errDB
	svc := rooms.NewRoomStatusService(roomsRepo, newMemTasks(), &memCheckIns{items: map[string]*entity.CheckIn{}}, logger.Nop())
	_, err := svc.ProcessAutomaticRoomStatusUpdates(context.Background())
	assert.ErrorIs(t, err, errDB)
}

func TestProcessOverdueCheckouts(t *testing.T) {
	now := time.Now()
	roomsRepo := newMemRooms(
		&entity.Room{ID: "r1", Number: "201", Status: entity.RoomOccupied},
		&entity.Room{ID: "r2", Number: "202", Status: entity.RoomOccupied},
		&entity.Room{ID: "r3", Number: "203", Status: entity.RoomOccupied},
	)
	checkIns := &memCheckIns{items: map[string]*entity.CheckIn{
		"c1": {ID: "c1", RoomID: "r1", Status: entity.CheckInActive, ExpectedCheckout: now.Add(-26 * time.Hour)},
		"c2": {ID: "c2", RoomID: "r2", Status: entity.CheckInActive, ExpectedCheckout: now.Add(3 * time.Hour)},
		"c3": {ID: "c3", RoomID: "r3", Status: entity.CheckInCheckedOut, ExpectedCheckout: now.Add(-48 * time.Hour)},
	}}
	svc := rooms.NewRoomStatusService(roomsRepo, newMemTasks(), checkIns, logger.Nop())

	res, err := svc.ProcessOverdueCheckouts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalProcessed)
	assert.Equal(t, 1, res.Successful)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "c1", res.Details[0].CheckInID)
	assert.Equal(t, "201", res.Details[0].RoomNumber)
	assert.Equal(t, entity.RoomOccupied, res.Details[0].PreviousStatus)

	assert.True(t, checkIns.items["c1"].Overdue)
	assert.False(t, checkIns.items["c2"].Overdue)
	assert.Equal(t, entity.RoomOverdue, roomsRepo.items["r1"].Status)
	assert.Equal(t, entity.RoomOccupied, roomsRepo.items["r2"].Status)

	// Una segunda corrida es idempotente.
	res, err = svc.ProcessOverdueCheckouts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, entity.RoomOverdue, roomsRepo.items["r1"].Status)
}

func TestProcessOverdueCheckouts_ContextoCancelado(t *testing.T) {
	checkIns := &memCheckIns{items: map[string]*entity.CheckIn{
		"c1": {ID: "c1", RoomID: "r1", Status: entity.CheckInActive, ExpectedCheckout: time.Now().Add(-time.Hour)},
	}}
	svc := rooms.NewRoomStatusService(newMemRooms(), newMemTasks(), checkIns, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.ProcessOverdueCheckouts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.TotalProcessed)
}
