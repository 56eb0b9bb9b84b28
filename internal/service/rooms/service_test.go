package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

// Стабы зависимостей

type stubRoomRepo struct {
	getByID         func(ctx context.Context, id int64) (*domain.Room, error)
	list            func(ctx context.Context, includeInactive bool) ([]*domain.Room, error)
	getRateTable    func(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
	upsertRateTable func(ctx context.Context, table *domain.RoomRateTable) (*domain.RoomRateTable, error)
	getEquipment    func(ctx context.Context, roomID int64, includeInactive bool) ([]*domain.Equipment, error)

	listIncludeInactive bool
	upsertedTable       *domain.RoomRateTable
}

func (s *stubRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return s.getByID(ctx, id)
}

func (s *stubRoomRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Room, error) {
	s.listIncludeInactive = includeInactive
	return s.list(ctx, includeInactive)
}

func (s *stubRoomRepo) GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error) {
	return s.getRateTable(ctx, roomID)
}

func (s *stubRoomRepo) UpsertRateTable(ctx context.Context, table *domain.RoomRateTable) (*domain.RoomRateTable, error) {
	s.upsertedTable = table
	if s.upsertRateTable != nil {
		return s.upsertRateTable(ctx, table)
	}
	saved := *table
	saved.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	saved.UpdatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &saved, nil
}

func (s *stubRoomRepo) GetEquipment(ctx context.Context, roomID int64, includeInactive bool) ([]*domain.Equipment, error) {
	return s.getEquipment(ctx, roomID, includeInactive)
}

type stubMemberClient struct {
	member *memberservice.Member
	err    error
}

func (s *stubMemberClient) GetMember(context.Context, int64) (*memberservice.Member, error) {
	return s.member, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

const staffID int64 = 42

func mainHall() *domain.Room {
	return &domain.Room{ID: 1, Name: "Большой зал", MaxConcurrentReservations: 1, Active: true}
}

func weekdayRateTable() *domain.RoomRateTable {
	return &domain.RoomRateTable{
		RoomID: 1,
		Weekday: domain.RateSet{
			Morning:          15000,
			Afternoon:        20000,
			Evening:          18000,
			MiddayExtension:  3000,
			EveningExtension: 3000,
		},
		AirconPricePerHour: 1000,
	}
}

func projector() *domain.Equipment {
	return &domain.Equipment{
		ID:          3,
		RoomID:      1,
		Name:        "Проектор",
		PriceType:   domain.EquipmentPricePerSlot,
		UnitPrice:   500,
		MaxQuantity: 2,
		Active:      true,
	}
}

type testEnv struct {
	rooms   *stubRoomRepo
	members *stubMemberClient
	svc     *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		rooms: &stubRoomRepo{
			getByID: func(context.Context, int64) (*domain.Room, error) {
				return mainHall(), nil
			},
			list: func(context.Context, bool) ([]*domain.Room, error) {
				return []*domain.Room{mainHall()}, nil
			},
			getRateTable: func(context.Context, int64) (*domain.RoomRateTable, error) {
				return weekdayRateTable(), nil
			},
			getEquipment: func(context.Context, int64, bool) ([]*domain.Equipment, error) {
				return []*domain.Equipment{projector()}, nil
			},
		},
		members: &stubMemberClient{
			member: &memberservice.Member{ID: staffID, Name: "Петров Пётр", Role: memberservice.RoleStaff, Active: true},
		},
	}
	env.svc = NewService(env.rooms, env.members, nopLogger{})
	return env
}

func validRequest() *models.UpdateRateTableRequest {
	return &models.UpdateRateTableRequest{
		StaffID: staffID,
		Weekday: models.SlotRates{
			Morning:          15000,
			Afternoon:        20000,
			Evening:          18000,
			MiddayExtension:  3000,
			EveningExtension: 3000,
		},
		AirconPricePerHour: 1000,
	}
}

// ListRooms / GetRoom

func TestListRooms_ReturnsCatalog(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.ListRooms(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, env.rooms.listIncludeInactive)

	require.Len(t, resp.Rooms, 1)
	room := resp.Rooms[0]
	assert.Equal(t, "Большой зал", room.Name)
	assert.Equal(t, 1, room.MaxConcurrentReservations)

	require.NotNil(t, room.RateTable)
	assert.Equal(t, int64(15000), room.RateTable.Weekday.Morning)
	assert.Nil(t, room.RateTable.Weekend)

	require.Len(t, room.Equipment, 1)
	assert.Equal(t, "Проектор", room.Equipment[0].Name)
	assert.Equal(t, "per_slot", room.Equipment[0].PriceType)
}

func TestListRooms_IncludeInactive(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.ListRooms(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, env.rooms.listIncludeInactive)
}

func TestGetRoom_WithoutRateTable(t *testing.T) {
	env := newTestEnv()
	env.rooms.getRateTable = func(context.Context, int64) (*domain.RoomRateTable, error) {
		return nil, roomRepo.ErrRateTableNotFound
	}

	// Зал без расценок отдаётся без таблицы, это не ошибка
	resp, err := env.svc.GetRoom(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.RateTable)
}

func TestGetRoom_NotFound(t *testing.T) {
	env := newTestEnv()
	env.rooms.getByID = func(context.Context, int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}

	_, err := env.svc.GetRoom(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

// UpdateRateTable

func TestUpdateRateTable_SavesWeekdayRates(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.UpdateRateTable(context.Background(), 1, validRequest())
	require.NoError(t, err)

	saved := env.rooms.upsertedTable
	require.NotNil(t, saved)
	assert.Equal(t, int64(1), saved.RoomID)
	assert.Equal(t, int64(15000), saved.Weekday.Morning)
	assert.Equal(t, int64(3000), saved.Weekday.EveningExtension)
	assert.Nil(t, saved.Weekend)
	assert.Equal(t, int64(1000), saved.AirconPricePerHour)

	assert.Equal(t, int64(1), resp.RoomID)
	assert.Nil(t, resp.Weekend)
}

func TestUpdateRateTable_WeekendSetStoredWhole(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Weekend = &models.SlotRates{
		Morning:          25000,
		Afternoon:        30000,
		Evening:          28000,
		MiddayExtension:  5000,
		EveningExtension: 5000,
	}

	resp, err := env.svc.UpdateRateTable(context.Background(), 1, req)
	require.NoError(t, err)

	require.NotNil(t, env.rooms.upsertedTable.Weekend)
	assert.Equal(t, int64(25000), env.rooms.upsertedTable.Weekend.Morning)
	require.NotNil(t, resp.Weekend)
	assert.Equal(t, int64(28000), resp.Weekend.Evening)
}

func TestUpdateRateTable_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(req *models.UpdateRateTableRequest)
	}{
		{
			name: "отрицательная ставка будней",
			mutate: func(req *models.UpdateRateTableRequest) {
				req.Weekday.Morning = -1
			},
		},
		{
			name: "отрицательная ставка выходных",
			mutate: func(req *models.UpdateRateTableRequest) {
				req.Weekend = &models.SlotRates{Morning: -100}
			},
		},
		{
			name: "отрицательная цена кондиционера",
			mutate: func(req *models.UpdateRateTableRequest) {
				req.AirconPricePerHour = -500
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()

			req := validRequest()
			tc.mutate(req)

			_, err := env.svc.UpdateRateTable(context.Background(), 1, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, env.rooms.upsertedTable)
		})
	}
}

func TestUpdateRateTable_RoomNotFound(t *testing.T) {
	env := newTestEnv()
	env.rooms.getByID = func(context.Context, int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}

	_, err := env.svc.UpdateRateTable(context.Background(), 99, validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, env.rooms.upsertedTable)
}

func TestUpdateRateTable_AccessDenied(t *testing.T) {
	cases := []struct {
		name    string
		member  *memberservice.Member
		err     error
		wantErr error
	}{
		{
			name:    "обычный участник",
			member:  &memberservice.Member{ID: 8, Role: memberservice.RoleMember, Active: true},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "неактивный сотрудник",
			member:  &memberservice.Member{ID: staffID, Role: memberservice.RoleStaff, Active: false},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "участник не найден",
			err:     memberservice.ErrMemberNotFound,
			wantErr: ErrMemberNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			env.members.member = tc.member
			env.members.err = tc.err

			_, err := env.svc.UpdateRateTable(context.Background(), 1, validRequest())
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, env.rooms.upsertedTable)
		})
	}
}
