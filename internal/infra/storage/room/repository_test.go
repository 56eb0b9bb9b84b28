package room

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Repository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, NewRepository(db)
}

var roomColumns = []string{
	"id", "name", "description", "max_concurrent_reservations", "active", "created_at", "updated_at",
}

var rateTableColumns = []string{
	"room_id",
	"weekday_morning_price", "weekday_afternoon_price", "weekday_evening_price",
	"weekday_midday_extension_price", "weekday_evening_extension_price",
	"weekend_morning_price", "weekend_afternoon_price", "weekend_evening_price",
	"weekend_midday_extension_price", "weekend_evening_extension_price",
	"aircon_price_per_hour", "created_at", "updated_at",
}

var equipmentColumns = []string{
	"id", "room_id", "name", "price_type", "unit_price", "max_quantity", "active", "created_at", "updated_at",
}

func TestGetByID_ReturnsRoom(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, description, max_concurrent_reservations, active, created_at, updated_at FROM rooms").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roomColumns).
			AddRow(int64(1), "Большой зал", "Зал на 200 мест", 2, true, now, now))

	room, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), room.ID)
	assert.Equal(t, "Большой зал", room.Name)
	require.NotNil(t, room.Description)
	assert.Equal(t, "Зал на 200 мест", *room.Description)
	assert.Equal(t, 2, room.MaxConcurrentReservations)
	assert.True(t, room.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT id, name, description, max_concurrent_reservations, active, created_at, updated_at FROM rooms").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(roomColumns))

	room, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, room)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OnlyActiveByDefault(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, description, max_concurrent_reservations, active, created_at, updated_at FROM rooms WHERE active").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(roomColumns).
			AddRow(int64(1), "Большой зал", nil, 1, true, now, now))

	rooms, err := repo.List(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Nil(t, rooms[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRateTable_WeekdayOnly(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM room_rate_tables").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(rateTableColumns).
			AddRow(int64(1),
				int64(15000), int64(20000), int64(18000), int64(3000), int64(3000),
				nil, nil, nil, nil, nil,
				int64(1000), now, now))

	table, err := repo.GetRateTable(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(15000), table.Weekday.Morning)
	assert.Equal(t, int64(1000), table.AirconPricePerHour)
	assert.Nil(t, table.Weekend)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRateTable_WithWeekendRates(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM room_rate_tables").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(rateTableColumns).
			AddRow(int64(1),
				int64(15000), int64(20000), int64(18000), int64(3000), int64(3000),
				int64(25000), int64(30000), int64(28000), int64(5000), int64(5000),
				int64(1000), now, now))

	table, err := repo.GetRateTable(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, table.Weekend)
	assert.Equal(t, int64(25000), table.Weekend.Morning)
	assert.Equal(t, int64(5000), table.Weekend.EveningExtension)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Частично заполненный тариф выходного дня не собирается в RateSet
func TestGetRateTable_PartialWeekendIgnored(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM room_rate_tables").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(rateTableColumns).
			AddRow(int64(1),
				int64(15000), int64(20000), int64(18000), int64(3000), int64(3000),
				int64(25000), nil, nil, nil, nil,
				int64(1000), now, now))

	table, err := repo.GetRateTable(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, table.Weekend)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRateTable_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM room_rate_tables").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(rateTableColumns))

	table, err := repo.GetRateTable(context.Background(), 404)

	assert.ErrorIs(t, err, ErrRateTableNotFound)
	assert.Nil(t, table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRateTable_ReplacesTable(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO room_rate_tables").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	table := &domain.RoomRateTable{
		RoomID: 1,
		Weekday: domain.RateSet{
			Morning: 15000, Afternoon: 20000, Evening: 18000,
			MiddayExtension: 3000, EveningExtension: 3000,
		},
		AirconPricePerHour: 1000,
	}

	saved, err := repo.UpsertRateTable(context.Background(), table)

	require.NoError(t, err)
	assert.Equal(t, now, saved.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEquipmentByIDs(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, room_id, name, price_type, unit_price, max_quantity, active, created_at, updated_at FROM room_equipment").
		WillReturnRows(sqlmock.NewRows(equipmentColumns).
			AddRow(int64(3), int64(1), "Проектор", "per_slot", int64(500), 2, true, now, now).
			AddRow(int64(4), int64(1), "Сцена", "flat", int64(5000), 1, true, now, now))

	items, err := repo.GetEquipmentByIDs(context.Background(), 1, []int64{3, 4})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.EquipmentPricePerSlot, items[0].PriceType)
	assert.Equal(t, domain.EquipmentPriceFlat, items[1].PriceType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Пустой список ID не порождает запрос к базе
func TestGetEquipmentByIDs_EmptyIDs(t *testing.T) {
	mock, repo := setupMockDB(t)

	items, err := repo.GetEquipmentByIDs(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
