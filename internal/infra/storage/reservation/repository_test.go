package reservation

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

var reservationRows = []string{
	"id", "member_id", "purpose", "entrance_fee_type", "entrance_fee",
	"status", "payment_status", "member_name", "total_charge",
	"cancellation_fee", "cancellation_reason", "cancelled_at", "created_at", "updated_at",
}

var usageRows = []string{
	"id", "reservation_id", "room_id", "room_name", "usage_date",
	"morning", "afternoon", "evening", "midday_extension", "evening_extension",
	"aircon_requested", "aircon_hours", "weekend_or_holiday", "ticket_multiplier",
	"room_charge_before", "room_charge_after", "equipment_charge", "aircon_charge", "subtotal",
	"created_at", "updated_at",
}

var equipmentLineRows = []string{
	"usage_id", "equipment_id", "name", "price_type", "unit_price", "quantity", "slot_count",
}

func TestCreate_InsertsReservationTree(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(100), now, now))

	mock.ExpectQuery("INSERT INTO reservation_usages").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(200), now, now))

	mock.ExpectExec("INSERT INTO reservation_equipment").
		WillReturnResult(sqlmock.NewResult(1, 1))

	reservation := &domain.Reservation{
		MemberID:        7,
		Purpose:         "Репетиция",
		EntranceFeeType: domain.EntranceFeeFree,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		TotalCharge:     15500,
		Usages: []domain.ReservationUsage{
			{
				RoomID:           1,
				RoomName:         "Большой зал",
				UsageDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				Morning:          true,
				TicketMultiplier: 1.0,
				Charge: domain.ChargeBreakdown{
					RoomBeforeMultiplier: 15000,
					RoomAfterMultiplier:  15000,
					Equipment:            500,
					Subtotal:             15500,
				},
				Equipment: []domain.EquipmentLine{
					{EquipmentID: 3, Name: "Проектор", PriceType: domain.EquipmentPricePerSlot, UnitPrice: 500, Quantity: 1, SlotCount: 1},
				},
			},
		},
	}

	created, err := repo.Create(context.Background(), reservation)

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	require.Len(t, created.Usages, 1)
	assert.Equal(t, int64(200), created.Usages[0].ID)
	assert.Equal(t, int64(100), created.Usages[0].ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_LoadsUsagesAndEquipment(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()
	memberName := "Иванов Иван"
	acHours := 2.5

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(reservationRows).
			AddRow(int64(100), int64(7), "Концерт", "paid", int64(2000),
				"confirmed", "paid", memberName, int64(46000),
				int64(0), nil, nil, now, now))

	mock.ExpectQuery("SELECT (.+) FROM reservation_usages").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(usageRows).
			AddRow(int64(200), int64(100), int64(1), "Большой зал", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				true, true, false, true, false,
				true, acHours, false, 1.5,
				int64(35000), int64(52500), int64(1000), int64(2500), int64(56000),
				now, now))

	mock.ExpectQuery("SELECT (.+) FROM reservation_equipment").
		WithArgs(int64(200)).
		WillReturnRows(sqlmock.NewRows(equipmentLineRows).
			AddRow(int64(200), int64(3), "Проектор", "per_slot", int64(500), 1, 2))

	reservation, err := repo.GetByID(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, reservation.Status)
	assert.Equal(t, domain.PaymentPaid, reservation.PaymentStatus)
	require.NotNil(t, reservation.MemberName)
	assert.Equal(t, "Иванов Иван", *reservation.MemberName)

	require.Len(t, reservation.Usages, 1)
	usage := reservation.Usages[0]
	assert.True(t, usage.Morning)
	assert.True(t, usage.MiddayExtension)
	require.NotNil(t, usage.AirconHours)
	assert.Equal(t, 2.5, *usage.AirconHours)
	assert.Equal(t, 1.5, usage.TicketMultiplier)
	assert.Equal(t, int64(56000), usage.Charge.Subtotal)

	require.Len(t, usage.Equipment, 1)
	assert.Equal(t, "Проектор", usage.Equipment[0].Name)
	assert.Equal(t, 2, usage.Equipment[0].SlotCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM reservations").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(reservationRows))

	reservation, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Nil(t, reservation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOccupancyForDate(t *testing.T) {
	mock, repo := setupMockDB(t)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT ru.reservation_id, ru.morning, ru.afternoon, ru.evening, ru.midday_extension, ru.evening_extension FROM reservation_usages").
		WithArgs(int64(1), date, "cancelled_by_member", "cancelled_by_staff").
		WillReturnRows(sqlmock.NewRows([]string{
			"reservation_id", "morning", "afternoon", "evening", "midday_extension", "evening_extension",
		}).
			AddRow(int64(100), true, false, false, false, false).
			AddRow(int64(101), false, true, true, false, true))

	occupancy, err := repo.ListOccupancyForDate(context.Background(), 1, date)

	require.NoError(t, err)
	require.Len(t, occupancy, 2)
	assert.Equal(t, int64(100), occupancy[0].ReservationID)
	assert.True(t, occupancy[0].Morning)
	assert.True(t, occupancy[1].EveningExtension)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsageByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM reservation_usages").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(usageRows))

	usage, err := repo.GetUsageByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrUsageNotFound)
	assert.Nil(t, usage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUsageAircon_WritesRecomputedCharge(t *testing.T) {
	mock, repo := setupMockDB(t)

	charge := domain.ChargeBreakdown{
		RoomBeforeMultiplier: 15000,
		RoomAfterMultiplier:  15000,
		Equipment:            500,
		Aircon:               2500,
		Subtotal:             18000,
	}

	mock.ExpectExec("UPDATE reservation_usages SET").
		WithArgs(2.5, int64(15000), int64(15000), int64(500), int64(2500), int64(18000), int64(200)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateUsageAircon(context.Background(), 200, 2.5, charge)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUsageAircon_UsageNotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec("UPDATE reservation_usages SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUsageAircon(context.Background(), 404, 1.0, domain.ChargeBreakdown{})

	assert.ErrorIs(t, err, ErrUsageNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec("UPDATE reservations SET").
		WithArgs(domain.StatusConfirmed, int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 100, domain.StatusConfirmed)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec("UPDATE reservations SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePaymentStatus(context.Background(), 404, domain.PaymentPaid)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_WritesCancellationColumns(t *testing.T) {
	mock, repo := setupMockDB(t)

	cancelledAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE reservations SET").
		WithArgs(domain.StatusCancelledByMember, "Изменились планы", cancelledAt, int64(15000), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 100, domain.StatusCancelledByMember, "Изменились планы", cancelledAt, 15000)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec("UPDATE reservations SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 404, domain.StatusCancelledByStaff, "", time.Now(), 0)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
