package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// Колонки таблицы reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"member_id",
	"purpose",
	"entrance_fee_type",
	"entrance_fee",
	"status",
	"payment_status",
	"member_name",
	"total_charge",
	"cancellation_fee",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и днями использования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с днями использования и строками оборудования
// Вызывается внутри сериализуемой транзакции (через context), чтобы вставка
// происходила атомарно с проверкой занятости слотов
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"member_id",
			"purpose",
			"entrance_fee_type",
			"entrance_fee",
			"status",
			"payment_status",
			"member_name",
			"total_charge",
		).
		Values(
			reservation.MemberID,
			reservation.Purpose,
			reservation.EntranceFeeType,
			reservation.EntranceFee,
			reservation.Status,
			reservation.PaymentStatus,
			reservation.MemberName,
			reservation.TotalCharge,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	for i := range reservation.Usages {
		usage := &reservation.Usages[i]
		usage.ReservationID = reservation.ID

		if err := r.createUsage(ctx, executor, usage); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// createUsage вставляет один день использования и его строки оборудования
func (r *Repository) createUsage(ctx context.Context, executor DBExecutor, usage *domain.ReservationUsage) error {
	query, args, err := psqlbuilder.Insert("reservation_usages").
		Columns(
			"reservation_id",
			"room_id",
			"room_name",
			"usage_date",
			"morning",
			"afternoon",
			"evening",
			"midday_extension",
			"evening_extension",
			"aircon_requested",
			"aircon_hours",
			"weekend_or_holiday",
			"ticket_multiplier",
			"room_charge_before",
			"room_charge_after",
			"equipment_charge",
			"aircon_charge",
			"subtotal",
		).
		Values(
			usage.ReservationID,
			usage.RoomID,
			usage.RoomName,
			usage.UsageDate,
			usage.Morning,
			usage.Afternoon,
			usage.Evening,
			usage.MiddayExtension,
			usage.EveningExtension,
			usage.AirconRequested,
			usage.AirconHours,
			usage.WeekendOrHoliday,
			usage.TicketMultiplier,
			usage.Charge.RoomBeforeMultiplier,
			usage.Charge.RoomAfterMultiplier,
			usage.Charge.Equipment,
			usage.Charge.Aircon,
			usage.Charge.Subtotal,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createUsage - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&usage.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: createUsage - execute insert: %v", ErrExecQuery, err)
	}

	usage.CreatedAt = createdAt.Time
	usage.UpdatedAt = updatedAt.Time

	for _, line := range usage.Equipment {
		if err := r.createEquipmentLine(ctx, executor, usage.ID, line); err != nil {
			return err
		}
	}

	return nil
}

// createEquipmentLine вставляет одну строку оборудования дня использования
func (r *Repository) createEquipmentLine(ctx context.Context, executor DBExecutor, usageID int64, line domain.EquipmentLine) error {
	query, args, err := psqlbuilder.Insert("reservation_equipment").
		Columns(
			"usage_id",
			"equipment_id",
			"name",
			"price_type",
			"unit_price",
			"quantity",
			"slot_count",
		).
		Values(
			usageID,
			line.EquipmentID,
			line.Name,
			line.PriceType,
			line.UnitPrice,
			line.Quantity,
			line.SlotCount,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createEquipmentLine - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: createEquipmentLine - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с днями использования и оборудованием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.MemberID,
		&reservation.Purpose,
		&reservation.EntranceFeeType,
		&reservation.EntranceFee,
		&reservation.Status,
		&reservation.PaymentStatus,
		&reservation.MemberName,
		&reservation.TotalCharge,
		&reservation.CancellationFee,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	if err := r.attachUsages(ctx, executor, []*domain.Reservation{&reservation}); err != nil {
		return nil, err
	}

	return &reservation, nil
}

// GetByMemberID получает бронирования участника, отсортированные от новых к старым
// Опционально фильтрует по статусу
func (r *Repository) GetByMemberID(ctx context.Context, memberID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachUsages(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// GetByRoomWithFilter получает бронирования, у которых есть дни использования в комнате
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
func (r *Repository) GetByRoomWithFilter(ctx context.Context, filter domain.RoomReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	usageMatch := psqlbuilder.Select("1").
		Prefix("EXISTS (").
		From("reservation_usages ru").
		Where("ru.reservation_id = reservations.id").
		Where(squirrel.Eq{"ru.room_id": filter.RoomID}).
		Suffix(")")

	if filter.StartDate != nil {
		usageMatch = usageMatch.Where(squirrel.GtOrEq{"ru.usage_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		usageMatch = usageMatch.Where(squirrel.LtOrEq{"ru.usage_date": *filter.EndDate})
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(usageMatch).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны отменённые - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachUsages(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// ListOccupancyForDate получает занятость блоков комнаты на дату
// Учитываются только дни использования неотменённых бронирований
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное создание
// бронирований на ту же комнату и дату не прошло проверку занятости одновременно
func (r *Repository) ListOccupancyForDate(ctx context.Context, roomID int64, date time.Time) ([]domain.SlotOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"ru.reservation_id",
		"ru.morning",
		"ru.afternoon",
		"ru.evening",
		"ru.midday_extension",
		"ru.evening_extension",
	).
		From("reservation_usages ru").
		Join("reservations r ON r.id = ru.reservation_id").
		Where(squirrel.Eq{"ru.room_id": roomID}).
		Where(squirrel.Eq{"ru.usage_date": date}).
		Where(squirrel.NotEq{"r.status": inactiveStatusStrings}).
		OrderBy("ru.reservation_id ASC")

	// Если используется транзакция, блокируем строки занятости до конца транзакции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ru")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancy := make([]domain.SlotOccupancy, 0)
	for rows.Next() {
		var row domain.SlotOccupancy

		err := rows.Scan(
			&row.ReservationID,
			&row.Morning,
			&row.Afternoon,
			&row.Evening,
			&row.MiddayExtension,
			&row.EveningExtension,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOccupancyForDate - scan row: %v", ErrScanRow, err)
		}

		occupancy = append(occupancy, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyForDate - rows error: %v", ErrScanRow, err)
	}

	return occupancy, nil
}

// GetUsageByID получает день использования по ID вместе со строками оборудования
func (r *Repository) GetUsageByID(ctx context.Context, usageID int64) (*domain.ReservationUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := usageSelect().
		Where(squirrel.Eq{"id": usageID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUsageByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUsageByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	usages, err := scanUsages(rows)
	if err != nil {
		return nil, err
	}
	if len(usages) == 0 {
		return nil, ErrUsageNotFound
	}

	usage := usages[0]
	if err := r.attachEquipment(ctx, executor, []*domain.ReservationUsage{usage}); err != nil {
		return nil, err
	}

	return usage, nil
}

// UpdateUsageAircon обновляет фактические часы кондиционера и пересчитанную разбивку стоимости
func (r *Repository) UpdateUsageAircon(ctx context.Context, usageID int64, hours float64, charge domain.ChargeBreakdown) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_usages").
		Set("aircon_hours", hours).
		Set("room_charge_before", charge.RoomBeforeMultiplier).
		Set("room_charge_after", charge.RoomAfterMultiplier).
		Set("equipment_charge", charge.Equipment).
		Set("aircon_charge", charge.Aircon).
		Set("subtotal", charge.Subtotal).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": usageID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateUsageAircon - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateUsageAircon - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateUsageAircon - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUsageNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateTotalCharge обновляет итоговую стоимость бронирования
// Вызывается после пересчёта стоимости дня использования
func (r *Repository) UpdateTotalCharge(ctx context.Context, id int64, total int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("total_charge", total).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTotalCharge - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalCharge - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotalCharge - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отмечает бронирование отменённым с фиксацией момента отмены и неустойки
// Момент отмены передаётся снаружи: он же участвует в расчёте неустойки
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string, cancelledAt time.Time, fee int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("cancellation_fee", fee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}
