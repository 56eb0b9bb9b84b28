package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// usageSelect общий SELECT дней использования
func usageSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
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
		"created_at",
		"updated_at",
	).From("reservation_usages")
}

// scanReservations сканирует результаты запроса в слайс бронирований (без дней использования)
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
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
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// scanUsages сканирует результаты запроса в слайс дней использования (без оборудования)
func scanUsages(rows *sql.Rows) ([]*domain.ReservationUsage, error) {
	usages := make([]*domain.ReservationUsage, 0)

	for rows.Next() {
		var usage domain.ReservationUsage
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&usage.ID,
			&usage.ReservationID,
			&usage.RoomID,
			&usage.RoomName,
			&usage.UsageDate,
			&usage.Morning,
			&usage.Afternoon,
			&usage.Evening,
			&usage.MiddayExtension,
			&usage.EveningExtension,
			&usage.AirconRequested,
			&usage.AirconHours,
			&usage.WeekendOrHoliday,
			&usage.TicketMultiplier,
			&usage.Charge.RoomBeforeMultiplier,
			&usage.Charge.RoomAfterMultiplier,
			&usage.Charge.Equipment,
			&usage.Charge.Aircon,
			&usage.Charge.Subtotal,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanUsages - scan row: %v", ErrScanRow, err)
		}

		usage.CreatedAt = createdAt.Time
		usage.UpdatedAt = updatedAt.Time

		usages = append(usages, &usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanUsages - rows error: %v", ErrScanRow, err)
	}

	return usages, nil
}

// attachUsages загружает дни использования и оборудование для списка бронирований
func (r *Repository) attachUsages(ctx context.Context, executor DBExecutor, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(reservations))
	byID := make(map[int64]*domain.Reservation, len(reservations))
	for _, reservation := range reservations {
		ids = append(ids, reservation.ID)
		byID[reservation.ID] = reservation
	}

	query, args, err := usageSelect().
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("usage_date ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachUsages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachUsages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	usages, err := scanUsages(rows)
	if err != nil {
		return err
	}

	if err := r.attachEquipment(ctx, executor, usages); err != nil {
		return err
	}

	for _, usage := range usages {
		if reservation, ok := byID[usage.ReservationID]; ok {
			reservation.Usages = append(reservation.Usages, *usage)
		}
	}

	return nil
}

// attachEquipment загружает строки оборудования для списка дней использования
func (r *Repository) attachEquipment(ctx context.Context, executor DBExecutor, usages []*domain.ReservationUsage) error {
	if len(usages) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(usages))
	byID := make(map[int64]*domain.ReservationUsage, len(usages))
	for _, usage := range usages {
		ids = append(ids, usage.ID)
		byID[usage.ID] = usage
	}

	query, args, err := psqlbuilder.Select(
		"usage_id",
		"equipment_id",
		"name",
		"price_type",
		"unit_price",
		"quantity",
		"slot_count",
	).
		From("reservation_equipment").
		Where(squirrel.Eq{"usage_id": ids}).
		OrderBy("usage_id ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var usageID int64
		var line domain.EquipmentLine

		err := rows.Scan(
			&usageID,
			&line.EquipmentID,
			&line.Name,
			&line.PriceType,
			&line.UnitPrice,
			&line.Quantity,
			&line.SlotCount,
		)
		if err != nil {
			return fmt.Errorf("%w: attachEquipment - scan row: %v", ErrScanRow, err)
		}

		if usage, ok := byID[usageID]; ok {
			usage.Equipment = append(usage.Equipment, line)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachEquipment - rows error: %v", ErrScanRow, err)
	}

	return nil
}
