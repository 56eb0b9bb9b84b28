package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с комнатами, тарифами и каталогом оборудования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает комнату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"max_concurrent_reservations",
		"active",
		"created_at",
		"updated_at",
	).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.MaxConcurrentReservations,
		&room.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

// List получает список комнат
// По умолчанию возвращает только активные комнаты
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"max_concurrent_reservations",
		"active",
		"created_at",
		"updated_at",
	).
		From("rooms").
		OrderBy("id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Description,
			&room.MaxConcurrentReservations,
			&room.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		room.CreatedAt = createdAt.Time
		room.UpdatedAt = updatedAt.Time

		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetRateTable получает тарифную таблицу комнаты
// Тариф выходного дня собирается только при заполненных всех пяти ценах
func (r *Repository) GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"room_id",
		"weekday_morning_price",
		"weekday_afternoon_price",
		"weekday_evening_price",
		"weekday_midday_extension_price",
		"weekday_evening_extension_price",
		"weekend_morning_price",
		"weekend_afternoon_price",
		"weekend_evening_price",
		"weekend_midday_extension_price",
		"weekend_evening_extension_price",
		"aircon_price_per_hour",
		"created_at",
		"updated_at",
	).
		From("room_rate_tables").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRateTable - build select query: %v", ErrBuildQuery, err)
	}

	var table domain.RoomRateTable
	var weekendMorning, weekendAfternoon, weekendEvening sql.NullInt64
	var weekendMidday, weekendEveningExt sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&table.RoomID,
		&table.Weekday.Morning,
		&table.Weekday.Afternoon,
		&table.Weekday.Evening,
		&table.Weekday.MiddayExtension,
		&table.Weekday.EveningExtension,
		&weekendMorning,
		&weekendAfternoon,
		&weekendEvening,
		&weekendMidday,
		&weekendEveningExt,
		&table.AirconPricePerHour,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRateTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRateTable - scan rate table: %v", ErrScanRow, err)
	}

	if weekendMorning.Valid && weekendAfternoon.Valid && weekendEvening.Valid &&
		weekendMidday.Valid && weekendEveningExt.Valid {
		table.Weekend = &domain.RateSet{
			Morning:          weekendMorning.Int64,
			Afternoon:        weekendAfternoon.Int64,
			Evening:          weekendEvening.Int64,
			MiddayExtension:  weekendMidday.Int64,
			EveningExtension: weekendEveningExt.Int64,
		}
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return &table, nil
}

// UpsertRateTable создает или полностью заменяет тарифную таблицу комнаты
func (r *Repository) UpsertRateTable(ctx context.Context, table *domain.RoomRateTable) (*domain.RoomRateTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var weekendMorning, weekendAfternoon, weekendEvening *int64
	var weekendMidday, weekendEveningExt *int64
	if table.Weekend != nil {
		weekendMorning = &table.Weekend.Morning
		weekendAfternoon = &table.Weekend.Afternoon
		weekendEvening = &table.Weekend.Evening
		weekendMidday = &table.Weekend.MiddayExtension
		weekendEveningExt = &table.Weekend.EveningExtension
	}

	query, args, err := psqlbuilder.Insert("room_rate_tables").
		Columns(
			"room_id",
			"weekday_morning_price",
			"weekday_afternoon_price",
			"weekday_evening_price",
			"weekday_midday_extension_price",
			"weekday_evening_extension_price",
			"weekend_morning_price",
			"weekend_afternoon_price",
			"weekend_evening_price",
			"weekend_midday_extension_price",
			"weekend_evening_extension_price",
			"aircon_price_per_hour",
		).
		Values(
			table.RoomID,
			table.Weekday.Morning,
			table.Weekday.Afternoon,
			table.Weekday.Evening,
			table.Weekday.MiddayExtension,
			table.Weekday.EveningExtension,
			weekendMorning,
			weekendAfternoon,
			weekendEvening,
			weekendMidday,
			weekendEveningExt,
			table.AirconPricePerHour,
		).
		Suffix(`ON CONFLICT (room_id) DO UPDATE SET
			weekday_morning_price = EXCLUDED.weekday_morning_price,
			weekday_afternoon_price = EXCLUDED.weekday_afternoon_price,
			weekday_evening_price = EXCLUDED.weekday_evening_price,
			weekday_midday_extension_price = EXCLUDED.weekday_midday_extension_price,
			weekday_evening_extension_price = EXCLUDED.weekday_evening_extension_price,
			weekend_morning_price = EXCLUDED.weekend_morning_price,
			weekend_afternoon_price = EXCLUDED.weekend_afternoon_price,
			weekend_evening_price = EXCLUDED.weekend_evening_price,
			weekend_midday_extension_price = EXCLUDED.weekend_midday_extension_price,
			weekend_evening_extension_price = EXCLUDED.weekend_evening_extension_price,
			aircon_price_per_hour = EXCLUDED.aircon_price_per_hour,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRateTable - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRateTable - execute insert: %v", ErrExecQuery, err)
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return table, nil
}

// GetEquipment получает каталог оборудования комнаты
// По умолчанию возвращает только активное оборудование
func (r *Repository) GetEquipment(ctx context.Context, roomID int64, includeInactive bool) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := equipmentSelect().
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEquipment(rows)
}

// GetEquipmentByIDs получает оборудование комнаты по списку ID
// Используется при валидации выбранного оборудования в заявке
func (r *Repository) GetEquipmentByIDs(ctx context.Context, roomID int64, ids []int64) ([]*domain.Equipment, error) {
	if len(ids) == 0 {
		return []*domain.Equipment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := equipmentSelect().
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipmentByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipmentByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEquipment(rows)
}

// equipmentSelect общий SELECT каталога оборудования
func equipmentSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"room_id",
		"name",
		"price_type",
		"unit_price",
		"max_quantity",
		"active",
		"created_at",
		"updated_at",
	).From("room_equipment")
}

// scanEquipment сканирует результаты запроса в слайс оборудования
func scanEquipment(rows *sql.Rows) ([]*domain.Equipment, error) {
	items := make([]*domain.Equipment, 0)

	for rows.Next() {
		var item domain.Equipment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.RoomID,
			&item.Name,
			&item.PriceType,
			&item.UnitPrice,
			&item.MaxQuantity,
			&item.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEquipment - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEquipment - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
