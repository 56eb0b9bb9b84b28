package quote_charge

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_charge: invalid input data")

	// ErrNoMainSlot возвращается, когда в дне использования не выбран ни один основной слот
	ErrNoMainSlot = errors.New("quote_charge: at least one main slot is required")

	// ErrOrphanMiddayExtension возвращается, когда продление между утром и днём выбрано без смежного слота
	ErrOrphanMiddayExtension = errors.New("quote_charge: midday extension requires morning or afternoon")

	// ErrOrphanEveningExtension возвращается, когда продление между днём и вечером выбрано без смежного слота
	ErrOrphanEveningExtension = errors.New("quote_charge: evening extension requires afternoon or evening")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("quote_charge: room not found")

	// ErrRoomNotBookable возвращается, когда зал выведен из бронирования
	ErrRoomNotBookable = errors.New("quote_charge: room is not bookable")

	// ErrRateTableNotFound возвращается, когда у зала не настроена таблица расценок
	ErrRateTableNotFound = errors.New("quote_charge: room has no rate table")

	// ErrEquipmentNotFound возвращается, когда позиция оборудования не найдена в зале
	ErrEquipmentNotFound = errors.New("quote_charge: equipment not found")

	// ErrEquipmentNotOrderable возвращается, когда позиция оборудования выведена из каталога
	ErrEquipmentNotOrderable = errors.New("quote_charge: equipment is not orderable")

	// ErrEquipmentQuantityExceeded возвращается, когда запрошено больше единиц, чем допустимо
	ErrEquipmentQuantityExceeded = errors.New("quote_charge: equipment quantity exceeds maximum")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_charge: internal error")
)
