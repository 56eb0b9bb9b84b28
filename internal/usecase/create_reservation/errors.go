package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrNoMainSlot возвращается, когда в дне использования не выбран ни один основной слот
	ErrNoMainSlot = errors.New("create_reservation: at least one main slot is required")

	// ErrOrphanMiddayExtension возвращается, когда продление между утром и днём выбрано без смежного слота
	ErrOrphanMiddayExtension = errors.New("create_reservation: midday extension requires morning or afternoon")

	// ErrOrphanEveningExtension возвращается, когда продление между днём и вечером выбрано без смежного слота
	ErrOrphanEveningExtension = errors.New("create_reservation: evening extension requires afternoon or evening")

	// ErrInvalidDate возвращается при дате использования в прошлом
	ErrInvalidDate = errors.New("create_reservation: usage date is in the past")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("create_reservation: member not found")

	// ErrMemberInactive возвращается, когда участник заблокирован
	ErrMemberInactive = errors.New("create_reservation: member is not active")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrRoomNotBookable возвращается, когда зал выведен из бронирования
	ErrRoomNotBookable = errors.New("create_reservation: room is not bookable")

	// ErrRateTableNotFound возвращается, когда у зала не настроена таблица расценок
	ErrRateTableNotFound = errors.New("create_reservation: room has no rate table")

	// ErrEquipmentNotFound возвращается, когда позиция оборудования не найдена в зале
	ErrEquipmentNotFound = errors.New("create_reservation: equipment not found")

	// ErrEquipmentNotOrderable возвращается, когда позиция оборудования выведена из каталога
	ErrEquipmentNotOrderable = errors.New("create_reservation: equipment is not orderable")

	// ErrEquipmentQuantityExceeded возвращается, когда запрошено больше единиц, чем допустимо
	ErrEquipmentQuantityExceeded = errors.New("create_reservation: equipment quantity exceeds maximum")

	// ErrSlotNotAvailable возвращается, когда хотя бы один запрошенный слот занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
