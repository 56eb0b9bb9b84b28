package pricing

import "errors"

var (
	// ErrNoMainSlot возвращается, когда не выбран ни один основной блок дня
	ErrNoMainSlot = errors.New("pricing: at least one main slot must be selected")

	// ErrOrphanMiddayExtension возвращается, когда дневная вставка выбрана без утра и без дня
	ErrOrphanMiddayExtension = errors.New("pricing: midday extension requires morning or afternoon")

	// ErrOrphanEveningExtension возвращается, когда вечерняя вставка выбрана без дня и без вечера
	ErrOrphanEveningExtension = errors.New("pricing: evening extension requires afternoon or evening")
)
