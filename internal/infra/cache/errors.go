package cache

import "errors"

var (
	// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrExecCommand возвращается при ошибке выполнения команды
	ErrExecCommand = errors.New("cache: failed to execute command")
)
