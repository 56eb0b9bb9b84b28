package get_room

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

type RoomService interface {
	GetRoom(ctx context.Context, roomID int64) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
