package get_rooms

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

type RoomService interface {
	ListRooms(ctx context.Context, includeInactive bool) (*models.RoomListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
