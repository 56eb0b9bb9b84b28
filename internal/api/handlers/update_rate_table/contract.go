package update_rate_table

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

type RoomService interface {
	UpdateRateTable(ctx context.Context, roomID int64, req *models.UpdateRateTableRequest) (*models.RateTableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
