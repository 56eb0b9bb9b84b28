package set_aircon_hours

import (
	"context"

	setAirconHours "github.com/m04kA/SMC-FacilityService/internal/usecase/set_aircon_hours"
)

type SetAirconHoursUseCase interface {
	Execute(ctx context.Context, req *setAirconHours.Request) (*setAirconHours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
