package quote_charge

import (
	"context"

	quoteCharge "github.com/m04kA/SMC-FacilityService/internal/usecase/quote_charge"
)

type QuoteChargeUseCase interface {
	Execute(ctx context.Context, req *quoteCharge.Request) (*quoteCharge.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
