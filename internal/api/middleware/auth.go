package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
)

const (
	// HeaderMemberID заголовок с ID участника, проставляется API gateway после аутентификации
	HeaderMemberID = "X-Member-ID"

	msgMissingMemberID = "отсутствует заголовок X-Member-ID"
	msgInvalidMemberID = "некорректный ID участника"
)

type contextKey int

const memberIDKey contextKey = iota

// Auth проверяет наличие заголовка X-Member-ID и кладёт ID участника в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(HeaderMemberID)
		if idStr == "" {
			handlers.RespondUnauthorized(w, msgMissingMemberID)
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidMemberID)
			return
		}

		ctx := context.WithValue(r.Context(), memberIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetMemberID извлекает ID участника из контекста запроса
func GetMemberID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(memberIDKey).(int64)
	return id, ok
}
