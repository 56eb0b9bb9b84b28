package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/pkg/metrics"
)

// Интервал обновления метрик пула соединений по умолчанию
const defaultPoolStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, записывающая метрики каждого запроса
type DB struct {
	db          *sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// Wrap оборачивает *sql.DB сборщиком метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{
		db:          db,
		metrics:     m,
		serviceName: serviceName,
	}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор метрик пула соединений
// Сбор останавливается закрытием stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	go wrapped.collectPoolStats(stopCh, defaultPoolStatsInterval)
	return wrapped
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.RecordDBQuery(d.serviceName, queryOperation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.RecordDBQuery(d.serviceName, queryOperation(query), nil, time.Since(start))
	return row
}

// ExecContext выполняет запрос без результата с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.RecordDBQuery(d.serviceName, queryOperation(query), err, time.Since(start))
	return result, err
}

// BeginTx начинает транзакцию, запросы которой также попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.metrics.RecordDBQuery(d.serviceName, "BEGIN", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{
		tx:          tx,
		metrics:     d.metrics,
		serviceName: d.serviceName,
	}, nil
}

// collectPoolStats периодически публикует состояние пула соединений
func (d *DB) collectPoolStats(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.metrics.UpdateDBPoolStats(d.serviceName, d.db.Stats())
		}
	}
}

// SqlTxWrapper обёртка над *sql.Tx с записью метрик каждого запроса
type SqlTxWrapper struct {
	tx          *sql.Tx
	metrics     *metrics.Metrics
	serviceName string
}

// QueryContext выполняет запрос внутри транзакции с записью метрик
func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.tx.QueryContext(ctx, query, args...)
	w.metrics.RecordDBQuery(w.serviceName, queryOperation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос одной строки внутри транзакции с записью метрик
func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.tx.QueryRowContext(ctx, query, args...)
	w.metrics.RecordDBQuery(w.serviceName, queryOperation(query), nil, time.Since(start))
	return row
}

// ExecContext выполняет запрос без результата внутри транзакции с записью метрик
func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := w.tx.ExecContext(ctx, query, args...)
	w.metrics.RecordDBQuery(w.serviceName, queryOperation(query), err, time.Since(start))
	return result, err
}

// Commit фиксирует транзакцию
func (w *SqlTxWrapper) Commit() error {
	start := time.Now()
	err := w.tx.Commit()
	w.metrics.RecordDBQuery(w.serviceName, "COMMIT", err, time.Since(start))
	return err
}

// Rollback откатывает транзакцию
func (w *SqlTxWrapper) Rollback() error {
	start := time.Now()
	err := w.tx.Rollback()
	w.metrics.RecordDBQuery(w.serviceName, "ROLLBACK", err, time.Since(start))
	return err
}

// queryOperation определяет тип запроса по первому слову (SELECT, INSERT, ...)
func queryOperation(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexByte(q, ' '); i > 0 {
		return strings.ToUpper(q[:i])
	}
	if q == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(q)
}
