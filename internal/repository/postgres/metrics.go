package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/pkg/metrics"
)

// instrumentedQueryer counts and times every statement it runs. The bind
// helpers pass through via the embedded queryer.
type instrumentedQueryer struct {
	queryer
	m *metrics.Metrics
}

// instrument wraps q with statement metrics. A nil metrics handle leaves q
// untouched.
func instrument(q queryer, m *metrics.Metrics) queryer {
	if m == nil {
		return q
	}
	return &instrumentedQueryer{queryer: q, m: m}
}

func (iq *instrumentedQueryer) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := iq.queryer.ExecContext(ctx, query, args...)
	iq.observe(query, start, err)
	return result, err
}

func (iq *instrumentedQueryer) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := iq.queryer.QueryContext(ctx, query, args...)
	iq.observe(query, start, err)
	return rows, err
}

func (iq *instrumentedQueryer) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	start := time.Now()
	rows, err := iq.queryer.QueryxContext(ctx, query, args...)
	iq.observe(query, start, err)
	return rows, err
}

func (iq *instrumentedQueryer) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	start := time.Now()
	row := iq.queryer.QueryRowxContext(ctx, query, args...)
	iq.observe(query, start, nil)
	return row
}

func (iq *instrumentedQueryer) observe(query string, start time.Time, err error) {
	op := queryOp(query)
	status := "ok"
	if err != nil {
		status = "error"
	}
	iq.m.DatabaseOperations.WithLabelValues(op, status).Inc()
	iq.m.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// queryOp extracts the leading SQL verb for the operation label.
func queryOp(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
