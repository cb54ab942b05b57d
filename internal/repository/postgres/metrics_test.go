package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/beautysalon/salon-api/pkg/metrics"
)

// Prometheus collectors register globally, so the whole package shares one set.
var testMetrics = metrics.NewMetrics("postgrestest")

func TestQueryOp(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM bookings", "select"},
		{"\n\t\tINSERT INTO bookings (id) VALUES ($1)\n\t", "insert"},
		{"UPDATE bookings SET status = $1", "update"},
		{"delete from booking_services", "delete"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, queryOp(tc.query), "query=%q", tc.query)
	}
}

func TestInstrumentWithoutMetrics(t *testing.T) {
	db := &sqlx.DB{}
	assert.Same(t, db, instrument(db, nil))
}

func TestObserveRecordsOperationAndStatus(t *testing.T) {
	iq := &instrumentedQueryer{m: testMetrics}

	iq.observe("SELECT 1", time.Now(), nil)
	iq.observe("UPDATE bookings SET status = $1", time.Now(), errors.New("connection reset"))

	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("select", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.DatabaseOperations.WithLabelValues("update", "error")))
}
