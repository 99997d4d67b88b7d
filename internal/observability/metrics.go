// Package observability holds Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ripple_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// EventsPublished counts realtime events published, by event name and scope
	// (user or broadcast).
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_events_published_total",
		Help: "Total realtime events published by event name and scope",
	}, []string{"event", "scope"})

	// WebSocketBackpressureDrops counts messages dropped because a client's send
	// buffer was full. Delivery is fire-and-forget; drops are counted, never
	// retried.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

const gormStartKey = "observability:start"

// InstrumentGorm registers callbacks feeding DatabaseQueryLatency with the
// latency of every create, query, update and delete statement.
func InstrumentGorm(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(gormStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(gormStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("observability:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("observability:after_create", after("insert")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("observability:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("observability:after_query", after("select")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("observability:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("observability:after_update", after("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("observability:before_delete", before); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").Register("observability:after_delete", after("delete"))
}
