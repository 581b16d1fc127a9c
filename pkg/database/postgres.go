package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgxIface is the subset of *pgxpool.Pool the repositories depend on.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var _ PgxIface = (*pgxpool.Pool)(nil)

// InitDB builds the pool from config, attaches the query logger and pings
// the server before returning.
func InitDB(config utils.DatabaseConfig, log *zap.Logger) (PgxIface, error) {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		config.Host, config.Port, config.Name, config.User, config.Password, sslMode)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.ConnConfig.Tracer = NewQueryLogger(log, config.SlowQuery)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s:%s/%s: %w", config.Host, config.Port, config.Name, err)
	}

	log.Info("Postgres pool ready",
		zap.String("host", config.Host),
		zap.String("database", config.Name),
		zap.Int32("max_conns", poolConfig.MaxConns))

	return pool, nil
}

type queryStartKey struct{}

type queryStart struct {
	sql   string
	began time.Time
}

// QueryLogger is a pgx.QueryTracer. Failed statements are logged at error,
// slow ones at warn and everything else at debug.
type QueryLogger struct {
	log  *zap.Logger
	slow time.Duration
	now  func() time.Time
}

func NewQueryLogger(log *zap.Logger, slow time.Duration) *QueryLogger {
	return &QueryLogger{
		log:  log.With(zap.String("component", "postgres")),
		slow: slow,
		now:  time.Now,
	}
}

func (q *QueryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, began: q.now()})
}

func (q *QueryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := q.now().Sub(start.began)
	fields := []zap.Field{
		zap.String("sql", start.sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", data.CommandTag.RowsAffected()),
	}

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		q.log.Error("Query failed", append(fields, zap.Error(data.Err))...)
	case q.slow > 0 && elapsed >= q.slow:
		q.log.Warn("Slow query", fields...)
	default:
		q.log.Debug("Query", fields...)
	}
}
