package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/logging"
)

var errNotInitialized = errors.New("store not initialized")

// Options tunes the movie database pool. Zero values keep the pgxpool
// defaults, except StatementCacheCapacity where zero disables the cache.
type Options struct {
	MaxConns               int32
	MinConns               int32
	MaxConnIdleTime        time.Duration
	MaxConnLifetime        time.Duration
	ConnTimeout            time.Duration
	StatementCacheCapacity int
	Logger                 *logrus.Logger
}

// Store owns the pgx pool shared by the movie, score and user repositories.
type Store struct {
	pool        *pgxpool.Pool
	logger      *logrus.Logger
	pingTimeout time.Duration
}

// New opens the pool and pings the database once before returning.
func New(ctx context.Context, dbURL string, opts Options) (*Store, error) {
	cfg, err := poolConfig(dbURL, opts)
	if err != nil {
		return nil, err
	}

	st := &Store{logger: logging.OrDiscard(opts.Logger), pingTimeout: opts.ConnTimeout}
	st.logger.WithFields(logrus.Fields{
		"host":       cfg.ConnConfig.Host,
		"database":   cfg.ConnConfig.Database,
		"max_conns":  cfg.MaxConns,
		"min_conns":  cfg.MinConns,
		"stmt_cache": cfg.ConnConfig.StatementCacheCapacity,
	}).Info("store: opening movie database")

	connCtx, cancel := st.bounded(ctx)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	st.pool = pool
	st.logger.Info("store: database connection established")
	return st, nil
}

func poolConfig(dbURL string, opts Options) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.StatementCacheCapacity > 0 {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
		cfg.ConnConfig.StatementCacheCapacity = opts.StatementCacheCapacity
	} else {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
		cfg.ConnConfig.StatementCacheCapacity = 0
	}
	return cfg, nil
}

func (s *Store) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.pingTimeout > 0 {
		return context.WithTimeout(ctx, s.pingTimeout)
	}
	return ctx, func() {}
}

// Close releases the pool. It is safe on a nil Store.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.logger.Info("store: closing connection pool")
	s.pool.Close()
}

// HealthCheck pings the database and logs the pool usage at debug level.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return errNotInitialized
	}
	pingCtx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	stat := s.pool.Stat()
	s.logger.WithFields(logrus.Fields{
		"acquired": stat.AcquiredConns(),
		"idle":     stat.IdleConns(),
		"total":    stat.TotalConns(),
	}).Debug("store: health check passed")
	return nil
}

// Pool exposes the underlying pgx pool for repositories.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}
