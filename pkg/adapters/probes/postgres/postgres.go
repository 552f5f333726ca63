package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ProbeName is the name the PostgreSQL probe reports under
const ProbeName = "postgres"

// Probe checks that a PostgreSQL server accepts connections
type Probe struct {
	db *sql.DB
}

// Open validates the DSN and returns a probe backed by a small pool.
// No connection is made until Check is called.
func Open(dsn string) (*Probe, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(30 * time.Second)

	return New(db), nil
}

// New wraps an existing database handle
func New(db *sql.DB) *Probe {
	return &Probe{db: db}
}

// Name returns the probe name
func (p *Probe) Name() string {
	return ProbeName
}

// Check pings the database
func (p *Probe) Check(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// Close releases the pool
func (p *Probe) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close postgres pool: %w", err)
	}
	return nil
}
