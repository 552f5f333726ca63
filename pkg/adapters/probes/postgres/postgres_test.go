package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("valid_dsn", func(t *testing.T) {
		p, err := Open("postgres://postgres@db.internal:5432/inventory_db?sslmode=disable")
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, ProbeName, p.Name())
	})

	t.Run("invalid_dsn", func(t *testing.T) {
		_, err := Open("postgres://%zz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse database url")
	})
}

func TestCheck_Unreachable(t *testing.T) {
	// Nothing listens on port 1
	p, err := Open("postgres://postgres@127.0.0.1:1/inventory_db?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = p.Check(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping postgres")
}
