package telemetry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

func TestInit_NoDSN(t *testing.T) {
	flush, err := Init(Config{})

	require.NoError(t, err)
	require.NotNil(t, flush)
	assert.False(t, Enabled())

	// Must be safe when disabled
	flush()
	CaptureError(context.Background(), "index", errors.New("boom"))
	AddBreadcrumb(context.Background(), "index", "loaded")
}

func TestInit_InvalidDSN(t *testing.T) {
	flush, err := Init(Config{DSN: "not a dsn"})

	assert.Error(t, err)
	require.NotNil(t, flush)
	assert.False(t, Enabled())
}

func TestReportable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"cancelled", context.Canceled, false},
		{"invalid input", fmt.Errorf("search: %w", domain.ErrInvalidInput), false},
		{"invalid chunking", domain.ErrInvalidChunking, false},
		{"invalid config", domain.ErrInvalidConfig, false},
		{"no index", domain.ErrIndexNotFound, false},
		{"corrupt index", domain.ErrIndexCorrupt, true},
		{"store unavailable", domain.ErrStoreUnavailable, true},
		{"unknown", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reportable(tt.err))
		})
	}
}
