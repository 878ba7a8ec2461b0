package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortIDGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a code of the requested shape", func(t *testing.T) {
		gen := NewShortIDGenerator(6, func(_ context.Context, _ string) (bool, error) {
			return false, nil
		})

		code, err := gen.Generate(ctx)

		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'), "unexpected character %q", c)
		}
	})

	t.Run("retries on collision until a free code turns up", func(t *testing.T) {
		calls := 0
		gen := NewShortIDGenerator(8, func(_ context.Context, _ string) (bool, error) {
			calls++
			return calls < 3, nil
		})

		code, err := gen.Generate(ctx)

		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		calls := 0
		gen := NewShortIDGenerator(6, func(_ context.Context, _ string) (bool, error) {
			calls++
			return true, nil
		})

		_, err := gen.Generate(ctx)

		require.Error(t, err)
		assert.Equal(t, maxIDAttempts, calls)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		gen := NewShortIDGenerator(6, func(_ context.Context, _ string) (bool, error) {
			return false, fmt.Errorf("store down")
		})

		_, err := gen.Generate(ctx)

		assert.Error(t, err)
	})
}
