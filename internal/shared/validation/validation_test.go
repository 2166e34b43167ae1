package validation

import (
	"context"
	"errors"
	"testing"

	"ticketeer/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"notblank,max=10"`
	Price float64 `json:"price" validate:"gt=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Struct("sample", sample{Name: "ok", Price: 1}))
	})

	t.Run("whitespace name is blank", func(t *testing.T) {
		err := Struct("sample", sample{Name: "   ", Price: 1})
		require.ErrorIs(t, err, apperr.ErrValidation)

		var vErr *apperr.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "name", vErr.Field)
		assert.Equal(t, "must not be blank", vErr.Reason)
	})

	t.Run("non positive price", func(t *testing.T) {
		err := Struct("sample", &sample{Name: "x", Price: 0})

		var vErr *apperr.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "price", vErr.Field)
		assert.Equal(t, "must be greater than 0", vErr.Reason)
	})
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var calls []string
	first := func(context.Context, int) error {
		calls = append(calls, "first")
		return apperr.Invalid("n", "", "first failed")
	}
	second := func(context.Context, int) error {
		calls = append(calls, "second")
		return nil
	}

	err := Run(context.Background(), 1, first, second)

	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, []string{"first"}, calls)
}

func TestRunPassesWhenAllRulesPass(t *testing.T) {
	ok := func(context.Context, sample) error { return nil }
	err := Run(context.Background(), sample{Name: "a", Price: 2}, Fields[sample]("sample"), ok)
	require.NoError(t, err)
}
