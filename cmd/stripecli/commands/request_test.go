package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldArgs(t *testing.T) {
	t.Parallel()

	t.Run("flat fields", func(t *testing.T) {
		t.Parallel()

		params, err := parseFieldArgs([]string{"amount=2000", "currency=usd"})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"amount": "2000", "currency": "usd"}, params)
	})

	t.Run("bracket notation nests", func(t *testing.T) {
		t.Parallel()

		params, err := parseFieldArgs([]string{"card[number]=4242", "card[exp_month]=12"})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"card": map[string]any{
				"number":    "4242",
				"exp_month": "12",
			},
		}, params)
	})

	t.Run("deep nesting", func(t *testing.T) {
		t.Parallel()

		params, err := parseFieldArgs([]string{"a[b][c]=1"})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"a": map[string]any{"b": map[string]any{"c": "1"}},
		}, params)
	})

	t.Run("empty value allowed", func(t *testing.T) {
		t.Parallel()

		params, err := parseFieldArgs([]string{"description="})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"description": ""}, params)
	})

	t.Run("missing equals", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldArgs([]string{"amount"})
		require.ErrorIs(t, err, ErrInvalidFieldArg)
	})

	t.Run("empty field name", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldArgs([]string{"=value"})
		require.ErrorIs(t, err, ErrInvalidFieldArg)
	})

	t.Run("unclosed bracket", func(t *testing.T) {
		t.Parallel()

		_, err := parseFieldArgs([]string{"card[number=4242"})
		require.ErrorIs(t, err, ErrInvalidFieldArg)
	})
}

func TestSplitFieldPath(t *testing.T) {
	t.Parallel()

	segments, err := splitFieldPath("card[number]")
	require.NoError(t, err)
	assert.Equal(t, []string{"card", "number"}, segments)

	segments, err = splitFieldPath("amount")
	require.NoError(t, err)
	assert.Equal(t, []string{"amount"}, segments)
}
