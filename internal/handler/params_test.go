package handler

import (
	"net/url"
	"testing"
	"time"

	"github.com/locvowork/orderdash/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterSpec(t *testing.T) {
	t.Run("comma separated values", func(t *testing.T) {
		params := url.Values{
			"status":      {"Faturado,Cancelado,Em aberto"},
			"salesperson": {"ANA"},
			"from":        {"2024-01-01"},
		}
		spec, err := ParseFilterSpec(params)
		require.NoError(t, err)

		want, err := query.NewFilterSpec(
			query.WithDateFrom(mustDate(t, "2024-01-01")),
			query.WithSalesperson("ANA"),
			query.WithStatuses("Faturado", "Cancelado", "Em aberto"),
		)
		require.NoError(t, err)
		assert.Equal(t, want.Key(), spec.Key())
	})

	t.Run("repeated values keep their commas", func(t *testing.T) {
		spec, err := ParseFilterSpec(url.Values{"status": {"Faturado, parcial", "Cancelado"}})
		require.NoError(t, err)

		want, err := query.NewFilterSpec(query.WithStatuses("Faturado, parcial", "Cancelado"))
		require.NoError(t, err)
		assert.Equal(t, want.Key(), spec.Key())
	})

	t.Run("empty query is the empty filter", func(t *testing.T) {
		spec, err := ParseFilterSpec(url.Values{})
		require.NoError(t, err)
		assert.True(t, spec.IsEmpty())
	})

	t.Run("invalid dates", func(t *testing.T) {
		_, err := ParseFilterSpec(url.Values{"to": {"05/03/2024"}})
		assert.Error(t, err)
	})
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return d
}

func TestIntParam(t *testing.T) {
	n, err := intParam(url.Values{}, "limit", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = intParam(url.Values{"limit": {"3"}}, "limit", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = intParam(url.Values{"limit": {"x"}}, "limit", 7)
	assert.Error(t, err)
}
