package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDateNormalisesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	d := NewOrderDate(time.Date(2026, 10, 15, 23, 30, 0, 0, loc))

	assert.Equal(t, "2026-10-15", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())
	assert.Zero(t, d.Time().Hour())
}

func TestOrderDateJSON(t *testing.T) {
	var d OrderDate
	require.NoError(t, json.Unmarshal([]byte(`"2026-01-02"`), &d))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-02"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"02/01/2026"`), &d))
}

func TestOrderDateEqual(t *testing.T) {
	a, err := ParseOrderDate("2026-10-15")
	require.NoError(t, err)
	b := NewOrderDate(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	assert.True(t, a.Equal(b))
}
