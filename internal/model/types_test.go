package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.September, 14), d)

	_, err = ParseDate("14.09.2026")
	assert.Error(t, err)
}

func TestDateOnlyJSON(t *testing.T) {
	type payload struct {
		Date DateOnly `json:"date"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"1985-06-02"}`), &p))
	assert.Equal(t, NewDate(1985, time.June, 2), p.Date)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"1985-06-02"}`, string(out))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), tod)
	assert.Equal(t, "09:30", tod.String())

	// Database time columns come back with seconds.
	tod, err = ParseTimeOfDay("14:00:00")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(14, 0), tod)

	_, err = ParseTimeOfDay("half past nine")
	assert.Error(t, err)
}

func TestTimeOfDayMinutesApart(t *testing.T) {
	a := NewTimeOfDay(10, 0)
	b := NewTimeOfDay(10, 20)

	assert.Equal(t, 20, a.MinutesApart(b))
	assert.Equal(t, 20, b.MinutesApart(a))
	assert.Equal(t, 0, a.MinutesApart(a))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("15:04:00"))
	assert.Equal(t, NewTimeOfDay(15, 4), tod)

	require.NoError(t, tod.Scan([]byte("08:00:00")))
	assert.Equal(t, NewTimeOfDay(8, 0), tod)
}
