package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOrdering(t *testing.T) {
	days := Weekdays()
	require.Len(t, days, NumWeekdays)

	expected := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, day := range days {
		assert.Equal(t, Weekday(i), day)
		assert.Equal(t, expected[i], day.String())
	}

	// Rank order is not alphabetical order.
	assert.True(t, Friday < Saturday)
	assert.True(t, Monday < Sunday)
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Weekday
		wantErr bool
	}{
		{"monday", "Monday", Monday, false},
		{"sunday", "Sunday", Sunday, false},
		{"lowercase is not canonical", "monday", 0, true},
		{"abbreviation is not canonical", "Mon", 0, true},
		{"empty", "", 0, true},
		{"arbitrary string", "Funday", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Weekday
	}{
		{"reference wednesday", time.Date(2011, 1, 5, 10, 0, 0, 0, time.UTC), Wednesday},
		{"a sunday maps to rank 6", time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), Sunday},
		{"a monday maps to rank 0", time.Date(2011, 1, 3, 0, 0, 0, 0, time.UTC), Monday},
		{"a saturday maps to rank 5", time.Date(2011, 1, 8, 23, 59, 0, 0, time.UTC), Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekdayOf(tt.date))
		})
	}
}

func TestWeekdayTextRoundTrip(t *testing.T) {
	for _, day := range Weekdays() {
		text, err := day.MarshalText()
		require.NoError(t, err)

		var back Weekday
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, day, back)
	}
}

func TestWeekdayInvalidRank(t *testing.T) {
	bad := Weekday(7)
	assert.False(t, bad.IsValid())

	_, err := bad.MarshalText()
	assert.Error(t, err)

	var d Weekday
	assert.Error(t, d.UnmarshalText([]byte("Someday")))
}
