package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sertec/pkg/dates"
)

func TestToAPIFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"display date", "25/04/2023", "2023-04-25"},
		{"timestamp keeps time", "25/04/2023 14:30:00", "2023-04-25 14:30:00"},
		{"pads one digit parts", "5/4/2023", "2023-04-05"},
		{"already api format", "2023-04-25", "2023-04-25"},
		{"empty", "", ""},
		{"two parts", "25/04", "25/04"},
		{"letters", "aa/bb/cccc", "aa/bb/cccc"},
		{"short year", "25/04/23", "25/04/23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.ToAPIFormat(tt.in))
		})
	}
}

func TestToDisplayFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"api date", "2023-04-25", "25/04/2023"},
		{"timestamp keeps time", "2023-04-25 14:30:00", "25/04/2023 14:30:00"},
		{"rfc3339 drops time", "2023-04-25T14:30:00Z", "25/04/2023"},
		{"already display format", "25/04/2023", "25/04/2023"},
		{"empty", "", ""},
		{"garbage", "not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.ToDisplayFormat(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Before(start.AddDate(2, 0, 0)); d = d.AddDate(0, 0, 7) {
		api := d.Format(dates.APILayout)
		display := d.Format(dates.DisplayLayout)

		assert.Equal(t, api, dates.ToAPIFormat(dates.ToDisplayFormat(api)))
		assert.Equal(t, display, dates.ToDisplayFormat(dates.ToAPIFormat(display)))
	}
}

func TestParseFlexible(t *testing.T) {
	loc := time.UTC

	t.Run("accepts every declared layout", func(t *testing.T) {
		want := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
		for _, in := range []string{"2024-02-01", "01-02-2024", "2024/02/01", "01/02/2024"} {
			got, ok := dates.ParseFlexibleIn(in, loc)
			require.True(t, ok, in)
			assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
		}
	})

	t.Run("day first is never swapped by value range", func(t *testing.T) {
		got, ok := dates.ParseFlexibleIn("01/02/2024", loc)
		require.True(t, ok)
		assert.Equal(t, time.February, got.Month())
		assert.Equal(t, 1, got.Day())
	})

	t.Run("timestamps", func(t *testing.T) {
		got, ok := dates.ParseFlexibleIn("2024-02-01 10:11:12", loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 2, 1, 10, 11, 12, 0, loc), got)

		_, ok = dates.ParseFlexibleIn("2024-02-01T10:11:12-03:00", loc)
		assert.True(t, ok)
	})

	t.Run("rejects loose or invalid input", func(t *testing.T) {
		for _, in := range []string{"", "   ", "2024-2-1", "32/01/2024", "2024-13-01", "hoy", "01.02.2024"} {
			_, ok := dates.ParseFlexibleIn(in, loc)
			assert.False(t, ok, in)
		}
	})

	t.Run("nil location falls back to local", func(t *testing.T) {
		_, ok := dates.ParseFlexibleIn("2024-02-01", nil)
		assert.True(t, ok)
	})
}

func TestFormatHelpers(t *testing.T) {
	d := time.Date(2023, 4, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-04-25", dates.FormatAPI(d))
	assert.Equal(t, "25/04/2023", dates.FormatDisplay(d))
	assert.Equal(t, "", dates.FormatAPI(time.Time{}))
	assert.Equal(t, "", dates.FormatDisplay(time.Time{}))
}
