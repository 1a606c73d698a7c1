package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{"empty falls back", "", "UTC"},
		{"unknown falls back", "Mars/Olympus_Mons", "UTC"},
		{"known zone", "UTC", "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.LoadLocation(tt.zone).String())
		})
	}
}

func TestNowAndFormat(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.Equal(t, timezone.Location(), timezone.Now().Location())

	utcTime := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	appTime := timezone.ToAppTime(utcTime)

	assert.True(t, utcTime.Equal(appTime))
	assert.Equal(t, appTime.Format(time.DateTime), timezone.Format(utcTime, time.DateTime))
}

func TestDateOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2025, 3, 1, 23, 59, 59, 0, jakarta)

	date := timezone.DateOf(late)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, timezone.Now().Day(), today.Day())
}

func TestParseStay(t *testing.T) {
	in, out, err := timezone.ParseStay("2025-03-01", "2025-03-03")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), in)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), out)
	assert.Equal(t, timezone.DateOf(in), in)

	_, _, err = timezone.ParseStay("2025-03-01", "03/03/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid date "03/03/2025"`)

	_, _, err = timezone.ParseStay("2025-02-30", "2025-03-03")
	require.Error(t, err)
}
