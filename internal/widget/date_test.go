package widget

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	early := DateOf(time.Date(2024, 8, 15, 0, 5, 0, 0, time.UTC))
	late := DateOf(time.Date(2024, 8, 15, 23, 55, 0, 0, time.UTC))
	assert.True(t, early.Equal(late))
	assert.Equal(t, 0, early.Compare(late))
}

func TestDateOfUsesOwnLocation(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2024, 8, 15, 0, 30, 0, 0, cest)

	assert.Equal(t, NewDate(2024, time.August, 15), DateOf(local))
	assert.Equal(t, NewDate(2024, time.August, 14), DateOf(local.UTC()))
	assert.Equal(t, NewDate(2024, time.August, 15), Today(local.UTC(), cest))
}

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-08-15", NewDate(2024, time.August, 15), false},
		{"2024-8-5", NewDate(2024, time.August, 5), false},
		{"2024-02-29", NewDate(2024, time.February, 29), false},
		{"2023-02-29", Date{}, true},
		{"2024-02-30", Date{}, true},
		{"2024-13-01", Date{}, true},
		{"15-08", Date{}, true},
		{"abc-de-fg", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISODate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDMY(t *testing.T) {
	got, err := ParseDMY("15-08-2024")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.August, 15), got)

	_, err = ParseDMY("2024-08-15")
	assert.Error(t, err)
	_, err = ParseDMY("31-04-2024")
	assert.Error(t, err)
}

func TestDateFormat(t *testing.T) {
	d := NewDate(2024, time.August, 5)
	assert.Equal(t, "2024-08-05", d.Format(FormatISO))
	assert.Equal(t, "05-08-2024", d.Format(FormatDMY))
	assert.Equal(t, "08/05/2024", d.Format(FormatUS))
	assert.Equal(t, "05/08/24", d.Format(FormatCompact))
	assert.Equal(t, "05-08-2024", d.Format("unknown"))
	assert.Equal(t, "", Date{}.String())
}

func TestDateArithmetic(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.March, 2), NewDate(2024, time.January, 31).AddMonths(1))
	assert.Equal(t, NewDate(2025, time.January, 1), NewDate(2024, time.December, 31).AddDays(1))
	assert.Equal(t, 3, NewDate(2024, time.March, 30).DaysUntil(NewDate(2024, time.April, 2)))
	assert.Equal(t, -1, NewDate(2024, time.March, 2).DaysUntil(NewDate(2024, time.March, 1)))
	assert.Equal(t, time.Thursday, NewDate(2024, time.August, 15).Weekday())
	assert.Equal(t, NewDate(2024, time.August, 1), NewDate(2024, time.August, 15).FirstOfMonth())
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}
	out, err := json.Marshal(wrapper{D: NewDate(2024, time.August, 15)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-08-15"}`, string(out))

	out, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-01-02"}`), &w))
	assert.Equal(t, NewDate(2024, time.January, 2), w.D)
	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &w))
	assert.True(t, w.D.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`{"d":"2024-02-31"}`), &w))
}
