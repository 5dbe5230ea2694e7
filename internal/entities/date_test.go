package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: "2024-01-02", want: NewDate(2024, time.January, 2)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "impossible day", input: "2024-02-30", wantErr: true},
		{name: "slashes", input: "2024/01/02", wantErr: true},
		{name: "day first", input: "02-01-2024", wantErr: true},
		{name: "with time", input: "2024-01-02T10:00:00Z", wantErr: true},
		{name: "missing padding", input: "2024-1-2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDate_StringAndAddDays(t *testing.T) {
	d := MustParseDate("2024-12-31")

	assert.Equal(t, "2024-12-31", d.String())
	assert.Equal(t, "2025-01-01", d.AddDays(1).String())
	assert.Equal(t, "2024-12-30", d.AddDays(-1).String())
	assert.Equal(t, "", Date{}.String())
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, time.March, 5, 23, 59, 0, 0, loc)

	assert.Equal(t, "2024-03-05", DateOf(late).String())
}

func TestDate_Comparisons(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("2024-01-01")))
	assert.False(t, a.After(a))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Until Date `json:"until"`
	}

	data, err := json.Marshal(payload{Until: MustParseDate("2024-01-02")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"until":"2024-01-02"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"until":"2025-06-30"}`), &p))
	assert.Equal(t, "2025-06-30", p.Until.String())

	assert.Error(t, json.Unmarshal([]byte(`{"until":"30.06.2025"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"until":20250630}`), &p))

	require.NoError(t, json.Unmarshal([]byte(`{"until":null}`), &p))
	assert.True(t, p.Until.IsZero())
}

func TestDate_ValueAndScan(t *testing.T) {
	d := MustParseDate("2024-01-02")

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)

	var fromString Date
	require.NoError(t, fromString.Scan("2024-01-02"))
	assert.True(t, d.Equal(fromString))

	var fromBytes Date
	require.NoError(t, fromBytes.Scan([]byte("2024-01-02")))
	assert.True(t, d.Equal(fromBytes))

	var fromTime Date
	require.NoError(t, fromTime.Scan(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, d.Equal(fromTime))

	var fromTimestampText Date
	require.NoError(t, fromTimestampText.Scan("2024-01-02 00:00:00+00:00"))
	assert.True(t, d.Equal(fromTimestampText))

	var fromNil Date
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())

	var fromISOText Date
	require.NoError(t, fromISOText.Scan("2024-01-02T00:00:00Z"))
	assert.True(t, d.Equal(fromISOText))

	var bad Date
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("2024-01-02garbage"))
	assert.Error(t, bad.Scan([]byte("2024-01-021")))
}
