package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantLon float64
		wantLat float64
		wantNil bool
	}{
		{"wkt point", "POINT (-82.40426 40.06021)", -82.40426, 40.06021, false},
		{"wkt lowercase", "point(-106.13 38.84)", -106.13, 38.84, false},
		{"legacy pair lat first", "(40.06021, -82.40426)", -82.40426, 40.06021, false},
		{"empty", "", 0, 0, true},
		{"garbage", "somewhere in Ohio", 0, 0, true},
		{"latitude out of range", "(95.0, -82.4)", 0, 0, true},
		{"longitude out of range", "POINT (-185.0 40.0)", 0, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pt := parseGeoLocation(tt.in)
			if tt.wantNil {
				assert.Nil(t, pt)
				return
			}
			require.NotNil(t, pt)
			assert.InDelta(t, tt.wantLon, pt.X(), 1e-9)
			assert.InDelta(t, tt.wantLat, pt.Y(), 1e-9)
			assert.Equal(t, 4326, pt.SRID())
		})
	}
}
