package atl06

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeltaTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Time
	}{
		{"epoch", 0, SDPEpoch},
		{"fractional", 86401.5, time.Date(2018, time.January, 2, 0, 0, 1, 500_000_000, time.UTC)},
		{"before epoch", -1, time.Date(2017, time.December, 31, 23, 59, 59, 0, time.UTC)},
		{"granule time", 2.5e7, time.Date(2018, time.October, 17, 8, 26, 40, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeltaTime(tt.seconds))
		})
	}
}
