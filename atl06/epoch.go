package atl06

import (
	"math"
	"time"
)

// SDPEpoch is the ATLAS Standard Data Product epoch. delta_time variables
// count seconds from it.
var SDPEpoch = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeltaTime converts a delta_time value to a time relative to SDPEpoch.
// Leap seconds since the epoch are not applied.
func DeltaTime(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return SDPEpoch.Add(time.Duration(whole)*time.Second +
		time.Duration(math.Round(frac*1e9)))
}
