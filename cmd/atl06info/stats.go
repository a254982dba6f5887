package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// fillValue is the _FillValue of ATL06 float32 variables, widened.
const fillValue = math.MaxFloat32

type summary struct {
	n, valid       int
	min, max, mean float64
}

func (s summary) String() string {
	if s.valid == 0 {
		return fmt.Sprintf("n=%d valid=0", s.n)
	}
	return fmt.Sprintf("n=%d valid=%d min=%g max=%g mean=%g", s.n, s.valid, s.min, s.max, s.mean)
}

// summarize describes values, leaving out NaNs and fill values.
func summarize(values []float64) summary {
	s := summary{n: len(values)}

	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.Abs(v) >= fillValue {
			continue
		}
		valid = append(valid, v)
	}
	s.valid = len(valid)
	if s.valid == 0 {
		return s
	}

	s.min = floats.Min(valid)
	s.max = floats.Max(valid)
	s.mean = stat.Mean(valid, nil)
	return s
}
