// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Statistic summarizes a measured quantity, in seconds, over a
// population of samples.
type Statistic struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// AggregateRW combines the statistics of the read and write halves
// of a combined read-write test. The means are averaged and the
// standard deviations are combined by their Euclidean norm, treating
// the halves as independent populations. This is not a pooled
// variance.
func AggregateRW(read, write Statistic) Statistic {
	return Reduce(
		[]float64{read.Mean, write.Mean},
		[]float64{read.StdDev, write.StdDev},
	)
}

// Reduce combines per-sample means and standard deviations into a
// single Statistic: the arithmetic mean of the means and the
// Euclidean norm of the standard deviations.
func Reduce(means, stdDevs []float64) Statistic {
	return Statistic{
		Mean:   stat.Mean(means, nil),
		StdDev: floats.Norm(stdDevs, 2),
	}
}

// samples accumulates means and standard deviations for Reduce.
type samples struct {
	means, stdDevs []float64
}

func (s *samples) add(mean, stdDev float64) {
	s.means = append(s.means, mean)
	s.stdDevs = append(s.stdDevs, stdDev)
}

func (s *samples) addStat(x Statistic) {
	s.add(x.Mean, x.StdDev)
}

func (s *samples) len() int { return len(s.means) }

func (s *samples) reduce() Statistic {
	return Reduce(s.means, s.stdDevs)
}
