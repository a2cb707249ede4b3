// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fio

// multipliers converts unit labels, as they appear in fio's normal
// output, into seconds (for latencies) or bytes per second (for
// bandwidths).
var multipliers = map[string]float64{
	"sec":   1,
	"msec":  1e-3,
	"usec":  1e-6,
	"nsec":  1e-9,
	"KB/s":  1000,
	"KiB/s": 1000,
}

// Multiplier returns the factor that converts a value reported in
// the given unit into the canonical unit. Unrecognized units
// (including the empty unit) have a multiplier of 1.
func Multiplier(unit string) float64 {
	if m, ok := multipliers[unit]; ok {
		return m
	}
	return 1
}
