// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fio

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// CommandOverhead is the fixed command processing time of a drive:
// the time its electronics take to set up a read or write. It is on
// the order of 3µs and is not measured by fio.
const CommandOverhead = 3e-6

// TransmissionTime returns the submission latency (slat) of a report,
// in seconds.
func TransmissionTime(report string) (mean, stdDev float64, err error) {
	return Extract(report, SubmissionLatency)
}

// LatencyTime returns the total latency (lat) of a report, in
// seconds. The slat and clat lines share lat's marker and are
// skipped.
func LatencyTime(report string) (mean, stdDev float64, err error) {
	return Extract(report, Latency, "slat", "clat")
}

// ProcessingTime returns the completion latency (clat) of a report,
// in seconds.
func ProcessingTime(report string) (mean, stdDev float64, err error) {
	return Extract(report, CompletionLatency)
}

// RateTime returns the time to transfer blockSize bytes at the
// report's mean bandwidth. Its standard deviation is always 0:
// propagating bandwidth variance through the reciprocal is not
// implemented.
func RateTime(report string, blockSize int) (mean, stdDev float64, err error) {
	bw, _, err := Extract(report, Bandwidth)
	if err != nil {
		return 0, 0, err
	}
	if bw == 0 {
		return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("'%s' has zero mean", Bandwidth))
	}
	return float64(blockSize) / bw, 0, nil
}

// SeekTime returns the mean seek time (average rotational delay plus
// average seek) of a report, computed as 1/IOPS. As with RateTime,
// its standard deviation is always 0.
func SeekTime(report string) (mean, stdDev float64, err error) {
	iops, _, err := Extract(report, IOPS)
	if err != nil {
		return 0, 0, err
	}
	if iops == 0 {
		return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("'%s' has zero mean", IOPS))
	}
	return 1 / iops, 0, nil
}

// OverheadsTime returns the fixed command overhead. The report is
// not consulted.
func OverheadsTime(report string) (mean, stdDev float64) {
	return CommandOverhead, 0
}
