// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package fio extracts measurements from fio's "normal" (human
// readable) output. A report is scanned line by line for field
// markers such as "clat(" or "iops:"; the matching line's avg= and
// stdev= values are returned in canonical units.
//
// For example, the line
//
//	clat (usec): min=173, max=11958, avg=255.12, stdev=95.33
//
// yields (255.12e-6, 95.33e-6) for the CompletionLatency marker.
package fio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// Field markers, as they appear in fio reports with all spaces
// removed.
const (
	// SubmissionLatency marks fio's submission latency (slat).
	SubmissionLatency = "slat("
	// Latency marks fio's total latency (lat). Lines for slat and
	// clat also contain this marker; see LatencyTime.
	Latency = "lat("
	// CompletionLatency marks fio's completion latency (clat).
	CompletionLatency = "clat("
	// Bandwidth marks fio's bandwidth samples (bw).
	Bandwidth = "bw("
	// IOPS marks fio's IOPS samples.
	IOPS = "iops:"
)

const (
	avgMarker   = "avg"
	avgField    = "avg="
	stdDevField = "stdev="
)

// Extract scans report for the first line that contains marker and
// an average, and that contains none of the markers in without. It
// returns that line's average and standard deviation, scaled by the
// multiplier of the unit that follows marker. Extract returns an
// error of kind errors.NotExist if no such line exists.
func Extract(report, marker string, without ...string) (mean, stdDev float64, err error) {
	for _, line := range strings.Split(report, "\n") {
		line = strings.Replace(line, " ", "", -1)
		line = strings.TrimRight(line, "\r")
		if !strings.Contains(line, marker) || !strings.Contains(line, avgMarker) {
			continue
		}
		if containsAny(line, without) {
			continue
		}
		mult := Multiplier(unit(line, marker))
		if mean, err = field(line, avgField); err != nil {
			return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("'%s'", marker), err)
		}
		if stdDev, err = field(line, stdDevField); err != nil {
			return 0, 0, errors.E(errors.Invalid, fmt.Sprintf("'%s'", marker), err)
		}
		return mean * mult, stdDev * mult, nil
	}
	return 0, 0, errors.E(errors.NotExist, fmt.Sprintf("'%s' not found", marker))
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// unit returns the parenthesized unit that follows marker in line,
// or "" if there is none. Markers may include the opening
// parenthesis themselves.
func unit(line, marker string) string {
	rest := line[strings.Index(line, marker)+len(marker):]
	if !strings.HasSuffix(marker, "(") {
		if !strings.HasPrefix(rest, "(") {
			return ""
		}
		rest = rest[1:]
	}
	end := strings.Index(rest, ")")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// field parses the number following name in line. The number is
// terminated by the next comma or the end of the line.
func field(line, name string) (float64, error) {
	i := strings.Index(line, name)
	if i < 0 {
		return 0, fmt.Errorf("missing %q in %q", name, line)
	}
	value := line[i+len(name):]
	if end := strings.Index(value, ","); end >= 0 {
		value = value[:end]
	}
	return strconv.ParseFloat(value, 64)
}
