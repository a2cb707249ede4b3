// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fio

import "strings"

// WriteMarker introduces the write section of a combined report.
const WriteMarker = "write"

// Split splits a combined read-write report at the first occurrence
// of WriteMarker. The read section is everything before the marker;
// the write section starts with it. If the marker is absent, Split
// returns the whole report as the read section, an empty write
// section, and ok=false.
func Split(report string) (read, write string, ok bool) {
	i := strings.Index(report, WriteMarker)
	if i < 0 {
		return report, "", false
	}
	return report[:i], report[i:], true
}
