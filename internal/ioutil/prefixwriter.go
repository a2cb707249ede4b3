// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ioutil contains I/O utilities used by the fio runner.
package ioutil

import (
	"bytes"
	"io"
)

// prefixWriter is an io.Writer that starts every line with a prefix.
type prefixWriter struct {
	w      io.Writer
	prefix []byte
	// midline is true when the last write did not end a line.
	midline bool
}

// PrefixWriter returns an io.Writer that copies its writes to w,
// inserting prefix at the beginning of each line.
func PrefixWriter(w io.Writer, prefix string) io.Writer {
	return &prefixWriter{w: w, prefix: []byte(prefix)}
}

// Write writes p to the underlying writer. The returned count covers
// only bytes of p, not the prefixes.
func (w *prefixWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		if !w.midline {
			if _, err = w.w.Write(w.prefix); err != nil {
				return
			}
			w.midline = true
		}
		line := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line = p[:i+1]
			w.midline = false
		}
		var m int
		m, err = w.w.Write(line)
		n += m
		if err != nil {
			return
		}
		p = p[len(line):]
	}
	return
}
