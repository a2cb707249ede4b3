// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package runner

import (
	"fmt"
	"strings"

	"github.com/grailbio/diskbench/fio"
)

// A Job describes a single fio invocation.
type Job struct {
	Kind fio.Kind
	// BlockSize is the block size in KiB.
	BlockSize int
	// Disk is the name of the block device under /dev.
	Disk    string
	IODepth int
	// Offset, if nonzero, is the percentage of the device at which
	// I/O starts. Random offsets defeat the device's caches between
	// repeated runs.
	Offset int
}

// Label returns the block size label of the job, e.g., "4K".
func (j Job) Label() string {
	return fmt.Sprintf("%dK", j.BlockSize)
}

// JobFile renders the fio job file for j. The job bypasses the page
// cache and uses libaio.
func (j Job) JobFile() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s_test]\n", j.Kind)
	fmt.Fprintf(&b, "blocksize=%dk\n", j.BlockSize)
	fmt.Fprintf(&b, "filename=/dev/%s\n", j.Disk)
	fmt.Fprintf(&b, "rw=%s\n", j.Kind)
	b.WriteString("direct=1\n")
	b.WriteString("buffered=0\n")
	b.WriteString("ioengine=libaio\n")
	fmt.Fprintf(&b, "iodepth=%d", j.IODepth)
	if j.Offset > 0 {
		fmt.Fprintf(&b, "\noffset=%d%%", j.Offset)
	}
	return b.String()
}
