// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"encoding/json"

	"github.com/grailbio/diskbench/fio"
)

// A Run is the outcome of a single fio invocation.
type Run struct {
	// Config is the fio job file that was run. It is informational
	// only.
	Config string `json:"config,omitempty"`
	// Result is fio's report, in its normal output format.
	Result string `json:"result"`
}

// A KindRun is a Run of a particular test kind.
type KindRun struct {
	Kind fio.Kind
	Run
}

// A Disk holds the runs performed on a single disk, in the order
// they were performed.
type Disk struct {
	Name string
	Runs []KindRun
}

// Run returns the disk's run of the provided kind.
func (d *Disk) Run(kind fio.Kind) (Run, bool) {
	for _, r := range d.Runs {
		if r.Kind == kind {
			return r.Run, true
		}
	}
	return Run{}, false
}

// A Bucket holds the runs performed at a single block size.
type Bucket struct {
	// Label is the block size label, e.g., "4K".
	Label string
	Disks []Disk
}

// Disk returns the bucket's disk with the provided name.
func (b *Bucket) Disk(name string) (*Disk, bool) {
	for i := range b.Disks {
		if b.Disks[i].Name == name {
			return &b.Disks[i], true
		}
	}
	return nil, false
}

// Results is the document produced by a benchmark session: block
// size label → disk → test kind → run. It encodes as nested JSON
// objects, preserving order.
type Results []Bucket

// Bucket returns the bucket with the provided label.
func (r Results) Bucket(label string) (*Bucket, bool) {
	for i := range r {
		if r[i].Label == label {
			return &r[i], true
		}
	}
	return nil, false
}

// Add records a run, appending buckets and disks as needed. A
// previous run of the same kind on the same disk is replaced.
func (r *Results) Add(label, disk string, kind fio.Kind, run Run) {
	b, ok := r.Bucket(label)
	if !ok {
		*r = append(*r, Bucket{Label: label})
		b = &(*r)[len(*r)-1]
	}
	d, ok := b.Disk(disk)
	if !ok {
		b.Disks = append(b.Disks, Disk{Name: disk})
		d = &b.Disks[len(b.Disks)-1]
	}
	for i := range d.Runs {
		if d.Runs[i].Kind == kind {
			d.Runs[i].Run = run
			return
		}
	}
	d.Runs = append(d.Runs, KindRun{kind, run})
}

// MarshalJSON implements json.Marshaler.
func (r Results) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, b := range r {
		if err := w.member(b.Label, diskList(b.Disks)); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Results) UnmarshalJSON(data []byte) error {
	*r = nil
	return readObject(data, func(label string, value json.RawMessage) error {
		var disks diskList
		if err := json.Unmarshal(value, &disks); err != nil {
			return err
		}
		*r = append(*r, Bucket{Label: label, Disks: disks})
		return nil
	})
}

type diskList []Disk

func (l diskList) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, d := range l {
		if err := w.member(d.Name, runList(d.Runs)); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func (l *diskList) UnmarshalJSON(data []byte) error {
	*l = nil
	return readObject(data, func(name string, value json.RawMessage) error {
		var runs runList
		if err := json.Unmarshal(value, &runs); err != nil {
			return err
		}
		*l = append(*l, Disk{Name: name, Runs: runs})
		return nil
	})
}

type runList []KindRun

func (l runList) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, r := range l {
		if err := w.member(string(r.Kind), r.Run); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func (l *runList) UnmarshalJSON(data []byte) error {
	*l = nil
	return readObject(data, func(kind string, value json.RawMessage) error {
		var run Run
		if err := json.Unmarshal(value, &run); err != nil {
			return err
		}
		// As with encoding/json maps, the last of duplicate keys wins.
		for i := range *l {
			if (*l)[i].Kind == fio.Kind(kind) {
				(*l)[i].Run = run
				return nil
			}
		}
		*l = append(*l, KindRun{fio.Kind(kind), run})
		return nil
	})
}
