// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"encoding/json"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/diskbench/fio"
	"golang.org/x/sync/errgroup"
)

// A Session is one of several repeated benchmark sessions, as
// produced by a cumulative fiorun invocation.
type Session struct {
	ID      string
	Results Results
}

// Sessions is an ordered collection of sessions, keyed by session
// ID when encoded as JSON.
type Sessions []Session

// MarshalJSON implements json.Marshaler.
func (s Sessions) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, sess := range s {
		if err := w.member(sess.ID, sess.Results); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Sessions) UnmarshalJSON(data []byte) error {
	*s = nil
	return readObject(data, func(id string, value json.RawMessage) error {
		var results Results
		if err := json.Unmarshal(value, &results); err != nil {
			return err
		}
		*s = append(*s, Session{id, results})
		return nil
	})
}

// A Cell addresses a single report in a Results document.
type Cell struct {
	Label string
	Disk  string
	Kind  fio.Kind
}

// String returns the cell's path, e.g., "4K/sdd/rw".
func (c Cell) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Label, c.Disk, c.Kind)
}

// Report returns the report at cell c of the provided results.
func (c Cell) Report(results Results) (string, error) {
	b, ok := results.Bucket(c.Label)
	if !ok {
		return "", errors.E(errors.NotExist, fmt.Sprintf("%s: no block size %s", c, c.Label))
	}
	d, ok := b.Disk(c.Disk)
	if !ok {
		return "", errors.E(errors.NotExist, fmt.Sprintf("%s: no disk %s", c, c.Disk))
	}
	run, ok := d.Run(c.Kind)
	if !ok {
		return "", errors.E(errors.NotExist, fmt.Sprintf("%s: no %s report", c, c.Kind))
	}
	return run.Result, nil
}

// Samples lists per-session means and standard deviations.
type Samples struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *Samples) add(x Statistic) {
	s.Mean = append(s.Mean, x.Mean)
	s.Std = append(s.Std, x.StdDev)
}

// SectionHist holds the samples collected from either the read or
// the write sections of a cell.
type SectionHist struct {
	LatencyTime      Samples `json:"latency_time"`
	ProcessingTime   Samples `json:"processing_time"`
	TransmissionTime Samples `json:"transmission_time"`
}

// A Hist collects the distribution of a single cell's statistics
// over repeated sessions. Sections that the cell's test kind does
// not produce are left empty.
type Hist struct {
	Read  SectionHist `json:"read"`
	Write SectionHist `json:"write"`
}

type sectionStats struct {
	latency, processing, transmission Statistic
}

// CollectHist computes the latency, processing, and transmission
// statistics of cell c in each of the provided sessions. Sessions
// are parsed concurrently; samples appear in session order. If
// several sessions fail, the error of the first of them is returned.
func CollectHist(sessions Sessions, c Cell) (*Hist, error) {
	if !c.Kind.Valid() {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("unsupported test kind %q", c.Kind))
	}
	var (
		reads  = make([]sectionStats, len(sessions))
		writes = make([]sectionStats, len(sessions))
		errs   = make([]error, len(sessions))
		g      errgroup.Group
	)
	for i := range sessions {
		i := i
		g.Go(func() error {
			reads[i], writes[i], errs[i] = collectSession(sessions[i], c)
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	h := newHist(len(sessions))
	for i := range sessions {
		if c.Kind.Reads() {
			h.Read.add(reads[i])
		}
		if c.Kind.Writes() {
			h.Write.add(writes[i])
		}
	}
	return h, nil
}

// newHist returns a Hist whose sample lists are empty rather than
// nil, so that they encode as JSON arrays.
func newHist(n int) *Hist {
	h := new(Hist)
	for _, s := range []*Samples{
		&h.Read.LatencyTime, &h.Read.ProcessingTime, &h.Read.TransmissionTime,
		&h.Write.LatencyTime, &h.Write.ProcessingTime, &h.Write.TransmissionTime,
	} {
		s.Mean = make([]float64, 0, n)
		s.Std = make([]float64, 0, n)
	}
	return h
}

func collectSession(sess Session, c Cell) (read, write sectionStats, err error) {
	report, err := c.Report(sess.Results)
	if err != nil {
		return read, write, errors.E(fmt.Sprintf("session %s", sess.ID), err)
	}
	readSection, writeSection, err := sections(c.Kind, report)
	if err != nil {
		return read, write, errors.E(fmt.Sprintf("session %s: %s", sess.ID, c), err)
	}
	if c.Kind.Reads() {
		if read, err = collectSection(readSection); err != nil {
			return read, write, errors.E(fmt.Sprintf("session %s: %s: read", sess.ID, c), err)
		}
	}
	if c.Kind.Writes() {
		if write, err = collectSection(writeSection); err != nil {
			return read, write, errors.E(fmt.Sprintf("session %s: %s: write", sess.ID, c), err)
		}
	}
	return read, write, nil
}

func (h *SectionHist) add(s sectionStats) {
	h.LatencyTime.add(s.latency)
	h.ProcessingTime.add(s.processing)
	h.TransmissionTime.add(s.transmission)
}

func collectSection(section string) (s sectionStats, err error) {
	if s.latency.Mean, s.latency.StdDev, err = fio.LatencyTime(section); err != nil {
		return
	}
	if s.processing.Mean, s.processing.StdDev, err = fio.ProcessingTime(section); err != nil {
		return
	}
	s.transmission.Mean, s.transmission.StdDev, err = fio.TransmissionTime(section)
	return
}
