// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package runner

import (
	"expvar"
	"fmt"
	"sync"
	"time"
)

var stats runstats

func init() {
	expvar.Publish("fio", &stats)
}

// Runstats maintains fio invocation statistics, aggregated by test
// kind and by disk. It is exported as
//
//	{"kind": {"read": {"count": .., "time": .., ...}, ...}, "disk": {"sdb": {...}, ...}}
//
// Times are in milliseconds.
type runstats struct {
	mu    sync.Mutex
	kinds expvar.Map
	disks expvar.Map
}

// String implements expvar.Var.
func (r *runstats) String() string {
	return fmt.Sprintf(`{"kind": %s, "disk": %s}`, r.kinds.String(), r.disks.String())
}

// entry returns the named entry of m, creating it if needed.
func (r *runstats) entry(m *expvar.Map, name string) *expvar.Map {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := m.Get(name).(*expvar.Map); ok {
		return e
	}
	e := new(expvar.Map)
	m.Set(name, e)
	return e
}

// Start starts a run stat for the provided job. It returns a
// function that records the outcome and duration of the run; the
// caller must call it once the run finishes. Arg bytes is the size
// of fio's report.
func (r *runstats) Start(job Job) (done func(bytes int64, err error)) {
	kind := r.entry(&r.kinds, string(job.Kind))
	disk := r.entry(&r.disks, job.Disk)
	kind.Add("count", 1)
	disk.Add("count", 1)
	start := time.Now()
	return func(bytes int64, err error) {
		ms := int64(time.Since(start) / time.Millisecond)
		kind.Add("time", ms)
		disk.Add("time", ms)
		kind.Add("reportbytes", bytes)
		if err != nil {
			kind.Add("errors", 1)
			disk.Add("errors", 1)
		}
		r.mu.Lock()
		kind.Add("maxtime", 0)
		if max := kind.Get("maxtime").(*expvar.Int); ms > max.Value() {
			max.Set(ms)
		}
		r.mu.Unlock()
	}
}
