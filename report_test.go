// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"fmt"
	"math"
	"strings"

	"github.com/grailbio/diskbench/fio"
)

// section describes the values of a fake fio report section.
// Latencies are in microseconds, bandwidth in KiB/s.
type section struct {
	slat, clat, lat, bw Statistic
	iops                float64
}

var (
	readSection = section{
		slat: Statistic{10, 1},
		clat: Statistic{100, 10},
		lat:  Statistic{110, 11},
		bw:   Statistic{1000, 50},
		iops: 250,
	}
	writeSection = section{
		slat: Statistic{20, 2},
		clat: Statistic{200, 20},
		lat:  Statistic{220, 22},
		bw:   Statistic{500, 25},
		iops: 125,
	}
)

func (s section) text(name string) string {
	return fmt.Sprintf(`  %s: IOPS=%g, BW=%gKiB/s (%gkB/s)(14.1MiB/30001msec)
    slat (usec): min=1, max=500, avg=%g, stdev=%g
    clat (usec): min=1, max=5000, avg=%g, stdev=%g
     lat (usec): min=1, max=5000, avg=%g, stdev=%g
    clat percentiles (usec):
     |  1.00th=[  202],  5.00th=[  221], 10.00th=[  239], 20.00th=[  371],
   bw (  KiB/s): min=  368, max= 1600, per=99.97%%, avg=%g, stdev=%g, samples=60
   iops        : min=   92, max=  400, avg=%g, stdev=3.10, samples=60
`, name, s.iops, s.bw.Mean, s.bw.Mean*1.024,
		s.slat.Mean, s.slat.StdDev,
		s.clat.Mean, s.clat.StdDev,
		s.lat.Mean, s.lat.StdDev,
		s.bw.Mean, s.bw.StdDev,
		s.iops)
}

// fakeReport returns an fio report for the provided test kind.
// Read-only reports use r, write-only reports use w, and combined
// reports use both.
func fakeReport(kind fio.Kind, r, w section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s_test: (g=0): rw=%s, bs=(R) 4096B-4096B, ioengine=libaio, iodepth=1\n", kind, kind)
	b.WriteString("fio-3.1\nStarting 1 process\n\n")
	fmt.Fprintf(&b, "%s_test: (groupid=0, jobs=1): err= 0: pid=4242: Mon Oct  7 10:12:41 2019\n", kind)
	if kind.Reads() {
		b.WriteString(r.text("read"))
	}
	if kind.Writes() {
		b.WriteString(w.text("write"))
	}
	b.WriteString("  lat (usec)   : 250=45.00%, 500=20.00%, 750=1.00%\n")
	b.WriteString("  cpu          : usr=0.20%, sys=0.80%, ctx=7200, majf=0, minf=10\n")
	return b.String()
}

// fakeResults returns a Results document with a single bucket, in
// which each of the named disks carries a report for every test kind.
func fakeResults(label string, disks ...string) Results {
	var results Results
	for _, disk := range disks {
		for _, kind := range fio.Kinds {
			results.Add(label, disk, kind, Run{
				Config: fmt.Sprintf("[%s_test]\nrw=%s", kind, kind),
				Result: fakeReport(kind, readSection, writeSection),
			})
		}
	}
	return results
}

func near(x, y float64) bool {
	return math.Abs(x-y) <= 1e-9*math.Max(math.Abs(x), math.Abs(y))
}

func nearStat(x, y Statistic) bool {
	return near(x.Mean, y.Mean) && near(x.StdDev, y.StdDev)
}
