// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package runner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/base/config"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/diskbench/fio"
)

func init() {
	config.Register("diskbench/runner", func(constr *config.Constructor) {
		r := New()
		constr.StringVar(&r.Fio, "fio", r.Fio, "the fio binary to invoke")
		constr.BoolVar(&r.Sudo, "sudo", r.Sudo, "run fio through sudo")
		constr.StringVar(&r.OutputFormat, "output-format", r.OutputFormat, "fio's output format")
		constr.StringVar(&r.TempDir, "tempdir", "", "directory in which job files are written")
		interval := constr.String("interval", "0s", "minimum time between the starts of consecutive fio jobs")
		constr.Doc = "diskbench/runner configures how fio is invoked"
		constr.New = func() (interface{}, error) {
			d, err := time.ParseDuration(*interval)
			if err != nil {
				return nil, errors.E(errors.Invalid, "parsing interval", err)
			}
			r.Interval = d
			return r, nil
		}
	})
	config.Register("diskbench/plan", func(constr *config.Constructor) {
		var plan Plan
		def := DefaultPlan()
		sizes := constr.String("block-sizes", joinInts(def.BlockSizes), "comma-separated block sizes in KiB")
		kinds := constr.String("kinds", joinKinds(def.Kinds), "comma-separated fio test kinds")
		disks := constr.String("disks", "", "comma-separated disks to benchmark; all whole disks if empty")
		sample := constr.Int("sample", 0, "number of disks sampled for each block size; all if 0")
		runtime := constr.Int("runtime", def.Runtime, "runtime of each fio job, in seconds")
		iodepth := constr.Int("iodepth", def.IODepth, "queue depth of each fio job")
		constr.BoolVar(&plan.RandomOffset, "random-offset", false, "start each fio job at a random offset")
		constr.Doc = "diskbench/plan configures the default benchmark plan"
		constr.New = func() (interface{}, error) {
			plan.Sample = *sample
			plan.Runtime = *runtime
			plan.IODepth = *iodepth
			var err error
			if plan.BlockSizes, err = splitInts(*sizes); err != nil {
				return nil, err
			}
			plan.Kinds = nil
			for _, k := range ParseList(*kinds) {
				plan.Kinds = append(plan.Kinds, fio.Kind(k))
			}
			plan.Disks = ParseList(*disks)
			return plan, plan.Validate()
		}
	})
}

func splitInts(s string) ([]int, error) {
	var ints []int
	for _, elem := range ParseList(s) {
		n, err := strconv.Atoi(elem)
		if err != nil {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("invalid block size %q", elem), err)
		}
		ints = append(ints, n)
	}
	return ints, nil
}

func joinInts(ints []int) string {
	strs := make([]string, len(ints))
	for i, n := range ints {
		strs[i] = strconv.Itoa(n)
	}
	return strings.Join(strs, ",")
}

func joinKinds(kinds []fio.Kind) string {
	strs := make([]string, len(kinds))
	for i, k := range kinds {
		strs[i] = string(k)
	}
	return strings.Join(strs, ",")
}
