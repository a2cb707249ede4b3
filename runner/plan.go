// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package runner

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/diskbench/fio"
	yaml "gopkg.in/yaml.v2"
)

// A Plan describes the set of fio jobs in a benchmark session: every
// test kind is run on every disk at every block size.
type Plan struct {
	// BlockSizes lists block sizes in KiB.
	BlockSizes []int `yaml:"block_sizes"`
	// Disks lists the names of the block devices to benchmark. If
	// empty, the caller enumerates them.
	Disks []string `yaml:"disks,omitempty"`
	// Kinds lists the test kinds to run.
	Kinds []fio.Kind `yaml:"kinds"`
	// Sample, if positive, is the number of disks, chosen at random,
	// that are benchmarked for each block size.
	Sample int `yaml:"sample,omitempty"`
	// Runtime is the runtime of each job, in seconds.
	Runtime int `yaml:"runtime"`
	// IODepth is the queue depth of each job. Comparing iodepth=1
	// against iodepth=16 showed no difference in IOPS, so 1 is the
	// default.
	IODepth int `yaml:"iodepth"`
	// RandomOffset starts each job at a random offset.
	RandomOffset bool `yaml:"random_offset,omitempty"`
}

// DefaultPlan runs all test kinds at block sizes 4K through 2048K
// for 30 seconds each.
func DefaultPlan() Plan {
	var sizes []int
	for i := uint(2); i < 12; i++ {
		sizes = append(sizes, 1<<i)
	}
	return Plan{
		BlockSizes: sizes,
		Kinds:      append([]fio.Kind(nil), fio.Kinds...),
		Runtime:    30,
		IODepth:    1,
	}
}

// ParsePlan parses a YAML plan. Fields absent from the document keep
// their values in DefaultPlan.
func ParsePlan(data []byte) (Plan, error) {
	plan := DefaultPlan()
	if err := yaml.UnmarshalStrict(data, &plan); err != nil {
		return Plan{}, errors.E(errors.Invalid, "parsing plan", err)
	}
	return plan, plan.Validate()
}

// Validate checks that the plan is well-formed.
func (p Plan) Validate() error {
	if len(p.BlockSizes) == 0 {
		return errors.E(errors.Invalid, "plan has no block sizes")
	}
	for _, bs := range p.BlockSizes {
		if bs <= 0 {
			return errors.E(errors.Invalid, fmt.Sprintf("invalid block size %d", bs))
		}
	}
	if len(p.Kinds) == 0 {
		return errors.E(errors.Invalid, "plan has no test kinds")
	}
	for _, k := range p.Kinds {
		if !k.Valid() {
			return errors.E(errors.Invalid, fmt.Sprintf("unsupported test kind %q", k))
		}
	}
	if p.Sample < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("invalid sample %d", p.Sample))
	}
	if p.Runtime <= 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("invalid runtime %d", p.Runtime))
	}
	if p.IODepth <= 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("invalid iodepth %d", p.IODepth))
	}
	return nil
}

// ParseList splits a comma-separated list, such as a list of disks,
// trimming whitespace around its elements. Empty elements are
// dropped.
func ParseList(s string) []string {
	var list []string
	for _, elem := range strings.Split(s, ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			list = append(list, elem)
		}
	}
	return list
}
