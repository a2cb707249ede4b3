// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"fmt"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/diskbench/fio"
)

// BlockSize returns the block size denoted by a block size label
// such as "4K". The label's numeric prefix is scaled by 1000, so
// "4K" is 4000; this matches how fio rates are converted by
// fio.Multiplier.
func BlockSize(label string) (int, error) {
	if len(label) < 2 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("invalid block size label %q", label))
	}
	n, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || n <= 0 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("invalid block size label %q", label))
	}
	return n * 1000, nil
}

// Parse computes a PacketConfig for each block size in the provided
// results. Every disk of a block size must carry a report for each
// supported test kind; runs of unsupported kinds are ignored. Parse
// fails if any required field is missing from a report, or if the
// results are otherwise malformed; it never returns partial
// results.
func Parse(results Results) (PacketConfigs, error) {
	configs := make(PacketConfigs, 0, len(results))
	for _, b := range results {
		config, err := parseBucket(b)
		if err != nil {
			return nil, errors.E(fmt.Sprintf("block size %s", b.Label), err)
		}
		configs = append(configs, LabeledConfig{b.Label, config})
	}
	if len(configs) != len(results) {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("parsed %d block sizes, want %d", len(configs), len(results)))
	}
	return configs, nil
}

func parseBucket(b Bucket) (PacketConfig, error) {
	var config PacketConfig
	size, err := BlockSize(b.Label)
	if err != nil {
		return config, err
	}
	if len(b.Disks) == 0 {
		return config, errors.E(errors.Invalid, "no disks")
	}
	config.Size = size

	var trans, latency, readProc, writeProc samples
	for _, d := range b.Disks {
		for _, r := range d.Runs {
			if !r.Kind.Valid() {
				log.Debug.Printf("%s/%s: ignoring unsupported test kind %q", b.Label, d.Name, r.Kind)
				continue
			}
			read, write, err := sections(r.Kind, r.Result)
			if err != nil {
				return config, errors.E(fmt.Sprintf("%s/%s", d.Name, r.Kind), err)
			}
			if r.Kind.Reads() {
				if err := common(read, &trans, &latency, &readProc); err != nil {
					return config, errors.E(fmt.Sprintf("%s/%s: read", d.Name, r.Kind), err)
				}
			}
			if r.Kind.Writes() {
				if err := common(write, &trans, &latency, &writeProc); err != nil {
					return config, errors.E(fmt.Sprintf("%s/%s: write", d.Name, r.Kind), err)
				}
			}
		}
	}

	var (
		ndisk  = len(b.Disks)
		nread  = ndisk * fio.NumReads()
		nwrite = ndisk * fio.NumWrites()
		checks = []struct {
			name string
			s    *samples
			want int
		}{
			{"transmission_time", &trans, nread + nwrite},
			{"latency_time", &latency, nread + nwrite},
			{"read_processing_time", &readProc, nread},
			{"write_processing_time", &writeProc, nwrite},
		}
	)
	for _, c := range checks {
		if got := c.s.len(); got != c.want {
			return config, errors.E(errors.Invalid,
				fmt.Sprintf("%s: got %d samples from %d disks, want %d", c.name, got, ndisk, c.want))
		}
	}
	config.TransmissionTime = trans.reduce()
	config.LatencyTime = latency.reduce()
	config.ReadProcessingTime = readProc.reduce()
	config.WriteProcessingTime = writeProc.reduce()

	for _, kind := range fio.Kinds {
		kc, err := parseKind(b, kind, size)
		if err != nil {
			return config, err
		}
		*config.Kind(kind) = kc
	}
	return config, nil
}

// sections returns the read and write sections of a report of the
// given kind. Combined reports must contain a write section.
func sections(kind fio.Kind, report string) (read, write string, err error) {
	switch kind.Family() {
	case fio.ReadOnly:
		return report, "", nil
	case fio.WriteOnly:
		return "", report, nil
	case fio.Combined:
		var ok bool
		read, write, ok = fio.Split(report)
		if !ok {
			return "", "", errors.E(errors.Invalid,
				fmt.Sprintf("combined report has no %q section", fio.WriteMarker))
		}
		return read, write, nil
	default:
		return "", "", errors.E(errors.Invalid, fmt.Sprintf("unsupported test kind %q", kind))
	}
}

// common extracts the statistics shared by all test kinds from a
// read or write section.
func common(section string, trans, latency, proc *samples) error {
	mean, stdDev, err := fio.TransmissionTime(section)
	if err != nil {
		return err
	}
	trans.add(mean, stdDev)
	if mean, stdDev, err = fio.LatencyTime(section); err != nil {
		return err
	}
	latency.add(mean, stdDev)
	if mean, stdDev, err = fio.ProcessingTime(section); err != nil {
		return err
	}
	proc.add(mean, stdDev)
	return nil
}

// parseKind computes the rate, seek, and overhead statistics of a
// test kind over all of a bucket's disks.
func parseKind(b Bucket, kind fio.Kind, size int) (KindConfig, error) {
	var rate, seek, overheads samples
	for _, d := range b.Disks {
		run, ok := d.Run(kind)
		if !ok {
			return KindConfig{}, errors.E(errors.Invalid, fmt.Sprintf("disk %s has no %s report", d.Name, kind))
		}
		kc, err := diskKind(kind, run.Result, size)
		if err != nil {
			return KindConfig{}, errors.E(fmt.Sprintf("%s/%s", d.Name, kind), err)
		}
		rate.addStat(kc.RateTime)
		seek.addStat(kc.SeekTime)
		overheads.addStat(kc.OverheadsTime)
	}
	return KindConfig{
		RateTime:      rate.reduce(),
		SeekTime:      seek.reduce(),
		OverheadsTime: overheads.reduce(),
	}, nil
}

// diskKind computes the rate, seek, and overhead statistics of a
// single report. The halves of combined reports are computed
// independently and then aggregated.
func diskKind(kind fio.Kind, report string, size int) (KindConfig, error) {
	if kind.Family() != fio.Combined {
		return sectionKind(report, size)
	}
	read, write, err := sections(kind, report)
	if err != nil {
		return KindConfig{}, err
	}
	r, err := sectionKind(read, size)
	if err != nil {
		return KindConfig{}, errors.E("read", err)
	}
	w, err := sectionKind(write, size)
	if err != nil {
		return KindConfig{}, errors.E("write", err)
	}
	return KindConfig{
		RateTime:      AggregateRW(r.RateTime, w.RateTime),
		SeekTime:      AggregateRW(r.SeekTime, w.SeekTime),
		OverheadsTime: AggregateRW(r.OverheadsTime, w.OverheadsTime),
	}, nil
}

func sectionKind(section string, size int) (KindConfig, error) {
	var (
		kc  KindConfig
		err error
	)
	if kc.RateTime.Mean, kc.RateTime.StdDev, err = fio.RateTime(section, size); err != nil {
		return kc, err
	}
	if kc.SeekTime.Mean, kc.SeekTime.StdDev, err = fio.SeekTime(section); err != nil {
		return kc, err
	}
	kc.OverheadsTime.Mean, kc.OverheadsTime.StdDev = fio.OverheadsTime(section)
	return kc, nil
}
