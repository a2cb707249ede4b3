// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package disks enumerates the block devices that can be benchmarked.
package disks

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/shirou/gopsutil/disk"
)

// wholeDisk matches the names of whole block devices: SCSI, virtio,
// Xen, and IDE disks, and NVMe namespaces. Partitions do not match.
var wholeDisk = regexp.MustCompile(`^((s|v|xv|h)d[a-z]+|nvme[0-9]+n[0-9]+)$`)

// partition matches partition device names and captures the name of
// the disk they belong to.
var partition = regexp.MustCompile(`^((?:s|v|xv|h)d[a-z]+)[0-9]+$|^(nvme[0-9]+n[0-9]+)p[0-9]+$`)

// List returns the sorted names of the host's whole disks. If
// excludeMounted is true, disks that back a mounted filesystem,
// directly or through one of their partitions, are omitted.
func List(excludeMounted bool) ([]string, error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return nil, errors.E("listing block devices", err)
	}
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	var mounted []string
	if excludeMounted {
		parts, err := disk.Partitions(false)
		if err != nil {
			return nil, errors.E("listing partitions", err)
		}
		for _, p := range parts {
			mounted = append(mounted, p.Device)
		}
	}
	return Filter(names, mounted), nil
}

// Filter returns the sorted whole-disk names among names, omitting
// disks that back any of the provided mounted devices. Mounted
// devices may be given as paths, e.g., "/dev/nvme0n1p1".
func Filter(names, mounted []string) []string {
	busy := make(map[string]bool)
	for _, dev := range mounted {
		busy[Parent(filepath.Base(dev))] = true
	}
	var disks []string
	for _, name := range names {
		if wholeDisk.MatchString(name) && !busy[name] {
			disks = append(disks, name)
		}
	}
	sort.Strings(disks)
	return disks
}

// Parent returns the name of the disk to which the named partition
// belongs. Names that are not partitions are returned unchanged.
func Parent(name string) string {
	m := partition.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return strings.Join(m[1:], "")
}
