// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Package diskbench turns fio benchmark sessions into disk models.

A benchmark session runs fio once for every combination of block
size, disk, and test kind (see package runner). Its outcome is a
Results document: fio's human-readable reports, keyed by block size
label ("4K"), disk ("sdb"), and test kind ("randread"). Parse reduces
such a document to one PacketConfig per block size. A PacketConfig
describes how a disk request spends its time:

	transmission_time      fio's submission latency (slat)
	latency_time           fio's total latency (lat)
	read_processing_time   completion latency (clat) of reads
	write_processing_time  completion latency (clat) of writes

and, for each test kind, the rate time (block size over bandwidth),
the seek time (1/IOPS), and a fixed command overhead.

Each statistic is a (mean, std_dev) pair. Samples are pooled across
disks and test kinds by taking the mean of their means and the
Euclidean norm of their standard deviations. Reports of combined
read-write tests (rw, randrw) contribute a sample from each of their
read and write sections.

CollectHist instead follows a single report across many repeated
sessions, collecting per-session samples so that their distribution
can be examined.
*/
package diskbench
