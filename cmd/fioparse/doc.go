// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Fioparse reduces a results document written by fiorun to packet
configs: for each block size, the transmission, latency, and
processing times of a disk request, and the rate, seek, and overhead
times of each test kind, as means and standard deviations in seconds
aggregated over all benchmarked disks.

	fioparse -test fio_tests/fio_tests_0.json -config packet_configs/packet_config_0.json

Paths may be S3 URLs (s3://bucket/key). Any report that lacks a field
the reduction needs is fatal; no partial output is written.
*/
package main
