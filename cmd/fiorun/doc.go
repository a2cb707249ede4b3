// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Fiorun benchmarks the host's disks with fio. For every block size in
the benchmark plan, it runs each test kind on each disk (or on a random
sample of the disks) and saves fio's reports as a JSON results document
that fioparse and fiohist consume:

	{
	  "4K": {
	    "sdb": {
	      "read": {"config": "[read_test]\n...", "result": "read_test: (groupid=0, ..."},
	      ...
	    },
	    ...
	  },
	  ...
	}

How fio is invoked, and the default plan, are configured by the
diskbench/runner and diskbench/plan instances of the grail profile:

	param diskbench/runner (
		fio = "/usr/local/bin/fio"
		interval = "5s"
	)
	param diskbench/plan (
		block-sizes = "4,64,1024"
		sample = 5
	)

A plan can also be given as YAML with -plan:

	block_sizes: [4, 8, 16]
	kinds: [read, write, rw]
	sample: 5
	runtime: 30
	iodepth: 1
	random_offset: true

Unless disks are named, all whole disks that do not back a mounted
filesystem are benchmarked. Write tests destroy the data on the disks
they run on.

With -sessions N, the plan is run N times, each session saved to its
own file. The -hist flag also writes all sessions to a single document
for fiohist.
*/
package main
