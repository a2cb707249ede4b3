// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Fiohist collects the distribution of a single cell's statistics over
many repeated benchmark sessions. The input is a sessions document
written by fiorun -hist, keyed by session ID. For each session, the
report at the cell given by -size, -disk, and -kind is reduced to
latency, processing, and transmission times, and their means and
standard deviations are appended to per-direction sample lists:

	{
	  "read": {
	    "latency_time": {"mean": [...], "std": [...]},
	    "processing_time": {"mean": [...], "std": [...]},
	    "transmission_time": {"mean": [...], "std": [...]}
	  },
	  "write": {...}
	}

Lists appear in session order. A direction that the test kind does
not exercise has empty lists.
*/
package main
