// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/diskbench"
	"github.com/grailbio/diskbench/fio"
	"github.com/grailbio/diskbench/internal/store"
)

func main() {
	var (
		testPath = flag.String("test", "fio_tests/fio_tests_node_hist.json", "sessions document written by fiorun -hist")
		out      = flag.String("out", "hists/hist.json", "output path of the histogram samples")
		size     = flag.String("size", "4K", "block size label of the cell")
		disk     = flag.String("disk", "sdd", "disk of the cell")
		kind     = flag.String("kind", string(fio.ReadWrite), "test kind of the cell")
	)
	grail.Init()
	ctx := context.Background()

	data, err := store.ReadFile(ctx, *testPath)
	must.Nil(err, "reading sessions")
	var sessions diskbench.Sessions
	must.Nil(json.Unmarshal(data, &sessions), *testPath)

	cell := diskbench.Cell{Label: *size, Disk: *disk, Kind: fio.Kind(*kind)}
	log.Printf("collecting %s from %d sessions", cell, len(sessions))
	hist, err := diskbench.CollectHist(sessions, cell)
	if err != nil {
		log.Fatalf("%s: %v", *testPath, err)
	}
	data, err = json.MarshalIndent(hist, "", "  ")
	must.Nil(err)
	must.Nil(store.WriteFile(ctx, *out, data), "writing ", *out)
	log.Printf("wrote %s", *out)
}
