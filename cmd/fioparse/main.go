// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/diskbench"
	"github.com/grailbio/diskbench/internal/store"
)

func main() {
	var (
		testPath   = flag.String("test", "fio_tests/fio_tests_0.json", "results document written by fiorun")
		configPath = flag.String("config", "packet_configs/packet_config_0.json", "output path of the packet configs")
		summary    = flag.Bool("summary", false, "also print a summary of the packet configs to stdout")
	)
	grail.Init()
	ctx := context.Background()

	data, err := store.ReadFile(ctx, *testPath)
	must.Nil(err, "reading results")
	var results diskbench.Results
	must.Nil(json.Unmarshal(data, &results), *testPath)
	log.Printf("%s: %d block sizes", *testPath, len(results))

	configs, err := diskbench.Parse(results)
	if err != nil {
		log.Fatalf("%s: %v", *testPath, err)
	}
	data, err = json.MarshalIndent(configs, "", "  ")
	must.Nil(err)
	must.Nil(store.WriteFile(ctx, *configPath, data), "writing ", *configPath)
	log.Printf("wrote %s", *configPath)
	if *summary {
		must.Nil(diskbench.WriteSummary(os.Stdout, configs))
	}
}
