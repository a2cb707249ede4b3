// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/config"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/diskbench"
	"github.com/grailbio/diskbench/internal/disks"
	"github.com/grailbio/diskbench/internal/store"
	"github.com/grailbio/diskbench/runner"
)

func main() {
	var (
		planPath       = flag.String("plan", "", "YAML benchmark plan; overrides the diskbench/plan profile instance")
		diskList       = flag.String("disks", "", "comma-separated disks to benchmark; overrides the plan")
		excludeMounted = flag.Bool("exclude-mounted", true, "when enumerating disks, skip those backing mounted filesystems")
		nsession       = flag.Int("sessions", 1, "number of benchmark sessions to run")
		out            = flag.String("out", "fio_tests/fio_tests_%d.json", "output path of each session's results; %d is replaced by the session number")
		histOut        = flag.String("hist", "", "if set, also write all sessions to this path, for fiohist")
		verbose        = flag.Bool("verbose", false, "copy fio's output to stderr")
	)
	grail.Init()
	ctx := context.Background()

	var r *runner.Runner
	must.Nil(config.Instance("diskbench/runner", &r))
	var plan runner.Plan
	if *planPath != "" {
		data, err := store.ReadFile(ctx, *planPath)
		must.Nil(err, "reading plan")
		plan, err = runner.ParsePlan(data)
		must.Nil(err, *planPath)
	} else {
		must.Nil(config.Instance("diskbench/plan", &plan))
	}
	if *diskList != "" {
		plan.Disks = runner.ParseList(*diskList)
	}
	if len(plan.Disks) == 0 {
		var err error
		plan.Disks, err = disks.List(*excludeMounted)
		must.Nil(err)
		if len(plan.Disks) == 0 {
			log.Fatal("no disks to benchmark")
		}
	}
	if *verbose {
		r.Output = os.Stderr
	}

	ndisk := len(plan.Disks)
	if plan.Sample > 0 && plan.Sample < ndisk {
		ndisk = plan.Sample
	}
	estimate := *nsession * ndisk * len(plan.Kinds) * len(plan.BlockSizes) * plan.Runtime
	log.Printf("start: %d sessions on %s; estimated test time %d min",
		*nsession, strings.Join(plan.Disks, ", "), estimate/60)

	var sessions diskbench.Sessions
	for i := 0; i < *nsession; i++ {
		results, err := r.Run(ctx, plan)
		if err != nil {
			log.Error.Printf("session %d: %v", i, err)
			if len(results) > 0 {
				write(ctx, sessionPath(*out, i)+".partial", results)
			}
			os.Exit(1)
		}
		write(ctx, sessionPath(*out, i), results)
		sessions = append(sessions, diskbench.Session{ID: fmt.Sprint(i), Results: results})
	}
	if *histOut != "" {
		write(ctx, *histOut, sessions)
	}
	log.Print("done")
}

func sessionPath(pattern string, i int) string {
	if !strings.Contains(pattern, "%d") {
		return pattern
	}
	return fmt.Sprintf(pattern, i)
}

func write(ctx context.Context, path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	must.Nil(err)
	must.Nil(store.WriteFile(ctx, path, data), "writing ", path)
	log.Printf("wrote %s", path)
}
