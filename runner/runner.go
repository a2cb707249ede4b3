// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package runner runs fio benchmark sessions. A session runs one fio
// job for every combination of block size, disk, and test kind in a
// Plan, collecting fio's reports into a diskbench.Results document.
//
// Jobs access raw block devices with O_DIRECT, so fio is usually run
// through sudo. Write jobs destroy the contents of the disks they
// run on.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/diskbench"
	diskioutil "github.com/grailbio/diskbench/internal/ioutil"
	"golang.org/x/time/rate"
)

// killGrace is the time given to a timed-out fio job to exit after
// SIGTERM before it is killed.
var killGrace = 10 * time.Second

// A Runner invokes fio.
type Runner struct {
	// Fio is the fio binary.
	Fio string
	// Sudo runs fio through sudo.
	Sudo bool
	// OutputFormat is passed to fio's --output-format. Reports are
	// parsed from the "normal" format.
	OutputFormat string
	// Interval is the minimum time between the starts of consecutive
	// jobs. It gives disks a chance to settle.
	Interval time.Duration
	// TempDir is the directory in which job files are written. If
	// empty, the system's temporary directory is used.
	TempDir string
	// Output, if not nil, receives fio's output as it runs, each line
	// prefixed with the job's block size, disk, and test kind.
	Output io.Writer
	// Rand is used to sample disks and choose random offsets. If nil,
	// a time-seeded source is used.
	Rand *rand.Rand
}

// New returns a runner with default settings.
func New() *Runner {
	return &Runner{
		Fio:          "fio",
		Sudo:         true,
		OutputFormat: "normal",
	}
}

// Run runs the provided plan. Jobs run one at a time, in plan order.
// Run stops at the first job that fails, returning the results
// collected so far together with the error.
func (r *Runner) Run(ctx context.Context, plan Plan) (diskbench.Results, error) {
	var results diskbench.Results
	if err := plan.Validate(); err != nil {
		return results, err
	}
	if len(plan.Disks) == 0 {
		return results, errors.E(errors.Invalid, "plan has no disks")
	}
	rnd := r.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	limit := rate.Inf
	if r.Interval > 0 {
		limit = rate.Every(r.Interval)
	}
	limiter := rate.NewLimiter(limit, 1)
	for _, bs := range plan.BlockSizes {
		disks := plan.Disks
		if plan.Sample > 0 && plan.Sample < len(disks) {
			disks = sample(rnd, disks, plan.Sample)
		}
		log.Printf("size %dK: %d disks: %s", bs, len(disks), strings.Join(disks, ", "))
		for _, disk := range disks {
			for _, kind := range plan.Kinds {
				job := Job{
					Kind:      kind,
					BlockSize: bs,
					Disk:      disk,
					IODepth:   plan.IODepth,
				}
				if plan.RandomOffset {
					job.Offset = 1 + rnd.Intn(99)
				}
				if err := limiter.Wait(ctx); err != nil {
					return results, err
				}
				report, err := r.runJob(ctx, job, plan.Runtime)
				if err != nil {
					return results, errors.E(fmt.Sprintf("%s/%s/%s", job.Label(), disk, kind), err)
				}
				results.Add(job.Label(), disk, kind, diskbench.Run{
					Config: job.JobFile(),
					Result: report,
				})
			}
		}
	}
	return results, nil
}

// runJob runs a single fio job and returns its report. The job is
// given three times its runtime to complete.
func (r *Runner) runJob(ctx context.Context, job Job, runtime int) (report string, err error) {
	done := stats.Start(job)
	defer func() {
		done(int64(len(report)), err)
	}()
	log.Debug.Printf("%s/%s/%s: starting job", job.Label(), job.Disk, job.Kind)

	f, err := ioutil.TempFile(r.TempDir, "fio-*.ini")
	if err != nil {
		return "", errors.E("creating job file", err)
	}
	defer os.Remove(f.Name())
	if _, err = io.WriteString(f, job.JobFile()); err != nil {
		f.Close()
		return "", errors.E("writing job file", err)
	}
	if err = f.Close(); err != nil {
		return "", errors.E("closing job file", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Duration(runtime)*time.Second)
	defer cancel()
	args := []string{
		f.Name(),
		fmt.Sprintf("--runtime=%d", runtime),
		fmt.Sprintf("--output-format=%s", r.OutputFormat),
	}
	name := r.Fio
	if r.Sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.Output != nil {
		prefix := fmt.Sprintf("%s/%s/%s: ", job.Label(), job.Disk, job.Kind)
		cmd.Stdout = io.MultiWriter(&stdout, diskioutil.PrefixWriter(r.Output, prefix))
	}
	if err = wait(ctx, cmd); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.E(errors.Timeout, fmt.Sprintf("fio did not finish within %ds", 3*runtime), err)
		}
		if ctx.Err() != nil {
			return "", errors.E(errors.Canceled, err)
		}
		return "", errors.E(fmt.Sprintf("%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String())), err)
	}
	return stdout.String(), nil
}

// wait runs cmd in its own process group and waits for it to exit.
// When ctx is done, the whole group is sent SIGTERM, which sudo
// relays to fio; processes that remain after killGrace are killed.
func wait(ctx context.Context, cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	waitc := make(chan error, 1)
	go func() {
		waitc <- cmd.Wait()
	}()
	select {
	case err := <-waitc:
		return err
	case <-ctx.Done():
	}
	pgid := cmd.Process.Pid
	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		log.Error.Printf("terminating process group %d: %v", pgid, err)
	}
	select {
	case err := <-waitc:
		return err
	case <-time.After(killGrace):
	}
	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
		log.Error.Printf("killing process group %d: %v", pgid, err)
	}
	return <-waitc
}

// sample returns n disks chosen at random, in their original order.
func sample(rnd *rand.Rand, disks []string, n int) []string {
	chosen := make([]bool, len(disks))
	for _, i := range rnd.Perm(len(disks))[:n] {
		chosen[i] = true
	}
	sampled := make([]string, 0, n)
	for i, disk := range disks {
		if chosen[i] {
			sampled = append(sampled, disk)
		}
	}
	return sampled
}
