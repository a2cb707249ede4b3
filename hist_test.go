// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/diskbench/fio"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func fakeSessions(n int, kind fio.Kind) Sessions {
	sessions := make(Sessions, n)
	for i := range sessions {
		r, w := readSection, writeSection
		r.clat = Statistic{float64(100 * (i + 1)), 10}
		w.clat = Statistic{float64(200 * (i + 1)), 20}
		sessions[i].ID = fmt.Sprint(i)
		sessions[i].Results.Add("4K", "sdd", kind, Run{Result: fakeReport(kind, r, w)})
	}
	return sessions
}

func TestCollectHist(t *testing.T) {
	const N = 10
	h, err := CollectHist(fakeSessions(N, fio.ReadWrite), Cell{"4K", "sdd", fio.ReadWrite})
	assert.NoError(t, err)
	for _, s := range []Samples{
		h.Read.LatencyTime, h.Read.ProcessingTime, h.Read.TransmissionTime,
		h.Write.LatencyTime, h.Write.ProcessingTime, h.Write.TransmissionTime,
	} {
		expect.EQ(t, len(s.Mean), N)
		expect.EQ(t, len(s.Std), N)
	}
	for i := 0; i < N; i++ {
		if got, want := h.Read.ProcessingTime.Mean[i], float64(100*(i+1))*1e-6; !near(got, want) {
			t.Errorf("read %d: got %v, want %v", i, got, want)
		}
		if got, want := h.Write.ProcessingTime.Mean[i], float64(200*(i+1))*1e-6; !near(got, want) {
			t.Errorf("write %d: got %v, want %v", i, got, want)
		}
		if got, want := h.Write.TransmissionTime.Std[i], 2e-6; !near(got, want) {
			t.Errorf("write %d: got %v, want %v", i, got, want)
		}
	}
}

func TestCollectHistReadOnly(t *testing.T) {
	h, err := CollectHist(fakeSessions(3, fio.RandRead), Cell{"4K", "sdd", fio.RandRead})
	assert.NoError(t, err)
	expect.EQ(t, len(h.Read.LatencyTime.Mean), 3)
	expect.EQ(t, len(h.Write.LatencyTime.Mean), 0)

	b, err := json.Marshal(h)
	assert.NoError(t, err)
	expect.HasSubstr(t, string(b), `"write":{"latency_time":{"mean":[],"std":[]}`)
}

func TestCollectHistErrors(t *testing.T) {
	sessions := fakeSessions(3, fio.ReadWrite)
	_, err := CollectHist(sessions, Cell{"4K", "sdb", fio.ReadWrite})
	if !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want NotExist", err)
	}
	_, err = CollectHist(sessions, Cell{"4K", "sdd", fio.Kind("trimwrite")})
	if !errors.Is(errors.Invalid, err) {
		t.Errorf("got %v, want Invalid", err)
	}
	sessions[1].Results.Add("4K", "sdd", fio.ReadWrite, Run{Result: fakeReport(fio.Read, readSection, writeSection)})
	_, err = CollectHist(sessions, Cell{"4K", "sdd", fio.ReadWrite})
	if !errors.Is(errors.Invalid, err) {
		t.Errorf("got %v, want Invalid", err)
	}
}

func TestSessionsJSON(t *testing.T) {
	sessions := fakeSessions(3, fio.Write)
	b, err := json.Marshal(sessions)
	assert.NoError(t, err)
	var decoded Sessions
	assert.NoError(t, json.Unmarshal(b, &decoded))
	expect.EQ(t, decoded, sessions)
}

func TestCollectHistFirstError(t *testing.T) {
	sessions := fakeSessions(20, fio.ReadWrite)
	for _, i := range []int{7, 3, 15} {
		sessions[i].Results.Add("4K", "sdd", fio.ReadWrite, Run{Result: "truncated"})
	}
	for i := 0; i < 10; i++ {
		_, err := CollectHist(sessions, Cell{"4K", "sdd", fio.ReadWrite})
		if err == nil {
			t.Fatal("expected error")
		}
		expect.HasSubstr(t, err.Error(), "session 3:")
	}
}
