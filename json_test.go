// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grailbio/diskbench/fio"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const resultsJSON = `{
  "16K": {
    "sdf": {
      "write": {"config": "[write_test]", "result": "w"},
      "read": {"config": "[read_test]", "result": "r"}
    }
  },
  "4K": {
    "sdf": {"randrw": {"result": "rw"}},
    "sdb": {}
  }
}`

func TestResultsJSON(t *testing.T) {
	var results Results
	assert.NoError(t, json.Unmarshal([]byte(resultsJSON), &results))
	assert.EQ(t, len(results), 2)
	expect.EQ(t, results[0].Label, "16K")
	expect.EQ(t, results[1].Label, "4K")

	sdf, ok := results[0].Disk("sdf")
	assert.True(t, ok)
	assert.EQ(t, len(sdf.Runs), 2)
	expect.EQ(t, sdf.Runs[0].Kind, fio.Write)
	expect.EQ(t, sdf.Runs[1].Kind, fio.Read)
	run, ok := sdf.Run(fio.Read)
	assert.True(t, ok)
	expect.EQ(t, run, Run{Config: "[read_test]", Result: "r"})
	_, ok = sdf.Run(fio.RandRW)
	expect.EQ(t, ok, false)

	names := []string{results[1].Disks[0].Name, results[1].Disks[1].Name}
	expect.EQ(t, names, []string{"sdf", "sdb"})

	b, err := json.Marshal(results)
	assert.NoError(t, err)
	var compact bytes.Buffer
	assert.NoError(t, json.Compact(&compact, []byte(resultsJSON)))
	expect.EQ(t, string(b), compact.String())
}

func TestResultsJSONDuplicateKind(t *testing.T) {
	var results Results
	assert.NoError(t, json.Unmarshal([]byte(`{"4K": {"sdb": {
		"read": {"result": "first"},
		"write": {"result": "w"},
		"read": {"result": "second"}
	}}}`), &results))
	sdb, ok := results[0].Disk("sdb")
	assert.True(t, ok)
	assert.EQ(t, len(sdb.Runs), 2)
	expect.EQ(t, sdb.Runs[0].Kind, fio.Read)
	expect.EQ(t, sdb.Runs[0].Result, "second")
	expect.EQ(t, sdb.Runs[1].Kind, fio.Write)

	// A document with a repeated run still satisfies the sample counts.
	b, err := json.Marshal(fakeResults("4K", "sdb"))
	assert.NoError(t, err)
	doc := strings.Replace(string(b), `"sdb":{`, `"sdb":{"read":{"result":"stale"},`, 1)
	assert.NoError(t, json.Unmarshal([]byte(doc), &results))
	_, err = Parse(results)
	assert.NoError(t, err)
}

func TestResultsJSONErrors(t *testing.T) {
	for _, doc := range []string{
		`[]`,
		`{"4K": []}`,
		`{"4K": {"sdb": {"read": 1}}}`,
		`{"4K": {"sdb": {"read": {"result": "x"}}`,
	} {
		var results Results
		if err := json.Unmarshal([]byte(doc), &results); err == nil {
			t.Errorf("%s: expected error", doc)
		}
	}
}

func TestPacketConfigsJSON(t *testing.T) {
	var results Results
	for _, label := range []string{"8K", "4K"} {
		results = append(results, fakeResults(label, "sdb")...)
	}
	configs, err := Parse(results)
	assert.NoError(t, err)
	b, err := json.MarshalIndent(configs, "", "  ")
	assert.NoError(t, err)
	s := string(b)

	// Buckets keep input order and fields keep their documented order.
	keys := []string{
		`"8K"`, `"size": 8000`, `"transmission_time"`, `"latency_time"`,
		`"read_processing_time"`, `"write_processing_time"`,
		`"seq_read"`, `"seq_write"`, `"rand_read"`, `"rand_write"`,
		`"seq_read_write"`, `"rand_read_write"`, `"4K"`, `"size": 4000`,
	}
	last := -1
	for _, key := range keys {
		i := strings.Index(s[last+1:], key)
		if i < 0 {
			t.Fatalf("key %s missing or out of order in\n%s", key, s)
		}
		last += i + 1
	}
	expect.HasSubstr(t, s, `"rate_time": {
        "mean": 0.008,
        "std_dev": 0
      }`)

	var decoded PacketConfigs
	assert.NoError(t, json.Unmarshal(b, &decoded))
	expect.EQ(t, decoded, configs)
}

func TestSummary(t *testing.T) {
	configs, err := Parse(fakeResults("4K", "sdd"))
	assert.NoError(t, err)
	var b bytes.Buffer
	assert.NoError(t, WriteSummary(&b, configs))
	s := b.String()
	expect.HasSubstr(t, s, "4K")
	expect.HasSubstr(t, s, "size 4000")
	for _, kind := range fio.Kinds {
		expect.HasSubstr(t, s, KindName(kind))
	}
	// Rate and seek time of seq_read are both 4ms.
	expect.HasSubstr(t, s, "4ms")
}
