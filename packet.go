// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"encoding/json"

	"github.com/grailbio/diskbench/fio"
)

// KindConfig holds the per-request timings of a single test kind.
type KindConfig struct {
	RateTime      Statistic `json:"rate_time"`
	SeekTime      Statistic `json:"seek_time"`
	OverheadsTime Statistic `json:"overheads_time"`
}

// A PacketConfig models disk request timings at a single block
// size, aggregated over all benchmarked disks.
type PacketConfig struct {
	// Size is the block size in bytes, counting 1K as 1000 bytes
	// (so "4K" is 4000).
	Size int `json:"size"`

	TransmissionTime    Statistic `json:"transmission_time"`
	LatencyTime         Statistic `json:"latency_time"`
	ReadProcessingTime  Statistic `json:"read_processing_time"`
	WriteProcessingTime Statistic `json:"write_processing_time"`

	SeqRead       KindConfig `json:"seq_read"`
	SeqWrite      KindConfig `json:"seq_write"`
	RandRead      KindConfig `json:"rand_read"`
	RandWrite     KindConfig `json:"rand_write"`
	SeqReadWrite  KindConfig `json:"seq_read_write"`
	RandReadWrite KindConfig `json:"rand_read_write"`
}

// Kind returns a pointer to the config's entry for the provided
// test kind, or nil if the kind is not supported.
func (c *PacketConfig) Kind(kind fio.Kind) *KindConfig {
	switch kind {
	case fio.Read:
		return &c.SeqRead
	case fio.Write:
		return &c.SeqWrite
	case fio.RandRead:
		return &c.RandRead
	case fio.RandWrite:
		return &c.RandWrite
	case fio.ReadWrite:
		return &c.SeqReadWrite
	case fio.RandRW:
		return &c.RandReadWrite
	default:
		return nil
	}
}

// KindName returns the name under which kind's entry appears in an
// encoded PacketConfig, e.g., "rand_read_write" for fio.RandRW.
func KindName(kind fio.Kind) string {
	switch kind {
	case fio.Read:
		return "seq_read"
	case fio.Write:
		return "seq_write"
	case fio.RandRead:
		return "rand_read"
	case fio.RandWrite:
		return "rand_write"
	case fio.ReadWrite:
		return "seq_read_write"
	case fio.RandRW:
		return "rand_read_write"
	default:
		return string(kind)
	}
}

// A LabeledConfig is a PacketConfig together with the block size
// label from which it was computed.
type LabeledConfig struct {
	Label string
	PacketConfig
}

// PacketConfigs is the result of parsing a Results document: one
// PacketConfig per block size, in the document's order. It encodes
// as a JSON object keyed by block size label.
type PacketConfigs []LabeledConfig

// Get returns the config with the provided label.
func (p PacketConfigs) Get(label string) (PacketConfig, bool) {
	for _, c := range p {
		if c.Label == label {
			return c.PacketConfig, true
		}
	}
	return PacketConfig{}, false
}

// MarshalJSON implements json.Marshaler.
func (p PacketConfigs) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, c := range p {
		if err := w.member(c.Label, c.PacketConfig); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PacketConfigs) UnmarshalJSON(data []byte) error {
	*p = nil
	return readObject(data, func(label string, value json.RawMessage) error {
		var c PacketConfig
		if err := json.Unmarshal(value, &c); err != nil {
			return err
		}
		*p = append(*p, LabeledConfig{label, c})
		return nil
	})
}
