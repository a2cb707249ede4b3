// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package fio

import "fmt"

// Kind is an fio test kind, as passed to fio's rw= job option.
type Kind string

const (
	Read      Kind = "read"
	Write     Kind = "write"
	RandRead  Kind = "randread"
	RandWrite Kind = "randwrite"
	ReadWrite Kind = "rw"
	RandRW    Kind = "randrw"
)

// Kinds lists all supported test kinds in canonical order.
var Kinds = []Kind{Read, Write, RandRead, RandWrite, ReadWrite, RandRW}

// Family classifies test kinds by the data their reports contain.
type Family int

const (
	// Unknown is the family of unsupported test kinds.
	Unknown Family = iota
	// ReadOnly reports contain a single read section.
	ReadOnly
	// WriteOnly reports contain a single write section.
	WriteOnly
	// Combined reports contain a read section followed by a write
	// section.
	Combined
)

// String returns a Family's string.
func (f Family) String() string {
	switch f {
	case Unknown:
		return "unknown"
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case Combined:
		return "combined"
	default:
		panic(fmt.Sprintf("invalid family %d", f))
	}
}

// Family returns the family of kind k.
func (k Kind) Family() Family {
	switch k {
	case Read, RandRead:
		return ReadOnly
	case Write, RandWrite:
		return WriteOnly
	case ReadWrite, RandRW:
		return Combined
	default:
		return Unknown
	}
}

// Valid tells whether k is a supported test kind.
func (k Kind) Valid() bool { return k.Family() != Unknown }

// Reads tells whether reports of kind k contain read data.
func (k Kind) Reads() bool {
	f := k.Family()
	return f == ReadOnly || f == Combined
}

// Writes tells whether reports of kind k contain write data.
func (k Kind) Writes() bool {
	f := k.Family()
	return f == WriteOnly || f == Combined
}

// NumReads returns the number of supported kinds that contribute
// read data.
func NumReads() int {
	var n int
	for _, k := range Kinds {
		if k.Reads() {
			n++
		}
	}
	return n
}

// NumWrites returns the number of supported kinds that contribute
// write data.
func NumWrites() int {
	var n int
	for _, k := range Kinds {
		if k.Writes() {
			n++
		}
	}
	return n
}
