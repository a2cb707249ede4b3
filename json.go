// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package diskbench

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Documents are JSON objects whose key order is meaningful to
// readers (block sizes ascend, disks appear in the order they were
// benchmarked), so they are encoded and decoded member by member
// instead of through Go maps.

// objectWriter writes the members of a JSON object in order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *objectWriter) member(key string, value interface{}) error {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
	return nil
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

// readObject decodes the JSON object in data, calling member for
// each of its members in document order. Member values are passed
// undecoded.
func readObject(data []byte, member func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s: %v", key, err)
		}
		if err := member(key, value); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
