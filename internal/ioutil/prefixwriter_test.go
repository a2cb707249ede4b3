// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ioutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestPrefixWriter(t *testing.T) {
	for _, c := range []struct {
		writes []string
		want   string
	}{
		{[]string{"read: (groupid=0, jobs=1)\n"}, "4K/sdb/read: read: (groupid=0, jobs=1)\n"},
		{[]string{"a\nb\n"}, "4K/sdb/read: a\n4K/sdb/read: b\n"},
		{[]string{"a", "b\nc", "\n"}, "4K/sdb/read: ab\n4K/sdb/read: c\n"},
		{[]string{"\n\n"}, "4K/sdb/read: \n4K/sdb/read: \n"},
		{[]string{"no newline"}, "4K/sdb/read: no newline"},
		{nil, ""},
	} {
		var b bytes.Buffer
		w := PrefixWriter(&b, "4K/sdb/read: ")
		for _, s := range c.writes {
			n, err := io.WriteString(w, s)
			assert.NoError(t, err)
			expect.EQ(t, n, len(s))
		}
		expect.EQ(t, b.String(), c.want)
	}
}
