// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestParseURL(t *testing.T) {
	bucket, key, ok, err := ParseURL("s3://grail-bench/fio_tests/fio_tests_0.json")
	assert.NoError(t, err)
	expect.True(t, ok)
	expect.EQ(t, bucket, "grail-bench")
	expect.EQ(t, key, "fio_tests/fio_tests_0.json")

	_, _, ok, err = ParseURL("fio_tests/fio_tests_0.json")
	assert.NoError(t, err)
	expect.EQ(t, ok, false)

	for _, url := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, _, err := ParseURL(url)
		if !errors.Is(errors.Invalid, err) {
			t.Errorf("%s: got %v, want Invalid", url, err)
		}
	}
}

func TestLocal(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "store")
	defer cleanup()
	ctx := context.Background()
	path := filepath.Join(dir, "packet_configs", "packet_config_0.json")
	assert.NoError(t, WriteFile(ctx, path, []byte(`{"4K": {}}`)))
	p, err := ReadFile(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, string(p), `{"4K": {}}`)

	_, err = ReadFile(ctx, filepath.Join(dir, "missing.json"))
	if !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want NotExist", err)
	}
}

func TestSessionFromProfile(t *testing.T) {
	want, err := session.NewSession(&aws.Config{Region: aws.String("eu-west-1")})
	assert.NoError(t, err)
	var names []string
	save := instance
	defer func() { instance = save }()
	instance = func(name string, ptr interface{}) error {
		names = append(names, name)
		*ptr.(**session.Session) = want
		return nil
	}
	sess, err := awsSession()
	assert.NoError(t, err)
	expect.EQ(t, names, []string{"aws"})
	expect.True(t, sess == want)
	expect.EQ(t, aws.StringValue(sess.Config.Region), "eu-west-1")

	instance = func(name string, ptr interface{}) error {
		return errors.E(errors.NotExist, "no instance named", name)
	}
	err = WriteFile(context.Background(), "s3://bucket/key", nil)
	if !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want NotExist", err)
	}
}
