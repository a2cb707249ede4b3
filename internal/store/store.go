// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package store reads and writes benchmark documents. Paths are
// either local file paths or S3 URLs of the form s3://bucket/key.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/grailbio/base/config"
	"github.com/grailbio/base/errors"
)

const s3Scheme = "s3://"

// instance retrieves instances from the grail config profile.
var instance = config.Instance

// awsSession returns the session of the profile's "aws" instance, so
// that region and credentials follow the profile.
func awsSession() (*session.Session, error) {
	var sess *session.Session
	if err := instance("aws", &sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ParseURL splits an S3 URL into its bucket and key. It returns ok
// false if path is not an S3 URL.
func ParseURL(path string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(path, s3Scheme) {
		return "", "", false, nil
	}
	parts := strings.SplitN(strings.TrimPrefix(path, s3Scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", true, errors.E(errors.Invalid, fmt.Sprintf("malformed S3 URL %s", path))
	}
	return parts[0], parts[1], true, nil
}

// ReadFile returns the contents of the document at path.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	bucket, key, ok, err := ParseURL(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		p, err := ioutil.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.E(errors.NotExist, path, err)
		}
		return p, err
	}
	sess, err := awsSession()
	if err != nil {
		return nil, errors.E("creating AWS session", err)
	}
	buf := aws.NewWriteAtBuffer(nil)
	_, err = s3manager.NewDownloader(sess).DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.E(fmt.Sprintf("downloading %s", path), err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to the document at path, replacing any
// previous contents. Local parent directories are created as needed.
func WriteFile(ctx context.Context, path string, data []byte) error {
	bucket, key, ok, err := ParseURL(path)
	if err != nil {
		return err
	}
	if !ok {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0777); err != nil {
				return err
			}
		}
		return ioutil.WriteFile(path, data, 0644)
	}
	sess, err := awsSession()
	if err != nil {
		return errors.E("creating AWS session", err)
	}
	_, err = s3manager.NewUploader(sess).UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return errors.E(fmt.Sprintf("uploading %s", path), err)
	}
	return nil
}
