// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_Upload puts and removes an object in the bucket named by
// DOTCTL_IT_S3_BUCKET using the ambient AWS credentials.
func TestIntegration_Upload(t *testing.T) {
	bucket := os.Getenv("DOTCTL_IT_S3_BUCKET")
	if bucket == "" {
		t.Skip("DOTCTL_IT_S3_BUCKET not set")
	}
	ctx := context.Background()

	u, err := NewUploader(ctx, bucket, "dotctl-it")
	require.NoError(t, err)

	name := fmt.Sprintf("dotctl-it-%d.txt", time.Now().UnixNano())
	uri, err := u.Upload(ctx, name, bytes.NewReader([]byte("hello")), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "s3://"+bucket+"/dotctl-it/"+name, uri)

	client := u.client.(*s3v2.Client)
	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String(u.Key(name))})
	require.NoError(t, err)
	b, _ := io.ReadAll(out.Body)
	out.Body.Close()
	assert.Equal(t, "hello", string(b))

	_, err = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String(u.Key(name))})
	assert.NoError(t, err)
}
