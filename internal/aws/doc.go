// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws wraps the AWS SDK v2 pieces dotctl needs: loading shared
// config with optional profile/region overrides and uploading backup
// snapshots to S3 or an S3-compatible endpoint.
package aws
