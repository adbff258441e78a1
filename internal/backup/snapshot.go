// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dotctl/dotctl/internal/log"
)

const snapshotLayout = "20060102-150405"

// Uploader stores a snapshot and returns where it went.
type Uploader interface {
	Upload(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error)
}

// SnapshotName is "<repo>-<timestamp>.tar.gz".
func SnapshotName(dir string, t time.Time) string {
	return fmt.Sprintf("%s-%s.tar.gz", filepath.Base(filepath.Clean(dir)), t.UTC().Format(snapshotLayout))
}

// Snapshot writes a gzipped tarball of the files committed at HEAD. Entries
// are rooted under the repository's directory name.
func Snapshot(dir string, w io.Writer) (int, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open git repository %s: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return 0, fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return 0, fmt.Errorf("failed to read HEAD tree: %w", err)
	}

	root := filepath.Base(filepath.Clean(dir))
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	count := 0
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := addFile(tw, root, f, commit.Committer.When); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to archive: %w", err)
	}
	if err := tw.Close(); err != nil {
		return count, err
	}
	return count, gz.Close()
}

func addFile(tw *tar.Writer, root string, f *object.File, modTime time.Time) error {
	hdr := &tar.Header{
		Name:    root + "/" + f.Name,
		ModTime: modTime,
	}

	if f.Mode == filemode.Symlink {
		target, err := f.Contents()
		if err != nil {
			return err
		}
		hdr.Typeflag = tar.TypeSymlink
		hdr.Linkname = target
		hdr.Mode = 0o777
		return tw.WriteHeader(hdr)
	}

	mode, err := f.Mode.ToOSFileMode()
	if err != nil {
		return err
	}
	hdr.Typeflag = tar.TypeReg
	hdr.Mode = int64(mode.Perm())
	hdr.Size = f.Size
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	r, err := f.Reader()
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(tw, r)
	return err
}

// Ship builds a snapshot of dir in memory and hands it to u.
func Ship(ctx context.Context, dir string, u Uploader, now time.Time) (string, error) {
	var buf bytes.Buffer
	n, err := Snapshot(dir, &buf)
	if err != nil {
		return "", err
	}
	log.Debugf("snapshot: files=%d bytes=%d", n, buf.Len())
	return u.Upload(ctx, SnapshotName(dir, now), bytes.NewReader(buf.Bytes()), "application/gzip")
}
