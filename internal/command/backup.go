// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/aws"
	"github.com/dotctl/dotctl/internal/backup"
	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/meta"
	"github.com/dotctl/dotctl/internal/util"
)

// snapshotTarget is where backup snapshots go.
type snapshotTarget struct {
	Bucket   string
	Prefix   string
	Profile  string
	Region   string
	Endpoint string
}

// newUploader builds the snapshot uploader. Requests are never retried.
var newUploader = func(ctx context.Context, t snapshotTarget) (backup.Uploader, error) {
	opts := []aws.Option{aws.WithRetryer(aws.NoRetries)}
	if t.Profile != "" {
		opts = append(opts, aws.WithProfile(t.Profile))
	}
	if t.Region != "" {
		opts = append(opts, aws.WithRegion(t.Region))
	}
	if t.Endpoint != "" {
		opts = append(opts, aws.WithEndpoint(t.Endpoint))
	}
	return aws.NewUploader(ctx, t.Bucket, t.Prefix, opts...)
}

func backupRunAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return usageErrorf("usage: %s", cmd.UsageText)
	}
	return runBackup(ctx, cmd, stdout(cmd), true)
}

func backupScheduleAction(ctx context.Context, cmd *cli.Command) error {
	s, err := backup.NewScheduler(cmd.Duration("every"))
	if err != nil {
		return asUsage(err)
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "Backing up %s every %s (Ctrl-C to stop)...\n", util.ExpandHome(cmd.String("dir")), cmd.Duration("every"))
	return s.Run(ctx, func(ctx context.Context) error {
		return runBackup(ctx, cmd, w, false)
	})
}

// runBackup commits and pushes once. The S3 snapshot is uploaded on every
// manual run and only after a commit when scheduled.
func runBackup(ctx context.Context, cmd *cli.Command, w io.Writer, manual bool) error {
	dir := util.ExpandHome(cmd.String("dir"))
	opts := backup.Options{
		Dir:     dir,
		Message: cmd.String("message"),
		Remote:  cmd.String("remote"),
		Push:    !cmd.Bool("no-push"),
	}

	res, err := backup.Run(ctx, opts)
	if err != nil {
		return err
	}

	if res.Clean {
		fmt.Fprintln(w, "nothing to back up")
	} else {
		fmt.Fprintf(w, "✓ Committed %d change(s): %s\n", res.Changed, shortHash(res.Commit))
		if res.Pushed {
			fmt.Fprintf(w, "✓ Pushed to %s\n", opts.Remote)
		} else {
			fmt.Fprintf(w, "- push skipped: %s\n", res.PushSkipped)
		}
	}

	bucket := cmd.String("s3-bucket")
	if bucket == "" || (res.Clean && !manual) {
		return nil
	}

	u, err := newUploader(ctx, snapshotTarget{
		Bucket:   bucket,
		Prefix:   cmd.String("s3-prefix"),
		Profile:  cmd.String("profile"),
		Region:   cmd.String("region"),
		Endpoint: cmd.String("s3-endpoint"),
	})
	if err != nil {
		return err
	}
	uri, err := backup.Ship(ctx, dir, u, time.Now())
	if err != nil {
		return err
	}
	log.Infof("snapshot uploaded: %s", uri)
	fmt.Fprintf(w, "✓ Snapshot uploaded: %s\n", uri)
	return nil
}

func shortHash(h string) string {
	if len(h) > 7 { //nolint:mnd
		return h[:7]
	}
	return h
}

// backupCommandBuilder constructs the "backup" command. Its flags are
// inherited by the run and schedule subcommands.
func backupCommandBuilder(m meta.Meta) *cli.Command {
	path := m.Config.Source
	md := map[string]any{"meta": m}

	return &cli.Command{
		Name:      "backup",
		Usage:     "commit and push the dotfiles repository",
		UsageText: "dotctl backup [--dir DIR] [--message MSG] [--no-push] [--s3-bucket B]",
		Metadata:  md,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "dotfiles repository",
				Sources: Sources("backup", "dir", path),
				Value:   backup.DefaultDir,
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "commit message (default \"Backup: <timestamp>\")",
			},
			&cli.StringFlag{
				Name:    "remote",
				Usage:   "remote to push to",
				Sources: Sources("backup", "remote", path),
				Value:   backup.DefaultRemote,
			},
			&cli.BoolFlag{
				Name:    "no-push",
				Usage:   "commit without pushing",
				Sources: Sources("backup", "no-push", path),
			},
			&cli.StringFlag{
				Name:    "s3-bucket",
				Usage:   "also upload a tar.gz snapshot to this S3 bucket",
				Sources: Sources("backup", "s3-bucket", path),
			},
			&cli.StringFlag{
				Name:    "s3-prefix",
				Usage:   "key prefix for snapshots",
				Sources: Sources("backup", "s3-prefix", path),
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "S3-compatible endpoint URL (MinIO, R2)",
				Sources: Sources("backup", "s3-endpoint", path),
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS shared config profile",
				Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region",
				Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
			},
		},
		Action: backupRunAction,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "back up once (the default)",
				UsageText: "dotctl backup run [flags]",
				Metadata:  md,
				Action:    backupRunAction,
			},
			{
				Name:      "schedule",
				Usage:     "back up periodically until interrupted",
				UsageText: "dotctl backup schedule --every 1h [flags]",
				Metadata:  md,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "every",
						Usage:   "interval between backups (minimum 1m)",
						Sources: Sources("backup", "every", path),
						Value:   time.Hour,
					},
				},
				Action: backupScheduleAction,
			},
		},
	}
}
