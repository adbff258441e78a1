// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dotctl/dotctl/internal/log"
)

const (
	DefaultDir    = "~/.dotfiles"
	DefaultRemote = "origin"
	messageLayout = "2006-01-02 15:04:05"
	fallbackName  = "dotctl"
	fallbackEmail = "dotctl@localhost"
)

// Options controls one backup.
type Options struct {
	Dir string
	// Message defaults to "Backup: <timestamp>".
	Message string
	Remote  string
	Push    bool
	Now     func() time.Time
}

// Result describes what a backup did.
type Result struct {
	Clean   bool
	Changed int
	Commit  string
	Pushed  bool
	// PushSkipped explains why no push happened when Pushed is false.
	PushSkipped string
}

// DefaultMessage is the commit message used when none is given.
func DefaultMessage(t time.Time) string {
	return "Backup: " + t.Format(messageLayout)
}

// Run stages every change in the repository at o.Dir (deletions included),
// commits them and pushes to o.Remote. A clean worktree is not an error.
func Run(ctx context.Context, o Options) (Result, error) {
	var res Result
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	if o.Remote == "" {
		o.Remote = DefaultRemote
	}

	repo, err := git.PlainOpen(o.Dir)
	if err != nil {
		return res, fmt.Errorf("failed to open git repository %s: %w", o.Dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return res, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return res, fmt.Errorf("failed to get status: %w", err)
	}
	if status.IsClean() {
		res.Clean = true
		return res, nil
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return res, fmt.Errorf("failed to stage changes: %w", err)
	}
	if status, err = wt.Status(); err != nil {
		return res, fmt.Errorf("failed to get status: %w", err)
	}
	for _, s := range status {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			res.Changed++
		}
	}

	msg := o.Message
	if msg == "" {
		msg = DefaultMessage(now())
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: signature(repo, now())})
	if err != nil {
		return res, fmt.Errorf("failed to commit: %w", err)
	}
	res.Commit = hash.String()
	log.Infof("backup committed: %s files=%d", hash.String()[:7], res.Changed)

	if !o.Push {
		res.PushSkipped = "push disabled"
		return res, nil
	}
	if _, err := repo.Remote(o.Remote); errors.Is(err, git.ErrRemoteNotFound) {
		res.PushSkipped = fmt.Sprintf("no remote %q", o.Remote)
		return res, nil
	}

	err = repo.PushContext(ctx, &git.PushOptions{RemoteName: o.Remote})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return res, fmt.Errorf("failed to push to %s: %w", o.Remote, err)
	}
	res.Pushed = true
	return res, nil
}

// signature reads user.name and user.email from git config, falling back to
// a dotctl identity.
func signature(repo *git.Repository, when time.Time) *object.Signature {
	sig := &object.Signature{Name: fallbackName, Email: fallbackEmail, When: when}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		log.Debugf("git config unavailable: %v", err)
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
