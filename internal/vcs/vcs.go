// Package vcs reads the checked-out commit of the repository containing a path.
package vcs

import (
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
)

const (
	detachedBranchLabel     = "HEAD (detached)"
	logMessageNotRepository = "not a git repository"
	logMessageNoCommits     = "git repository has no commits"
	logMessageLookupFailed  = "cannot read git metadata"
	logFieldPath            = "path"
)

// Provider returns the version-control snapshot for a path, or nil when there is none.
type Provider interface {
	Snapshot(path string) *types.VCSSnapshot
}

// GitProvider reads repository metadata with go-git.
type GitProvider struct {
	logger *zap.Logger
}

// NewGitProvider constructs a GitProvider that reports lookup failures at debug level.
func NewGitProvider(logger *zap.Logger) GitProvider {
	return GitProvider{logger: utils.LoggerOrNop(logger)}
}

// Snapshot opens the repository containing path, searching parent directories, and
// describes its HEAD commit. It returns nil for paths outside a repository, for
// repositories without commits and for any read failure.
func (provider GitProvider) Snapshot(path string) *types.VCSSnapshot {
	repository, openError := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			provider.logger.Debug(logMessageNotRepository, zap.String(logFieldPath, path))
		} else {
			provider.logger.Debug(logMessageLookupFailed, zap.String(logFieldPath, path), zap.Error(openError))
		}
		return nil
	}
	head, headError := repository.Head()
	if headError != nil {
		if errors.Is(headError, plumbing.ErrReferenceNotFound) {
			provider.logger.Debug(logMessageNoCommits, zap.String(logFieldPath, path))
		} else {
			provider.logger.Debug(logMessageLookupFailed, zap.String(logFieldPath, path), zap.Error(headError))
		}
		return nil
	}
	commit, commitError := repository.CommitObject(head.Hash())
	if commitError != nil {
		provider.logger.Debug(logMessageLookupFailed, zap.String(logFieldPath, path), zap.Error(commitError))
		return nil
	}
	branch := detachedBranchLabel
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return &types.VCSSnapshot{
		Commit: head.Hash().String(),
		Branch: branch,
		Author: commit.Author.Name,
		Date:   utils.FormatTimestamp(commit.Author.When),
	}
}
