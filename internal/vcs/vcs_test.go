package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/codedigest/internal/utils"
)

func commitFixture(t *testing.T, repositoryPath string, when time.Time) plumbing.Hash {
	t.Helper()
	repository, initError := git.PlainInit(repositoryPath, false)
	if initError != nil {
		t.Fatalf("init repository: %v", initError)
	}
	if writeError := os.WriteFile(filepath.Join(repositoryPath, "main.go"), []byte("package main\n"), 0o600); writeError != nil {
		t.Fatalf("write file: %v", writeError)
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		t.Fatalf("worktree: %v", worktreeError)
	}
	if _, addError := worktree.Add("main.go"); addError != nil {
		t.Fatalf("add: %v", addError)
	}
	hash, commitError := worktree.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: when},
	})
	if commitError != nil {
		t.Fatalf("commit: %v", commitError)
	}
	return hash
}

func TestSnapshotDescribesHeadCommit(t *testing.T) {
	repositoryPath := t.TempDir()
	when := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
	hash := commitFixture(t, repositoryPath, when)
	nestedDirectory := filepath.Join(repositoryPath, "internal", "pkg")
	if err := os.MkdirAll(nestedDirectory, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var provider Provider = NewGitProvider(nil)
	snapshot := provider.Snapshot(nestedDirectory)
	if snapshot == nil {
		t.Fatalf("expected snapshot for nested directory")
	}
	if snapshot.Commit != hash.String() {
		t.Fatalf("expected commit %s, got %s", hash, snapshot.Commit)
	}
	if snapshot.Branch != "master" {
		t.Fatalf("expected master branch, got %s", snapshot.Branch)
	}
	if snapshot.Author != "Ada Lovelace" {
		t.Fatalf("unexpected author %s", snapshot.Author)
	}
	if snapshot.Date != utils.FormatTimestamp(when) {
		t.Fatalf("unexpected date %s", snapshot.Date)
	}
}

func TestSnapshotDetachedHead(t *testing.T) {
	repositoryPath := t.TempDir()
	hash := commitFixture(t, repositoryPath, time.Now())
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		t.Fatalf("open: %v", openError)
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		t.Fatalf("worktree: %v", worktreeError)
	}
	if checkoutError := worktree.Checkout(&git.CheckoutOptions{Hash: hash}); checkoutError != nil {
		t.Fatalf("checkout: %v", checkoutError)
	}
	snapshot := NewGitProvider(nil).Snapshot(repositoryPath)
	if snapshot == nil || snapshot.Branch != detachedBranchLabel {
		t.Fatalf("expected detached branch label, got %+v", snapshot)
	}
}

func TestSnapshotReturnsNil(t *testing.T) {
	emptyRepository := t.TempDir()
	if _, initError := git.PlainInit(emptyRepository, false); initError != nil {
		t.Fatalf("init repository: %v", initError)
	}
	testCases := []struct {
		name            string
		path            string
		expectedMessage string
	}{
		{name: "plain directory", path: t.TempDir(), expectedMessage: logMessageNotRepository},
		{name: "repository without commits", path: emptyRepository, expectedMessage: logMessageNoCommits},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			core, observedLogs := observer.New(zapcore.DebugLevel)
			if snapshot := NewGitProvider(zap.New(core)).Snapshot(testCase.path); snapshot != nil {
				t.Fatalf("expected nil snapshot, got %+v", snapshot)
			}
			if observedLogs.FilterMessage(testCase.expectedMessage).Len() != 1 {
				t.Fatalf("expected %q diagnostic, got %v", testCase.expectedMessage, observedLogs.All())
			}
		})
	}
}
