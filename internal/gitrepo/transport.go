package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"spacemirror/internal/color"
	logger "spacemirror/internal/log"
)

type Transport interface {
	Clone(ctx context.Context, cloneURL, repoPath string, credentials CredentialsFunc) error
	// Pull fast-forwards repoPath; author is only used by transports that create merge commits.
	Pull(ctx context.Context, repoPath string, credentials CredentialsFunc, author object.Signature) error
}

type OperationError struct {
	Op   string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("git %s in %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// GoGitTransport talks to the remote with go-git, so only the supplied credentials are ever used.
type GoGitTransport struct {
	// Progress receives the remote's sideband output; nil discards it.
	Progress io.Writer
}

func NewGoGitTransport(progress io.Writer) *GoGitTransport {
	return &GoGitTransport{Progress: progress}
}

func (t *GoGitTransport) Clone(ctx context.Context, cloneURL, repoPath string, credentials CredentialsFunc) error {
	repository, err := git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
		URL:      cloneURL,
		Auth:     credentials(),
		Progress: t.Progress,
	})
	if err != nil {
		return &OperationError{Op: "clone", Path: repoPath, Err: err}
	}
	if head, err := repository.Head(); err == nil {
		logger.Log.Debugf("Cloned %s at %s", color.FgCyan(repoPath), head.Hash().String()[:8])
	}
	return nil
}

func (t *GoGitTransport) Pull(ctx context.Context, repoPath string, credentials CredentialsFunc, author object.Signature) error {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return &OperationError{Op: "pull", Path: repoPath, Err: fmt.Errorf("open repository: %w", err)}
	}
	worktree, err := repository.Worktree()
	if err != nil {
		return &OperationError{Op: "pull", Path: repoPath, Err: fmt.Errorf("worktree: %w", err)}
	}

	// go-git only fast-forwards; a diverged mirror fails here instead of producing a merge by author.
	logger.Log.Debugf("Pulling %s (merge author %s <%s>)", color.FgCyan(repoPath), author.Name, author.Email)
	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Auth:       credentials(),
		Progress:   t.Progress,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		logger.Log.Debugf("Repository %s already up-to-date", color.FgCyan(repoPath))
		return nil
	}
	if err != nil {
		return &OperationError{Op: "pull", Path: repoPath, Err: err}
	}
	return nil
}
