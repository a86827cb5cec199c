package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-git/v5/plumbing/object"

	"spacemirror/internal/color"
	logger "spacemirror/internal/log"
)

type Action int

const (
	ActionNone Action = iota
	ActionClone
	ActionPull
)

func (a Action) String() string {
	switch a {
	case ActionClone:
		return "clone"
	case ActionPull:
		return "pull"
	default:
		return "none"
	}
}

// Repository is one mirror target: a catalog repository with its resolved clone URL and local path.
type Repository struct {
	Name     string
	Project  string
	CloneURL string
	Path     string
}

// CheckNeedsCloning uses the existence of the mirror directory as the only signal.
func (repo *Repository) CheckNeedsCloning() (bool, error) {
	_, err := os.Stat(repo.Path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, fmt.Errorf("error checking if repository needs cloning %s: %w", repo.Name, err)
}

// Sync clones a missing mirror or pulls an existing one, never both.
func (repo *Repository) Sync(ctx context.Context, transport Transport, credentials CredentialsFunc, author object.Signature) (Action, error) {
	needsCloning, err := repo.CheckNeedsCloning()
	if err != nil {
		return ActionNone, err
	}
	if needsCloning {
		logger.Log.Infof("Cloning repository %s from %s...", color.FgMagenta(repo.Name), color.FgMagenta(repo.CloneURL))
		return ActionClone, transport.Clone(ctx, repo.CloneURL, repo.Path, credentials)
	}
	logger.Log.Infof("Repository %s already exists. Pulling latest changes...", color.FgMagenta(repo.Name))
	return ActionPull, transport.Pull(ctx, repo.Path, credentials, author)
}
