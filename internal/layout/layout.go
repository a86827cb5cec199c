// Package layout maps catalog names onto the backup directory tree: <root>/<project>/<repository>.
// Names are used as given; a name that is not a valid path segment fails at the filesystem.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDirectory ensures <root>/<projectName> exists and returns it.
func ProjectDirectory(root, projectName string) (string, error) {
	projectDir := filepath.Join(root, projectName)
	if err := os.MkdirAll(projectDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create project directory %s: %w", projectDir, err)
	}
	return projectDir, nil
}

// RepoPath does no I/O.
func RepoPath(projectDir, repoName string) string {
	return filepath.Join(projectDir, repoName)
}
