package space

import (
	"context"

	"spacemirror/internal/color"
	logger "spacemirror/internal/log"
)

// Catalog degrades every API failure to an empty or absent result so an unattended run keeps going.
type Catalog struct {
	api *APIClient
}

func NewCatalog(api *APIClient) *Catalog {
	return &Catalog{api: api}
}

func (c *Catalog) ListProjects(ctx context.Context) []Project {
	projects, err := c.api.FetchProjects(ctx)
	if err != nil {
		logger.Log.Errorf("Failed to fetch projects: %v", err)
		return []Project{}
	}
	logger.Log.Debugf("Fetched %d projects", len(projects))
	return projects
}

func (c *Catalog) ListRepositories(ctx context.Context, projectID string) []string {
	names, err := c.api.FetchRepositoryNames(ctx, projectID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch repositories for project %s: %v", color.FgRed(projectID), err)
		return []string{}
	}
	return names
}

// ResolveCloneURL does not log; callers report non-found results with repository context.
func (c *Catalog) ResolveCloneURL(ctx context.Context, projectID, repoName string) CloneURLResult {
	return c.api.FetchCloneURL(ctx, projectID, repoName)
}
