package space

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	logger "spacemirror/internal/log"
)

/* APIClient is the boundary to the Space HTTP API.
All methods are synchronous and return typed errors; degrading failures into empty results is the
job of Catalog.
*/

type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewAPIClient(token, baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type Project struct {
	ID   string
	Name string
}

type projectsResponse struct {
	Data []struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
	} `json:"data"`
}

type projectReposResponse struct {
	Repos []struct {
		Name *string `json:"name"`
	} `json:"repos"`
}

type cloneURLResponse struct {
	HTTPURL *string `json:"httpUrl"`
}

func (api *APIClient) url(format string, a ...any) string {
	return api.baseURL + "/api/http" + fmt.Sprintf(format, a...)
}

func (api *APIClient) FetchProjects(ctx context.Context) ([]Project, error) {
	response, err := spaceGet[projectsResponse](ctx, api, api.url("/projects?$fields=data(id,name)"))
	if err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(response.Data))
	for _, entry := range response.Data {
		if entry.ID == nil || entry.Name == nil {
			logger.Log.Debugf("Ignoring project entry without id or name")
			continue
		}
		projects = append(projects, Project{ID: *entry.ID, Name: *entry.Name})
	}
	return projects, nil
}

func (api *APIClient) FetchRepositoryNames(ctx context.Context, projectID string) ([]string, error) {
	response, err := spaceGet[projectReposResponse](ctx, api, api.url("/projects/id:%s?$fields=repos(name)", url.PathEscape(projectID)))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(response.Repos))
	for _, entry := range response.Repos {
		if entry.Name == nil {
			logger.Log.Debugf("Ignoring repository entry without name in project %s", projectID)
			continue
		}
		names = append(names, *entry.Name)
	}
	return names, nil
}

func (api *APIClient) FetchCloneURL(ctx context.Context, projectID, repoName string) CloneURLResult {
	response, err := spaceGet[cloneURLResponse](ctx, api, api.url("/projects/id:%s/repositories/%s/url", url.PathEscape(projectID), url.PathEscape(repoName)))
	if err != nil {
		return cloneURLFailure(err)
	}
	if response.HTTPURL == nil || *response.HTTPURL == "" {
		return CloneURLResult{Status: CloneURLMissing}
	}
	return CloneURLResult{Status: CloneURLFound, URL: *response.HTTPURL}
}

func spaceGet[T any](ctx context.Context, api *APIClient, url string) (T, error) {
	var emptyResult T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return emptyResult, &RequestError{URL: url, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+api.token)
	req.Header.Set("Accept", "application/json")

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return emptyResult, &RequestError{URL: url, Err: err}
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Errorf("Failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return emptyResult, &RequestError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var decodedResult T
	if err := json.NewDecoder(resp.Body).Decode(&decodedResult); err != nil {
		return emptyResult, &DecodeError{URL: url, Err: err}
	}
	return decodedResult, nil
}
