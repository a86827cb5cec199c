package space

import (
	"context"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"spacemirror/internal/color"
	logger "spacemirror/internal/log"
)

func TestCatalog_DegradesToEmpty(t *testing.T) {
	color.SetEnabled(false)
	hook := test.NewLocal(logger.Log)
	defer hook.Reset()

	api, _ := newSpaceServer(t, map[string]func(w http.ResponseWriter){
		"/api/http/projects":      respond(http.StatusBadGateway, ``),
		"/api/http/projects/id:1": respond(http.StatusOK, `[`),
	})
	catalog := NewCatalog(api)

	projects := catalog.ListProjects(context.Background())
	assert.NotNil(t, projects)
	assert.Empty(t, projects)

	repos := catalog.ListRepositories(context.Background(), "1")
	assert.NotNil(t, repos)
	assert.Empty(t, repos)

	var errorsLogged []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			errorsLogged = append(errorsLogged, entry.Message)
		}
	}
	assert.Len(t, errorsLogged, 2)
	assert.Contains(t, errorsLogged[0], "Failed to fetch projects")
	assert.Contains(t, errorsLogged[1], "Failed to fetch repositories for project 1")
}

func TestCatalog_PassesThroughResults(t *testing.T) {
	api, _ := newSpaceServer(t, map[string]func(w http.ResponseWriter){
		"/api/http/projects":                             respond(http.StatusOK, `{"data":[{"id":"1","name":"Alpha"}]}`),
		"/api/http/projects/id:1":                        respond(http.StatusOK, `{"repos":[{"name":"repoA"}]}`),
		"/api/http/projects/id:1/repositories/repoA/url": respond(http.StatusOK, `{"httpUrl":"https://host/alpha/repoA.git"}`),
	})
	catalog := NewCatalog(api)

	assert.Equal(t, []Project{{ID: "1", Name: "Alpha"}}, catalog.ListProjects(context.Background()))
	assert.Equal(t, []string{"repoA"}, catalog.ListRepositories(context.Background(), "1"))
	result := catalog.ResolveCloneURL(context.Background(), "1", "repoA")
	assert.True(t, result.Found())
	assert.Equal(t, "https://host/alpha/repoA.git", result.URL)
}
