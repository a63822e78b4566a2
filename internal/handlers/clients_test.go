package handlers_test

import (
	"net/http"
	"testing"

	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClientAssignsUniqueSlugs(t *testing.T) {
	app := setupApp(t)

	var slugs []string
	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/clients", map[string]any{
			"name": "Test Organization",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var client models.Client
		decodeBody(t, resp, &client)
		slugs = append(slugs, client.Slug)
	}

	assert.Equal(t, []string{"test-organization", "test-organization-1", "test-organization-2"}, slugs)
}

func TestCreateClientFallsBackToOrganizationName(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/clients", map[string]any{
		"organizationName": "Pacific Youth Council",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var client models.Client
	decodeBody(t, resp, &client)
	assert.Equal(t, "Pacific Youth Council", client.Name)
	assert.Equal(t, "pacific-youth-council", client.Slug)
}

func TestCreateClientRequiresName(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/clients", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClientListScoping(t *testing.T) {
	app := setupApp(t)

	clientA := seedClient(t, "Org A", "org-a")
	clientB := seedClient(t, "Org B", "org-b")
	admin := seedUser(t, &clientA, "admin@a.test", "admin-a", "secret123", models.RoleAdmin)
	agent := seedUser(t, &clientB, "agent@b.test", "agent-b", "secret123", models.RoleAgent)

	t.Run("admin sees only own organization", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/clients", nil, tokenFor(t, &admin))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var clients []models.Client
		decodeBody(t, resp, &clients)
		require.Len(t, clients, 1)
		assert.Equal(t, clientA.ID, clients[0].ID)
	})

	t.Run("non-admin sees nothing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/clients", nil, tokenFor(t, &agent))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var clients []models.Client
		decodeBody(t, resp, &clients)
		assert.Empty(t, clients)
	})

	t.Run("unauthenticated sees nothing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/clients", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var clients []models.Client
		decodeBody(t, resp, &clients)
		assert.Empty(t, clients)
	})

	t.Run("cross-tenant detail is not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/clients/"+clientB.ID.String(), nil, tokenFor(t, &admin))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteClientCascades(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	admin := seedUser(t, &client, "admin@a.test", "admin-a", "secret123", models.RoleAdmin)
	seedUser(t, &client, "agent@a.test", "agent-a", "secret123", models.RoleAgent)

	project := models.Project{ClientID: client.ID, Name: "Coastal Resilience"}
	require.NoError(t, database.DB.Create(&project).Error)
	require.NoError(t, database.DB.Create(&models.ProjectMilestone{
		ProjectID: project.ID,
		Title:     "Baseline survey",
	}).Error)
	require.NoError(t, database.DB.Create(&models.ProjectTimeline{ProjectID: project.ID}).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/clients/"+client.ID.String(), nil, tokenFor(t, &admin))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.ClientUser{}).Where("client_id = ?", client.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Project{}).Where("client_id = ?", client.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.ProjectMilestone{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.ProjectTimeline{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGetClientUsers(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	admin := seedUser(t, &client, "admin@a.test", "admin-a", "secret123", models.RoleAdmin)
	seedUser(t, &client, "agent@a.test", "agent-a", "secret123", models.RoleAgent)

	resp := doJSON(t, app, http.MethodGet, "/api/clients/"+client.ID.String()+"/users", nil, tokenFor(t, &admin))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.ClientUser
	decodeBody(t, resp, &users)
	assert.Len(t, users, 2)
}
