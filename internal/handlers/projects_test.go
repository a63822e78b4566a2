package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, client *models.Client, name string) models.Project {
	t.Helper()
	project := models.Project{
		ClientID: client.ID,
		Name:     name,
		Priority: models.PriorityMedium,
	}
	require.NoError(t, database.DB.Create(&project).Error)
	return project
}

func TestProjectTenantIsolation(t *testing.T) {
	app := setupApp(t)

	clientA := seedClient(t, "Org A", "org-a")
	clientB := seedClient(t, "Org B", "org-b")
	userA := seedUser(t, &clientA, "user@a.test", "user-a", "secret123", models.RoleClient)
	userB := seedUser(t, &clientB, "user@b.test", "user-b", "secret123", models.RoleClient)

	projectA := seedProject(t, &clientA, "Coastal Resilience")
	projectB := seedProject(t, &clientB, "Solar Microgrids")

	t.Run("list is scoped to the caller's organization", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/projects", nil, tokenFor(t, &userA))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var projects []models.Project
		decodeBody(t, resp, &projects)
		require.Len(t, projects, 1)
		assert.Equal(t, projectA.ID, projects[0].ID)
	})

	t.Run("unauthenticated list is empty, not an error", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/projects", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var projects []models.Project
		decodeBody(t, resp, &projects)
		assert.Empty(t, projects)
	})

	t.Run("cross-tenant detail is not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/projects/"+projectB.ID.String(), nil, tokenFor(t, &userA))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, "/api/projects/"+projectA.ID.String(), nil, tokenFor(t, &userB))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("own detail works", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/projects/"+projectA.ID.String(), nil, tokenFor(t, &userA))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var project models.Project
		decodeBody(t, resp, &project)
		assert.Equal(t, "Coastal Resilience", project.Name)
	})
}

func TestCreateProjectStampsOwnership(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)

	t.Run("unauthenticated creation is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
			"name": "Orphan Project",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("owner and creator come from the token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
			"name":        "Coastal Resilience",
			"description": "Mangrove restoration",
			"priority":    models.PriorityHigh,
		}, tokenFor(t, &user))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var project models.Project
		decodeBody(t, resp, &project)
		assert.Equal(t, client.ID, project.ClientID)
		require.NotNil(t, project.CreatedByID)
		assert.Equal(t, user.ID, *project.CreatedByID)
	})
}

func TestProjectNestedResources(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)
	project := seedProject(t, &client, "Coastal Resilience")
	token := tokenFor(t, &user)

	t.Run("milestone", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/milestones", map[string]any{
			"title":   "Baseline survey",
			"dueDate": time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var milestone models.ProjectMilestone
		decodeBody(t, resp, &milestone)
		assert.Equal(t, project.ID, milestone.ProjectID)
		assert.False(t, milestone.Completed)
	})

	t.Run("objective with metric", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/objectives", map[string]any{
			"text": "Restore 50ha of mangrove",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var objective models.ProjectObjective
		decodeBody(t, resp, &objective)

		resp = doJSON(t, app, http.MethodPost, "/api/objectives/"+objective.ID.String()+"/metrics", map[string]any{
			"text": "Hectares restored",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("funding", func(t *testing.T) {
		source := models.FundingSource{Label: "GEF"}
		require.NoError(t, database.DB.Create(&source).Error)

		resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/funding", map[string]any{
			"sourceId": source.ID.String(),
			"amount":   "125000.50",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var funding models.ProjectFunding
		decodeBody(t, resp, &funding)
		assert.True(t, funding.Amount.Equal(decimal.RequireFromString("125000.50")))
	})

	t.Run("timeline get-or-create", func(t *testing.T) {
		start := time.Now()
		end := start.AddDate(1, 0, 0)

		resp := doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/timeline", map[string]any{
			"startDate":   start.Format(time.RFC3339),
			"endDate":     end.Format(time.RFC3339),
			"totalBudget": "500000",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// A second call updates the same row rather than creating another.
		resp = doJSON(t, app, http.MethodPost, "/api/projects/"+project.ID.String()+"/timeline", map[string]any{
			"totalBudget": "600000",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		database.DB.Model(&models.ProjectTimeline{}).Where("project_id = ?", project.ID).Count(&count)
		assert.EqualValues(t, 1, count)

		var timeline models.ProjectTimeline
		require.NoError(t, database.DB.First(&timeline, "project_id = ?", project.ID).Error)
		assert.True(t, timeline.TotalBudget.Equal(decimal.RequireFromString("600000")))
	})

	t.Run("nested writes on a foreign project are not found", func(t *testing.T) {
		other := seedClient(t, "Org B", "org-b")
		foreign := seedProject(t, &other, "Solar Microgrids")

		resp := doJSON(t, app, http.MethodPost, "/api/projects/"+foreign.ID.String()+"/milestones", map[string]any{
			"title": "Should not land",
		}, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDraftLifecycle(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)
	project := seedProject(t, &client, "Coastal Resilience")
	token := tokenFor(t, &user)

	resp := doJSON(t, app, http.MethodPost, "/api/drafts", map[string]any{
		"projectId":   project.ID.String(),
		"currentStep": 2,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var draft models.ProjectDraft
	decodeBody(t, resp, &draft)
	assert.Equal(t, 2, draft.CurrentStep)
	assert.False(t, draft.IsFinalized)

	t.Run("second draft for the same project conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/drafts", map[string]any{
			"projectId": project.ID.String(),
		}, token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("finalize", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/drafts/"+draft.ID.String()+"/finalize", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "project finalized", body["status"])

		var saved models.ProjectDraft
		require.NoError(t, database.DB.First(&saved, "id = ?", draft.ID).Error)
		assert.True(t, saved.IsFinalized)
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)
	project := seedProject(t, &client, "Coastal Resilience")

	milestone := models.ProjectMilestone{ProjectID: project.ID, Title: "Baseline survey", DueDate: time.Now()}
	require.NoError(t, database.DB.Create(&milestone).Error)
	timeline := models.ProjectTimeline{ProjectID: project.ID, StartDate: time.Now(), EndDate: time.Now().AddDate(1, 0, 0)}
	require.NoError(t, database.DB.Create(&timeline).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/projects/"+project.ID.String(), nil, tokenFor(t, &user))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	database.DB.Model(&models.ProjectMilestone{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.ProjectTimeline{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
}
