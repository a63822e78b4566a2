package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/handlers"
	"github.com/emph/emph-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardProjectStats(t *testing.T) {
	app := setupApp(t)
	now := time.Now()

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)

	// No timeline yet: counts as active.
	seedProject(t, &client, "Just Started")

	running := seedProject(t, &client, "Running")
	require.NoError(t, database.DB.Create(&models.ProjectTimeline{
		ProjectID:   running.ID,
		StartDate:   now.AddDate(0, -6, 0),
		EndDate:     now.AddDate(0, 6, 0),
		TotalBudget: decimal.RequireFromString("100000"),
	}).Error)
	source := models.FundingSource{Label: "GEF"}
	require.NoError(t, database.DB.Create(&source).Error)
	require.NoError(t, database.DB.Create(&models.ProjectFunding{
		ProjectID: running.ID,
		SourceID:  source.ID,
		Amount:    decimal.RequireFromString("40000"),
	}).Error)
	require.NoError(t, database.DB.Create(&models.ProjectFunding{
		ProjectID: running.ID,
		SourceID:  source.ID,
		Amount:    decimal.RequireFromString("10000"),
	}).Error)

	finished := seedProject(t, &client, "Finished")
	require.NoError(t, database.DB.Create(&models.ProjectTimeline{
		ProjectID: finished.ID,
		StartDate: now.AddDate(-2, 0, 0),
		EndDate:   now.AddDate(-1, 0, 0),
	}).Error)

	parked := models.Project{ClientID: client.ID, Name: "Parked", Priority: models.PriorityLow}
	require.NoError(t, database.DB.Create(&parked).Error)

	// A project in another organization must not leak into the numbers.
	other := seedClient(t, "Org B", "org-b")
	seedProject(t, &other, "Foreign")

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, tokenFor(t, &user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash handlers.DashboardResponse
	decodeBody(t, resp, &dash)

	assert.Equal(t, 4, dash.ProjectStats.Total)
	assert.Equal(t, 3, dash.ProjectStats.Active)
	assert.Equal(t, 1, dash.ProjectStats.Completed)
	assert.Equal(t, 1, dash.ProjectStats.OnHold)
	assert.Equal(t, dash.ProjectStats.Total, dash.ProjectStats.Active+dash.ProjectStats.Completed)

	// Only the running project has both a timeline and a nonzero budget.
	require.Len(t, dash.BudgetData, 1)
	assert.Equal(t, running.CreatedAt.Format("Jan"), dash.BudgetData[0].Month)
	assert.True(t, dash.BudgetData[0].Planned.Equal(decimal.RequireFromString("100000")))
	assert.True(t, dash.BudgetData[0].Actual.Equal(decimal.RequireFromString("50000")))
}

func TestDashboardSDGDistribution(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)

	noPoverty := models.SDGGoal{Number: 1, Title: "No Poverty", Color: "#E5243B"}
	require.NoError(t, database.DB.Create(&noPoverty).Error)
	climate := models.SDGGoal{Number: 13, Title: "Climate Action", Color: "#3F7E44"}
	require.NoError(t, database.DB.Create(&climate).Error)

	first := seedProject(t, &client, "First")
	require.NoError(t, database.DB.Model(&first).Association("SDGs").Append(&noPoverty, &climate))
	second := seedProject(t, &client, "Second")
	require.NoError(t, database.DB.Model(&second).Association("SDGs").Append(&climate))

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, tokenFor(t, &user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash handlers.DashboardResponse
	decodeBody(t, resp, &dash)

	require.Len(t, dash.SDGDistribution, 2)
	byName := map[string]handlers.SDGSlice{}
	for _, slice := range dash.SDGDistribution {
		byName[slice.Name] = slice
	}
	assert.Equal(t, 1, byName["No Poverty"].Value)
	assert.Equal(t, "#E5243B", byName["No Poverty"].Color)
	assert.Equal(t, 2, byName["Climate Action"].Value)
}

func TestDashboardMilestoneFeeds(t *testing.T) {
	app := setupApp(t)
	now := time.Now()

	client := seedClient(t, "Org A", "org-a")
	user := seedUser(t, &client, "user@a.test", "user-a", "secret123", models.RoleClient)
	project := seedProject(t, &client, "Coastal Resilience")

	mk := func(title string, due time.Time, completed bool) {
		require.NoError(t, database.DB.Create(&models.ProjectMilestone{
			ProjectID: project.ID,
			Title:     title,
			DueDate:   due,
			Completed: completed,
		}).Error)
	}

	mk("overdue-1", now.AddDate(0, 0, -30), false)
	mk("overdue-2", now.AddDate(0, 0, -20), false)
	mk("overdue-3", now.AddDate(0, 0, -10), false)
	mk("soon", now.AddDate(0, 0, 7), false)
	mk("later", now.AddDate(0, 0, 30), false)
	mk("done", now.AddDate(0, 0, 14), true)

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, tokenFor(t, &user))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash handlers.DashboardResponse
	decodeBody(t, resp, &dash)

	// Recent activity: four most recently due incomplete milestones, newest
	// first. The completed one never appears.
	require.Len(t, dash.RecentActivity, 4)
	assert.Equal(t, "later", dash.RecentActivity[0].Message)
	assert.Equal(t, "soon", dash.RecentActivity[1].Message)
	assert.Equal(t, "overdue-3", dash.RecentActivity[2].Message)
	assert.Equal(t, "overdue-2", dash.RecentActivity[3].Message)
	for _, item := range dash.RecentActivity {
		assert.Equal(t, "milestone", item.Type)
		assert.Equal(t, "pending", item.Status)
		assert.Equal(t, "Coastal Resilience", item.Project)
	}

	// Upcoming: future incomplete only, soonest first.
	require.Len(t, dash.UpcomingMilestones, 2)
	assert.Equal(t, "soon", dash.UpcomingMilestones[0].Title)
	assert.Equal(t, "later", dash.UpcomingMilestones[1].Title)
	for _, m := range dash.UpcomingMilestones {
		assert.Equal(t, "on-track", m.Status)
		assert.Zero(t, m.Progress)
	}
}

func TestDashboardUnauthenticatedIsEmpty(t *testing.T) {
	app := setupApp(t)

	client := seedClient(t, "Org A", "org-a")
	seedProject(t, &client, "Coastal Resilience")

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash handlers.DashboardResponse
	decodeBody(t, resp, &dash)

	assert.Zero(t, dash.ProjectStats.Total)
	assert.Empty(t, dash.BudgetData)
	assert.Empty(t, dash.SDGDistribution)
	assert.Empty(t, dash.RecentActivity)
	assert.Empty(t, dash.UpcomingMilestones)
}
