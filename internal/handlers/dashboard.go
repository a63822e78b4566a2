package handlers

import (
	"time"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/metrics"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProjectStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	OnHold    int `json:"onHold"`
}

type BudgetPoint struct {
	Month   string          `json:"month"`
	Planned decimal.Decimal `json:"planned"`
	Actual  decimal.Decimal `json:"actual"`
}

type SDGSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type ActivityItem struct {
	ID      uuid.UUID `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Project string    `json:"project"`
	Time    string    `json:"time"`
	Status  string    `json:"status"`
}

type UpcomingMilestone struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Project  string    `json:"project"`
	DueDate  string    `json:"dueDate"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"`
}

type DashboardResponse struct {
	ProjectStats       ProjectStats        `json:"projectStats"`
	BudgetData         []BudgetPoint       `json:"budgetData"`
	SDGDistribution    []SDGSlice          `json:"sdgDistribution"`
	RecentActivity     []ActivityItem      `json:"recentActivity"`
	UpcomingMilestones []UpcomingMilestone `json:"upcomingMilestones"`
}

// GetDashboard computes the tenant's summary view. All of it is read-only;
// projects without a timeline are a normal state, counted as active.
func GetDashboard(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	now := time.Now()

	var projects []models.Project
	if err := database.DB.Scopes(authz.ProjectScope(caller)).
		Preload("Timeline").
		Preload("SDGs").
		Preload("FundingSources").
		Find(&projects).Error; err != nil {
		metrics.IncrementDashboardRequests("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch projects",
		})
	}

	stats := ProjectStats{Total: len(projects)}
	budgetData := []BudgetPoint{}
	for _, p := range projects {
		if p.Timeline == nil {
			stats.Active++
		} else if p.Timeline.EndDate.After(now) {
			stats.Active++
		} else {
			stats.Completed++
		}

		if p.Priority == models.PriorityLow {
			stats.OnHold++
		}

		if p.Timeline != nil && !p.Timeline.TotalBudget.IsZero() {
			actual := decimal.Zero
			for _, f := range p.FundingSources {
				actual = actual.Add(f.Amount)
			}
			budgetData = append(budgetData, BudgetPoint{
				Month:   p.CreatedAt.Format("Jan"),
				Planned: p.Timeline.TotalBudget,
				Actual:  actual,
			})
		}
	}

	// Grouped by goal id; title and color are display-only, so goals that
	// happen to share a title stay separate.
	distribution := []SDGSlice{}
	slotByGoal := map[uuid.UUID]int{}
	for _, p := range projects {
		for _, goal := range p.SDGs {
			if slot, ok := slotByGoal[goal.ID]; ok {
				distribution[slot].Value++
				continue
			}
			slotByGoal[goal.ID] = len(distribution)
			distribution = append(distribution, SDGSlice{
				Name:  goal.Title,
				Value: 1,
				Color: goal.Color,
			})
		}
	}

	var recent []models.ProjectMilestone
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		Where("project_milestones.completed = ?", false).
		Order("project_milestones.due_date DESC").
		Limit(4).
		Preload("Project").
		Find(&recent).Error; err != nil {
		metrics.IncrementDashboardRequests("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch milestones",
		})
	}

	recentActivity := []ActivityItem{}
	for _, m := range recent {
		projectName := ""
		if m.Project != nil {
			projectName = m.Project.Name
		}
		recentActivity = append(recentActivity, ActivityItem{
			ID:      m.ID,
			Type:    "milestone",
			Message: m.Title,
			Project: projectName,
			Time:    m.DueDate.Format("2006-01-02"),
			Status:  "pending",
		})
	}

	var future []models.ProjectMilestone
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		Where("project_milestones.completed = ? AND project_milestones.due_date > ?", false, now).
		Order("project_milestones.due_date ASC").
		Limit(3).
		Preload("Project").
		Find(&future).Error; err != nil {
		metrics.IncrementDashboardRequests("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch milestones",
		})
	}

	upcoming := []UpcomingMilestone{}
	for _, m := range future {
		projectName := ""
		if m.Project != nil {
			projectName = m.Project.Name
		}
		upcoming = append(upcoming, UpcomingMilestone{
			ID:       m.ID,
			Title:    m.Title,
			Project:  projectName,
			DueDate:  m.DueDate.Format("2006-01-02"),
			Status:   "on-track",
			Progress: 0,
		})
	}

	metrics.IncrementDashboardRequests("success")
	return c.JSON(DashboardResponse{
		ProjectStats:       stats,
		BudgetData:         budgetData,
		SDGDistribution:    distribution,
		RecentActivity:     recentActivity,
		UpcomingMilestones: upcoming,
	})
}
