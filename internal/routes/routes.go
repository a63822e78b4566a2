package routes

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/handlers"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", middleware.Authenticate())

	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)

	clients := api.Group("/clients")
	clients.Post("/", middleware.Access(authz.ResourceClient, authz.OpCreate), handlers.CreateClient)
	clients.Get("/", handlers.GetClients)
	clients.Get("/:id", handlers.GetClient)
	clients.Put("/:id", handlers.UpdateClient)
	clients.Delete("/:id", handlers.DeleteClient)
	clients.Get("/:id/users", handlers.GetClientUsers)

	users := api.Group("/users")
	users.Get("/me", middleware.Access(authz.ResourceCredentials, authz.OpRead), handlers.GetMe)
	users.Post("/change-password", middleware.Access(authz.ResourceCredentials, authz.OpUpdate), handlers.ChangePassword)
	users.Post("/", middleware.Access(authz.ResourceUser, authz.OpCreate), handlers.RegisterUser)
	users.Get("/", handlers.GetUsers)
	users.Get("/:id", handlers.GetUser)
	users.Put("/:id", handlers.UpdateUser)
	users.Delete("/:id", handlers.DeleteUser)

	refCreate := middleware.Access(authz.ResourceReference, authz.OpCreate)
	refUpdate := middleware.Access(authz.ResourceReference, authz.OpUpdate)
	refDelete := middleware.Access(authz.ResourceReference, authz.OpDelete)

	islands := api.Group("/islands")
	islands.Get("/", handlers.GetIslands)
	islands.Post("/", refCreate, handlers.CreateIsland)
	islands.Get("/:id", handlers.GetIsland)
	islands.Put("/:id", refUpdate, handlers.UpdateIsland)
	islands.Delete("/:id", refDelete, handlers.DeleteIsland)

	sdgs := api.Group("/sdgs")
	sdgs.Get("/", handlers.GetSDGGoals)
	sdgs.Post("/", refCreate, handlers.CreateSDGGoal)
	sdgs.Get("/:id", handlers.GetSDGGoal)

	targets := api.Group("/sdg-targets")
	targets.Get("/by-goal", handlers.GetSDGTargetsByGoal)
	targets.Get("/", handlers.GetSDGTargets)
	targets.Post("/", refCreate, handlers.CreateSDGTarget)

	api.Get("/sdg-indicators", handlers.GetSDGIndicators)

	funding := api.Group("/funding-sources")
	funding.Get("/", handlers.GetFundingSources)
	funding.Post("/", refCreate, handlers.CreateFundingSource)
	funding.Delete("/:id", refDelete, handlers.DeleteFundingSource)

	riskFactors := api.Group("/risk-factors")
	riskFactors.Get("/", handlers.GetRiskFactors)
	riskFactors.Post("/", refCreate, handlers.CreateRiskFactor)

	categories := api.Group("/stakeholder-categories")
	categories.Get("/", handlers.GetStakeholderCategories)
	categories.Post("/", refCreate, handlers.CreateStakeholderCategory)

	projects := api.Group("/projects")
	projects.Get("/", handlers.GetProjects)
	projects.Post("/", middleware.Access(authz.ResourceProject, authz.OpCreate), handlers.CreateProject)
	projects.Get("/:id", handlers.GetProject)
	projects.Put("/:id", handlers.UpdateProject)
	projects.Delete("/:id", handlers.DeleteProject)

	projects.Post("/:id/milestones", handlers.AddProjectMilestone)
	projects.Post("/:id/objectives", handlers.AddProjectObjective)
	projects.Post("/:id/funding", handlers.AddProjectFunding)
	projects.Post("/:id/timeline", handlers.UpdateProjectTimeline)
	projects.Get("/:id/risk", handlers.GetProjectRisk)
	projects.Put("/:id/risk", handlers.UpsertProjectRisk)
	projects.Get("/:id/stakeholders", handlers.GetProjectStakeholders)
	projects.Post("/:id/stakeholders", handlers.AddProjectStakeholder)
	projects.Delete("/:id/stakeholders/:stakeholderId", handlers.RemoveProjectStakeholder)
	projects.Get("/:id/sdg-progress", handlers.GetProjectProgress)
	projects.Post("/:id/sdg-progress", handlers.UpsertProjectProgress)

	timelines := api.Group("/timelines")
	timelines.Get("/", handlers.GetTimelines)
	timelines.Get("/:id", handlers.GetTimeline)
	timelines.Put("/:id", handlers.UpdateTimeline)
	timelines.Delete("/:id", handlers.DeleteTimeline)

	milestones := api.Group("/milestones")
	milestones.Get("/", handlers.GetMilestones)
	milestones.Get("/:id", handlers.GetMilestone)
	milestones.Put("/:id", handlers.UpdateMilestone)
	milestones.Delete("/:id", handlers.DeleteMilestone)

	objectives := api.Group("/objectives")
	objectives.Get("/", handlers.GetObjectives)
	objectives.Get("/:id", handlers.GetObjective)
	objectives.Put("/:id", handlers.UpdateObjective)
	objectives.Delete("/:id", handlers.DeleteObjective)
	objectives.Post("/:id/metrics", handlers.AddObjectiveMetric)

	metrics := api.Group("/metrics")
	metrics.Get("/", handlers.GetMetrics)
	metrics.Delete("/:id", handlers.DeleteMetric)

	drafts := api.Group("/drafts")
	drafts.Get("/", handlers.GetDrafts)
	drafts.Post("/", handlers.CreateDraft)
	drafts.Get("/:id", handlers.GetDraft)
	drafts.Put("/:id", handlers.UpdateDraft)
	drafts.Delete("/:id", handlers.DeleteDraft)
	drafts.Post("/:id/finalize", handlers.FinalizeDraft)

	progress := api.Group("/sdg-progress")
	progress.Get("/", handlers.GetProgressReports)
	progress.Get("/:id", handlers.GetProgressReport)
	progress.Delete("/:id", handlers.DeleteProgressReport)

	api.Get("/dashboard", handlers.GetDashboard)
}
