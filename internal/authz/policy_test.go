package authz_test

import (
	"testing"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, authz.LevelPublic, authz.Lookup(authz.ResourceClient, authz.OpCreate))
	assert.Equal(t, authz.LevelPublic, authz.Lookup(authz.ResourceUser, authz.OpCreate))
	assert.Equal(t, authz.LevelSelf, authz.Lookup(authz.ResourceCredentials, authz.OpRead))
	assert.Equal(t, authz.LevelSelf, authz.Lookup(authz.ResourceCredentials, authz.OpUpdate))

	// Reference-data writes and project creation need a token.
	assert.Equal(t, authz.LevelAuthenticated, authz.Lookup(authz.ResourceReference, authz.OpCreate))
	assert.Equal(t, authz.LevelAuthenticated, authz.Lookup(authz.ResourceReference, authz.OpUpdate))
	assert.Equal(t, authz.LevelAuthenticated, authz.Lookup(authz.ResourceReference, authz.OpDelete))
	assert.Equal(t, authz.LevelAuthenticated, authz.Lookup(authz.ResourceProject, authz.OpCreate))

	// Everything else resolves through tenant scoping.
	assert.Equal(t, authz.LevelTenant, authz.Lookup(authz.ResourceProject, authz.OpList))
	assert.Equal(t, authz.LevelTenant, authz.Lookup(authz.ResourceClient, authz.OpDelete))
	assert.Equal(t, authz.LevelTenant, authz.Lookup(authz.ResourceDashboard, authz.OpRead))
	assert.Equal(t, authz.LevelTenant, authz.Lookup(authz.ResourceReference, authz.OpList))
}

func TestAllows(t *testing.T) {
	anonymous := authz.Caller{}
	clientID := uuid.New()
	user := authz.Caller{
		UserID:        uuid.New(),
		ClientID:      &clientID,
		Role:          models.RoleClient,
		Authenticated: true,
	}

	assert.True(t, authz.Allows(authz.ResourceClient, authz.OpCreate, anonymous))
	assert.True(t, authz.Allows(authz.ResourceUser, authz.OpCreate, anonymous))

	assert.False(t, authz.Allows(authz.ResourceCredentials, authz.OpUpdate, anonymous))
	assert.True(t, authz.Allows(authz.ResourceCredentials, authz.OpUpdate, user))

	assert.False(t, authz.Allows(authz.ResourceReference, authz.OpCreate, anonymous))
	assert.True(t, authz.Allows(authz.ResourceReference, authz.OpCreate, user))
	assert.False(t, authz.Allows(authz.ResourceProject, authz.OpCreate, anonymous))

	// Tenant-level operations pass the gate; the scopes decide visibility.
	assert.True(t, authz.Allows(authz.ResourceProject, authz.OpList, anonymous))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.ClientUser{},
		&models.Project{},
		&models.ProjectMilestone{},
	))
	return db
}

func TestProjectScope(t *testing.T) {
	db := openTestDB(t)

	clientA := models.Client{Name: "Org A", Slug: "org-a"}
	require.NoError(t, db.Create(&clientA).Error)
	clientB := models.Client{Name: "Org B", Slug: "org-b"}
	require.NoError(t, db.Create(&clientB).Error)

	require.NoError(t, db.Create(&models.Project{ClientID: clientA.ID, Name: "A1"}).Error)
	require.NoError(t, db.Create(&models.Project{ClientID: clientA.ID, Name: "A2"}).Error)
	require.NoError(t, db.Create(&models.Project{ClientID: clientB.ID, Name: "B1"}).Error)

	caller := authz.Caller{
		UserID:        uuid.New(),
		ClientID:      &clientA.ID,
		Role:          models.RoleClient,
		Authenticated: true,
	}

	var projects []models.Project
	require.NoError(t, db.Scopes(authz.ProjectScope(caller)).Find(&projects).Error)
	assert.Len(t, projects, 2)

	projects = nil
	require.NoError(t, db.Scopes(authz.ProjectScope(authz.Caller{})).Find(&projects).Error)
	assert.Empty(t, projects)

	// Authenticated but without an organization is still denied.
	orphan := authz.Caller{UserID: uuid.New(), Role: models.RoleClient, Authenticated: true}
	projects = nil
	require.NoError(t, db.Scopes(authz.ProjectScope(orphan)).Find(&projects).Error)
	assert.Empty(t, projects)
}

func TestProjectChildScope(t *testing.T) {
	db := openTestDB(t)

	clientA := models.Client{Name: "Org A", Slug: "org-a"}
	require.NoError(t, db.Create(&clientA).Error)
	clientB := models.Client{Name: "Org B", Slug: "org-b"}
	require.NoError(t, db.Create(&clientB).Error)

	projectA := models.Project{ClientID: clientA.ID, Name: "A1"}
	require.NoError(t, db.Create(&projectA).Error)
	projectB := models.Project{ClientID: clientB.ID, Name: "B1"}
	require.NoError(t, db.Create(&projectB).Error)

	require.NoError(t, db.Create(&models.ProjectMilestone{ProjectID: projectA.ID, Title: "mine"}).Error)
	require.NoError(t, db.Create(&models.ProjectMilestone{ProjectID: projectB.ID, Title: "theirs"}).Error)

	caller := authz.Caller{
		UserID:        uuid.New(),
		ClientID:      &clientA.ID,
		Role:          models.RoleClient,
		Authenticated: true,
	}

	var milestones []models.ProjectMilestone
	require.NoError(t, db.Scopes(authz.ProjectChildScope(caller, "project_milestones")).Find(&milestones).Error)
	require.Len(t, milestones, 1)
	assert.Equal(t, "mine", milestones[0].Title)
}

func TestUserScope(t *testing.T) {
	db := openTestDB(t)

	client := models.Client{Name: "Org A", Slug: "org-a"}
	require.NoError(t, db.Create(&client).Error)

	admin := models.ClientUser{Email: "admin@a.test", Username: "admin-a", Password: "x", Role: models.RoleAdmin, ClientID: &client.ID}
	require.NoError(t, db.Create(&admin).Error)
	agent := models.ClientUser{Email: "agent@a.test", Username: "agent-a", Password: "x", Role: models.RoleAgent, ClientID: &client.ID}
	require.NoError(t, db.Create(&agent).Error)

	adminCaller := authz.Caller{UserID: admin.ID, ClientID: &client.ID, Role: models.RoleAdmin, Authenticated: true}
	var users []models.ClientUser
	require.NoError(t, db.Scopes(authz.UserScope(adminCaller)).Find(&users).Error)
	assert.Len(t, users, 2)

	agentCaller := authz.Caller{UserID: agent.ID, ClientID: &client.ID, Role: models.RoleAgent, Authenticated: true}
	users = nil
	require.NoError(t, db.Scopes(authz.UserScope(agentCaller)).Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, agent.ID, users[0].ID)
}
