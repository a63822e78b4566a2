package slug_test

import (
	"testing"

	"github.com/emph/emph-api/internal/models"
	"github.com/emph/emph-api/internal/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDerive(t *testing.T) {
	assert.Equal(t, "test-organization", slug.Derive("Test Organization"))
	assert.Equal(t, "pacific-youth-council", slug.Derive("Pacific Youth Council"))
	assert.Equal(t, "already-lower", slug.Derive("already-lower"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "test-organization", slug.WithSuffix("test-organization", 0))
	assert.Equal(t, "test-organization-1", slug.WithSuffix("test-organization", 1))
	assert.Equal(t, "test-organization-7", slug.WithSuffix("test-organization", 7))
}

func TestNextAvailable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Client{}))

	got, err := slug.NextAvailable(db, "test-organization")
	require.NoError(t, err)
	assert.Equal(t, "test-organization", got)

	require.NoError(t, db.Create(&models.Client{Name: "Test Organization", Slug: "test-organization"}).Error)
	got, err = slug.NextAvailable(db, "test-organization")
	require.NoError(t, err)
	assert.Equal(t, "test-organization-1", got)

	require.NoError(t, db.Create(&models.Client{Name: "Test Organization", Slug: "test-organization-1"}).Error)
	got, err = slug.NextAvailable(db, "test-organization")
	require.NoError(t, err)
	assert.Equal(t, "test-organization-2", got)

	// A hole in the sequence is reused; the walk is from zero upward.
	require.NoError(t, db.Where("slug = ?", "test-organization-1").Delete(&models.Client{}).Error)
	got, err = slug.NextAvailable(db, "test-organization")
	require.NoError(t, err)
	assert.Equal(t, "test-organization-1", got)
}
