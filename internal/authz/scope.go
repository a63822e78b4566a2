package authz

import (
	"github.com/emph/emph-api/internal/models"
	"gorm.io/gorm"
)

// denyAll yields an empty result set without erroring. Unauthenticated and
// tenant-less callers must see nothing, not a failure.
func denyAll(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// ProjectScope restricts a project query to the caller's organization.
func ProjectScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated || caller.ClientID == nil {
			return denyAll(db)
		}
		return db.Where("projects.client_id = ?", *caller.ClientID)
	}
}

// ProjectChildScope restricts a query over a project sub-entity table to rows
// whose owning project belongs to the caller's organization.
func ProjectChildScope(caller Caller, table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated || caller.ClientID == nil {
			return denyAll(db)
		}
		return db.
			Joins("JOIN projects ON projects.id = "+table+".project_id").
			Where("projects.client_id = ?", *caller.ClientID)
	}
}

// MetricScope reaches metrics through their objective's project.
func MetricScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated || caller.ClientID == nil {
			return denyAll(db)
		}
		return db.
			Joins("JOIN project_objectives ON project_objectives.id = success_metrics.objective_id").
			Joins("JOIN projects ON projects.id = project_objectives.project_id").
			Where("projects.client_id = ?", *caller.ClientID)
	}
}

// UserScope: admins see their organization's users, everyone else only
// their own record.
func UserScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated {
			return denyAll(db)
		}
		if caller.Role == models.RoleAdmin && caller.ClientID != nil {
			return db.Where("client_users.client_id = ?", *caller.ClientID)
		}
		return db.Where("client_users.id = ?", caller.UserID)
	}
}

// ClientScope: admins see their own organization, everyone else none.
func ClientScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated || caller.Role != models.RoleAdmin || caller.ClientID == nil {
			return denyAll(db)
		}
		return db.Where("clients.id = ?", *caller.ClientID)
	}
}

// ReferenceScope: shared lookup data is visible to any authenticated caller
// regardless of tenant; unauthenticated callers see nothing.
func ReferenceScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !caller.Authenticated {
			return denyAll(db)
		}
		return db
	}
}
