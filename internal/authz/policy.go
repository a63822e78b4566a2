package authz

import (
	"github.com/google/uuid"
)

// Caller is the authenticated identity a request acts as. Handlers pass it
// explicitly into scope helpers; there is no ambient request user.
type Caller struct {
	UserID        uuid.UUID
	Email         string
	ClientID      *uuid.UUID
	Role          string
	Authenticated bool
}

type Resource string

const (
	ResourceClient      Resource = "clients"
	ResourceUser        Resource = "users"
	ResourceIsland      Resource = "islands"
	ResourceSDG         Resource = "sdgs"
	ResourceProject     Resource = "projects"
	ResourceDraft       Resource = "drafts"
	ResourceDashboard   Resource = "dashboard"
	ResourceReference   Resource = "reference"
	ResourceCredentials Resource = "credentials"
)

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Level is the access requirement for an operation.
type Level int

const (
	// LevelTenant resolves through tenant scoping. Unauthenticated callers
	// get empty collections (or not-found), never an auth error.
	LevelTenant Level = iota
	// LevelPublic admits anyone, including unauthenticated callers.
	LevelPublic
	// LevelAuthenticated requires a valid token but no particular tenant;
	// used for writes that cannot fall back to empty results.
	LevelAuthenticated
	// LevelSelf requires a valid token; the operation acts on the caller's
	// own record and bypasses tenant filtering.
	LevelSelf
)

// policy is the single place that says who may invoke what. Organization and
// user self-registration are the only open operations. Route registration
// consults this table through middleware.Access.
var policy = map[Resource]map[Operation]Level{
	ResourceClient:      {OpCreate: LevelPublic},
	ResourceUser:        {OpCreate: LevelPublic},
	ResourceCredentials: {OpRead: LevelSelf, OpUpdate: LevelSelf},
	ResourceProject:     {OpCreate: LevelAuthenticated},
	ResourceReference: {
		OpCreate: LevelAuthenticated,
		OpUpdate: LevelAuthenticated,
		OpDelete: LevelAuthenticated,
	},
}

func Lookup(res Resource, op Operation) Level {
	if ops, ok := policy[res]; ok {
		if level, ok := ops[op]; ok {
			return level
		}
	}
	return LevelTenant
}

// Allows reports whether the caller may invoke the operation at all.
// LevelTenant always passes here; row visibility is enforced by the
// scope helpers instead.
func Allows(res Resource, op Operation, caller Caller) bool {
	switch Lookup(res, op) {
	case LevelPublic:
		return true
	case LevelAuthenticated, LevelSelf:
		return caller.Authenticated
	default:
		return true
	}
}
