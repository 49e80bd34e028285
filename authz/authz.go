package authz

import "github.com/localfixhq/localfix/models"

// Actions gated by authorization. Handlers pass these to the Authorizer
// instead of comparing identities inline.
const (
	ActionUpdateReportStatus = "report.status.update"
	ActionClearReports       = "report.store.clear"
)

// Authorizer answers whether a user may perform an action. Decisions are
// role-based; no identity string is ever special-cased.
type Authorizer interface {
	IsAuthorized(user *models.User, action string) bool
}

type rolePolicy struct {
	adminActions map[string]bool
}

// NewRolePolicy returns the default policy: administrative actions require
// the Admin role, everything else is open to any authenticated user.
func NewRolePolicy() Authorizer {
	return &rolePolicy{
		adminActions: map[string]bool{
			ActionUpdateReportStatus: true,
			ActionClearReports:       true,
		},
	}
}

func (p *rolePolicy) IsAuthorized(user *models.User, action string) bool {
	if user == nil {
		return false
	}
	if !p.adminActions[action] {
		return true
	}
	return user.Role.Name == models.RoleAdmin
}
