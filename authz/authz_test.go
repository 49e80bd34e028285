package authz

import (
	"testing"

	"github.com/localfixhq/localfix/models"
)

func TestRolePolicy(t *testing.T) {
	policy := NewRolePolicy()
	admin := &models.User{Role: models.Role{Name: models.RoleAdmin}}
	member := &models.User{Role: models.Role{Name: models.RoleUser}}

	testCases := []struct {
		name   string
		user   *models.User
		action string
		want   bool
	}{
		{"admin can update status", admin, ActionUpdateReportStatus, true},
		{"admin can clear reports", admin, ActionClearReports, true},
		{"member cannot update status", member, ActionUpdateReportStatus, false},
		{"member cannot clear reports", member, ActionClearReports, false},
		{"member can do unrestricted actions", member, "report.submit", true},
		{"nil user is denied everything", nil, "report.submit", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.IsAuthorized(tc.user, tc.action); got != tc.want {
				t.Errorf("IsAuthorized(%s) = %v, want %v", tc.action, got, tc.want)
			}
		})
	}
}
