package rbac_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/rbac"
	"github.com/nateesoft/management-hrm-system/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rolesErr error
}

func (f *fakeRepo) GetEmployeeRoles(ctx context.Context, companyID string) ([]rbac.EmployeeRoleRow, error) {
	if f.rolesErr != nil {
		return nil, f.rolesErr
	}
	return []rbac.EmployeeRoleRow{
		{EmployeeID: "emp-hr", RoleID: "role-hr"},
		{EmployeeID: "emp-staff", RoleID: "role-staff"},
	}, nil
}

func (f *fakeRepo) GetRolePermissions(ctx context.Context, companyID string) ([]rbac.RolePermissionRow, error) {
	return []rbac.RolePermissionRow{
		{RoleID: "role-hr", Resource: "payroll", Action: "generate"},
		{RoleID: "role-hr", Resource: "payroll", Action: "read"},
		{RoleID: "role-staff", Resource: "employee", Action: "read"},
	}, nil
}

func TestRBACService_Enforce(t *testing.T) {
	ctx := context.Background()
	enforcer, err := infra.NewEnforcer("")
	assert.NoError(t, err)

	svc := rbac.NewService(&fakeRepo{}, enforcer)

	tests := []struct {
		name     string
		req      rbac.EnforceRequest
		expected bool
	}{
		{"hr can generate payroll", rbac.EnforceRequest{EmployeeID: "emp-hr", CompanyID: "c1", Resource: "payroll", Action: "generate"}, true},
		{"staff cannot generate payroll", rbac.EnforceRequest{EmployeeID: "emp-staff", CompanyID: "c1", Resource: "payroll", Action: "generate"}, false},
		{"staff can read employees", rbac.EnforceRequest{EmployeeID: "emp-staff", CompanyID: "c1", Resource: "employee", Action: "read"}, true},
		{"unknown employee denied", rbac.EnforceRequest{EmployeeID: "emp-x", CompanyID: "c1", Resource: "employee", Action: "read"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(ctx, tt.req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
		})
	}
}

func TestRBACService_Enforce_RepoError(t *testing.T) {
	enforcer, err := infra.NewEnforcer("")
	assert.NoError(t, err)

	svc := rbac.NewService(&fakeRepo{rolesErr: errors.New("db down")}, enforcer)

	allowed, err := svc.Enforce(context.Background(), rbac.EnforceRequest{EmployeeID: "emp-hr", CompanyID: "c1", Resource: "payroll", Action: "read"})
	assert.Error(t, err)
	assert.False(t, allowed)
}
