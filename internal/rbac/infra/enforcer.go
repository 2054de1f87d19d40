package infra

import (
	"hr-portal/internal/auth"
	"hr-portal/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// DefaultPolicies grants reviewers full access to leave and timesheet
// administration. Employees hold no admin policy.
var DefaultPolicies = [][]string{
	{auth.RoleAdmin, domain.ResourceLeave, domain.ActionAny},
	{auth.RoleAdmin, domain.ResourceTimesheet, domain.ActionAny},
}

func NewEnforcer(policies ...[]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	return e, nil
}
