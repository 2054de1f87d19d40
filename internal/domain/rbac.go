package domain

// Resources guarded by the admin policy. They double as outbox aggregate
// types and metric labels.
const (
	ResourceLeave     = "leave"
	ResourceTimesheet = "timesheet"
)

const (
	ActionRead    = "read"
	ActionApprove = "approve"
	ActionAny     = "*"
)

// EnforceRequest asks whether a role may perform action on resource.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

// Permission renders the request as "resource:action".
func (r EnforceRequest) Permission() string {
	return r.Resource + ":" + r.Action
}
