package domain

// Actor is the authenticated caller as seen by the access policy.
type Actor struct {
	UserID       string
	Role         Role
	DepartmentID *string
}

// HasDepartment reports whether the actor is assigned to a department.
func (a Actor) HasDepartment() bool {
	return a.DepartmentID != nil && *a.DepartmentID != ""
}

// InScope reports whether the actor's department matches either the receiving
// or the processing department. Actors without a department are never in scope.
func (a Actor) InScope(receivingDepartmentID, processingDepartmentID string) bool {
	if !a.HasDepartment() {
		return false
	}
	dept := *a.DepartmentID
	return dept == receivingDepartmentID || dept == processingDepartmentID
}

// CanSee reports whether the actor's department anchors the notification.
func (a Actor) CanSee(n *Notification) bool {
	return a.InScope(n.ReceivingDepartmentID, n.ProcessingDepartmentID)
}
