package services

import (
	"fmt"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	"github.com/SscSPs/document_reception_app/internal/core/domain"
)

// Operation names an action checked by the access policy.
type Operation string

const (
	OpListNotifications  Operation = "list_notifications"
	OpReadNotification   Operation = "read_notification"
	OpCreateNotification Operation = "create_notification"
	OpUpdateNotification Operation = "update_notification"
	OpChangeStatus       Operation = "change_status"
	OpDeleteNotification Operation = "delete_notification"
	OpReadInspection     Operation = "read_inspection"
	OpWriteInspection    Operation = "write_inspection"
	OpReadMasterData     Operation = "read_master_data"
	OpManageMasterData   Operation = "manage_master_data"
)

type accessRule struct {
	minimum domain.Role
	// scoped operations require a GENERAL caller's department to anchor the target
	scoped bool
}

var accessRules = map[Operation]accessRule{
	OpListNotifications:  {minimum: domain.RoleGeneral},
	OpReadNotification:   {minimum: domain.RoleGeneral, scoped: true},
	OpCreateNotification: {minimum: domain.RoleGeneral, scoped: true},
	OpUpdateNotification: {minimum: domain.RoleGeneral, scoped: true},
	OpChangeStatus:       {minimum: domain.RoleSenior},
	OpDeleteNotification: {minimum: domain.RoleAdmin},
	OpReadInspection:     {minimum: domain.RoleGeneral, scoped: true},
	OpWriteInspection:    {minimum: domain.RoleSenior},
	OpReadMasterData:     {minimum: domain.RoleGeneral},
	OpManageMasterData:   {minimum: domain.RoleAdmin},
}

// Authorize decides whether actor may perform op on target. target is the
// notification the operation reads or writes, or the prospective notification
// for a create. It is ignored by unscoped operations.
func Authorize(actor domain.Actor, op Operation, target *domain.Notification) error {
	rule, ok := accessRules[op]
	if !ok {
		return apperrors.NewForbiddenError(fmt.Sprintf("operation %q is not permitted", op))
	}
	if !actor.Role.Satisfies(rule.minimum) {
		return apperrors.NewForbiddenError(fmt.Sprintf("role %s required", rule.minimum))
	}
	if !rule.scoped || actor.Role.Satisfies(domain.RoleSenior) {
		return nil
	}
	if !actor.HasDepartment() {
		return apperrors.NewForbiddenError("no department assigned")
	}
	if target == nil || !actor.CanSee(target) {
		return apperrors.NewForbiddenError("notification is outside your department")
	}
	return nil
}

// ListScope returns the department filter a notification listing must apply
// for actor. visible is false when the actor can see nothing at all.
func ListScope(actor domain.Actor) (scope *string, visible bool) {
	if actor.Role.Satisfies(domain.RoleSenior) {
		return nil, true
	}
	if !actor.HasDepartment() {
		return nil, false
	}
	dept := *actor.DepartmentID
	return &dept, true
}
