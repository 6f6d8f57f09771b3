package domain

// NotificationType classifies notifications and toggles optional features.
type NotificationType struct {
	NotificationTypeID     string  `json:"notificationTypeID" db:"notification_type_id"`
	Code                   string  `json:"code" db:"code"`
	Name                   string  `json:"name" db:"name"`
	Description            *string `json:"description" db:"description"`
	ParentGroupID          *string `json:"parentGroupID" db:"parent_group_id"`
	HasInspection          bool    `json:"hasInspection" db:"has_inspection"`
	HasContentField        bool    `json:"hasContentField" db:"has_content_field"`
	RequiresAdditionalData bool    `json:"requiresAdditionalData" db:"requires_additional_data"`
	WorkflowTemplateID     *string `json:"workflowTemplateID" db:"workflow_template_id"`
	IsActive               bool    `json:"isActive" db:"is_active"`
	SortOrder              int     `json:"sortOrder" db:"sort_order"`
	AuditFields
}

// WorkflowTemplate is an advisory, ordered list of status names. Transitions
// are never validated against it.
type WorkflowTemplate struct {
	WorkflowTemplateID string   `json:"workflowTemplateID" db:"workflow_template_id"`
	Name               string   `json:"name" db:"name"`
	Statuses           []string `json:"statuses" db:"statuses"`
	AuditFields
}

// InitialStatus returns the first status of the template, if any.
func (w *WorkflowTemplate) InitialStatus() (string, bool) {
	if len(w.Statuses) == 0 {
		return "", false
	}
	return w.Statuses[0], true
}
