package domain

import "time"

// DefaultInspectionStatus is assigned when an inspection is scheduled without a status.
const DefaultInspectionStatus = "予定"

// Inspection is a scheduled or completed inspection attached to a notification.
type Inspection struct {
	InspectionID           string     `json:"inspectionID" db:"inspection_id"`
	NotificationID         string     `json:"notificationID" db:"notification_id"`
	InspectionDate         time.Time  `json:"inspectionDate" db:"inspection_date"`
	InspectionDepartmentID string     `json:"inspectionDepartmentID" db:"inspection_department_id"`
	InspectionType         *string    `json:"inspectionType" db:"inspection_type"`
	Status                 string     `json:"status" db:"status"`
	Result                 *string    `json:"result" db:"result"`
	Notes                  *string    `json:"notes" db:"notes"`
	InspectedBy            *string    `json:"inspectedBy" db:"inspected_by"`
	InspectedAt            *time.Time `json:"inspectedAt" db:"inspected_at"`
	AuditFields
}
