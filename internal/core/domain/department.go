package domain

// Department is an organizational unit. ParentID is stored for display only.
type Department struct {
	DepartmentID string  `json:"departmentID" db:"department_id"`
	Code         string  `json:"code" db:"code"`
	Name         string  `json:"name" db:"name"`
	ParentID     *string `json:"parentID" db:"parent_id"`
	IsActive     bool    `json:"isActive" db:"is_active"`
	SortOrder    int     `json:"sortOrder" db:"sort_order"`
	AuditFields
}
