package domain

// User is an account that can sign in. Users are soft-disabled, never removed.
type User struct {
	UserID       string  `json:"userID" db:"user_id"`
	Username     string  `json:"username" db:"username"`
	PasswordHash string  `json:"-" db:"password_hash"`
	DisplayName  string  `json:"displayName" db:"display_name"`
	Role         Role    `json:"role" db:"role"`
	DepartmentID *string `json:"departmentID" db:"department_id"`
	IsActive     bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// Actor returns the authorization view of the user.
func (u *User) Actor() Actor {
	return Actor{
		UserID:       u.UserID,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}
