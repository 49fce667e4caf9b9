package dto

// CreateUserRequest is the payload for creating any account role.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid4"`
}

// LinkParentRequest binds a parent account to a student account.
type LinkParentRequest struct {
	ParentID  string `json:"parentId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
}

// ListUsersQuery captures the query-string filters on the users listing.
type ListUsersQuery struct {
	Role     string `form:"role"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
