package department

type CreateDepartmentRequest struct {
	Code        string  `json:"code" binding:"required,max=20"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateDepartmentRequest is a partial update; nil fields are left unchanged.
type UpdateDepartmentRequest struct {
	Code        *string `json:"code" binding:"omitempty,min=1,max=20"`
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type GetDepartmentsFilterRequest struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

type DepartmentQueryFilter struct {
	Search   string
	IsActive *bool
}

type DepartmentResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	IsActive      bool    `json:"is_active"`
	PositionCount int64   `json:"position_count"`
	EmployeeCount int64   `json:"employee_count"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

type DepartmentPositionResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	IsActive bool   `json:"is_active"`
}

type DepartmentEmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	PositionID   string `json:"position_id"`
	Status       string `json:"status"`
}
