package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateSubDepartmentRequest struct {
	DepartmentID int64  `json:"department_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
}

type UpdateSubDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DepartmentView bundles a department with its sub-departments for listing.
type DepartmentView struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	SubDepartments []SubRef    `json:"sub_departments"`
	Members        []MemberRef `json:"members,omitempty"`
}

type SubRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MemberRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
