package employee

import "time"

type Profile struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Salary     float64   `json:"salary"`
	HireDate   time.Time `json:"hireDate"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateInput struct {
	AccountID  string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Department string
	Position   string
	Salary     float64
	HireDate   time.Time
}

// UpdateInput carries partial updates; nil fields are left untouched.
type UpdateInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Department *string
	Position   *string
	Salary     *float64
	Active     *bool
}

type ListResult struct {
	Profiles []Profile
	Total    int
}
