package account

import "time"

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	HireDate  time.Time
}
