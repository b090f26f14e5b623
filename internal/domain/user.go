package domain

import "time"

type UserRole string

const (
	UserRoleRenter UserRole = "RENTER"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID                 int32    `json:"id"`
	Email              string   `json:"email"`
	PasswordHash       string   `json:"-"`
	Name               string   `json:"name"`
	PhoneNumber        string   `json:"phone_number"`
	Role               UserRole `json:"role"`
	LifetimeSpendCents int32    `json:"lifetime_spend_cents"`
	CreatedOn          time.Time `json:"created_on"`
	UpdatedOn          time.Time `json:"updated_on"`
}
