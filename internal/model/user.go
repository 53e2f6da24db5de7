package model

// Role is the access level of a dashboard user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
	RoleEngineer  Role = "engineer"
)

// User is an account that can sign in to the dashboard. Password is kept in
// plaintext in the users blob.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
