package model

const RoleAdmin = "admin"

// User is the record returned by the backend for the authenticated identity.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
