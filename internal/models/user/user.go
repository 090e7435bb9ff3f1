package user

type Role string

const RoleAdmin Role = "admin"
const RoleUser Role = "user"

type User struct {
	Name     string
	Password string
	Role     Role
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
