package domain

// Authorities granted to users.
const (
	RoleAdmin  = "ROLE_ADMIN"
	RoleClient = "ROLE_CLIENT"
)

// Role is an authorization role.
type Role struct {
	ID        int64  `json:"id"`
	Authority string `json:"authority"`
}

// User is a registered account. Password holds a bcrypt hash.
type User struct {
	ID       int64
	Name     string
	Username string
	Password string
	Roles    []Role
}

// HasRole reports whether the user was granted the authority.
func (u User) HasRole(authority string) bool {
	return hasAuthority(u.Roles, authority)
}

// UserDetailsProjection is one row of the user/role join used for
// authentication: the user's credentials plus a single granted role.
type UserDetailsProjection struct {
	Username  string
	Password  string
	RoleID    int64
	Authority string
}

// UserDetails is the authentication view of a user.
type UserDetails struct {
	Username    string
	Password    string
	Authorities []Role
}

// HasAuthority reports whether the details grant the authority.
func (d UserDetails) HasAuthority(authority string) bool {
	return hasAuthority(d.Authorities, authority)
}

// AuthorityNames returns the granted authorities as plain strings.
func (d UserDetails) AuthorityNames() []string {
	names := make([]string, 0, len(d.Authorities))
	for _, r := range d.Authorities {
		names = append(names, r.Authority)
	}
	return names
}

func hasAuthority(roles []Role, authority string) bool {
	for _, r := range roles {
		if r.Authority == authority {
			return true
		}
	}
	return false
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// NewUserDTO builds the public view of a user.
func NewUserDTO(u User) UserDTO {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Authority)
	}
	return UserDTO{ID: u.ID, Name: u.Name, Username: u.Username, Roles: roles}
}
