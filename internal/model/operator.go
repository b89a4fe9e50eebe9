package model

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Operator is a back-office user. PasswordHash holds a hex SHA-256 digest;
// plaintext passwords are never stored.
type Operator struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

func (Operator) TableName() string { return "operators" }

// Session is an authenticated operator session. The token is the redis key
// under which the session lives until its TTL expires.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
