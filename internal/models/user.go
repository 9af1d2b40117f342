package models

// Role is the permission level stored in users.role.
type Role string

// The stored values match the data already present in the hosted tables.
const (
	RoleAdministrator Role = "Quản trị"
	RoleOperator      Role = "Điều hành"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleOperator
}

// User represents a dashboard account.
// The table holds exactly these four columns.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:255;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // salted hash, see internal/password
	Role     Role   `gorm:"size:50;not null;default:'Điều hành';index"`
}

func (User) TableName() string {
	return "users"
}
