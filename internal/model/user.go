package model

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is owned by the registration flow; this service only reads it.
type User struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username        string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	Name            string    `gorm:"column:name;type:varchar(100);not null"`
	Role            Role      `gorm:"column:role;type:varchar(10);not null"`
	MembershipLevel *string   `gorm:"column:membership_level;type:varchar(20)"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
