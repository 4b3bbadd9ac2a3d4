package model

type UserStatus string

const (
	UserStatusEnabled  UserStatus = "ENABLED"
	UserStatusDisabled UserStatus = "DISABLED"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

type User struct {
	UUIDBase
	Name     string     `gorm:"size:100;not null" json:"name"`
	Email    string     `gorm:"size:100;unique;not null" json:"email"`
	Image    string     `gorm:"size:255" json:"image"`
	Password string     `gorm:"size:100" json:"-"`
	Status   UserStatus `gorm:"size:20;default:'ENABLED'" json:"status"`
	Role     UserRole   `gorm:"size:20;default:'USER'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
