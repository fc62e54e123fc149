package entity

type User struct {
	Base
	Username     string `gorm:"unique"`
	PasswordHash string
	IsAdmin      bool
}
