package users

import "time"

type User struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
