package models

import (
	"time"
)

type User struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string    `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Username    string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName   string    `json:"first_name" gorm:"type:varchar(150);not null"`
	LastName    string    `json:"last_name" gorm:"type:varchar(150);not null"`
	Password    string    `json:"-" gorm:"type:varchar(128);not null"`
	Role        string    `json:"role" gorm:"type:varchar(5);not null;default:user"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null;default:false"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
}

// Follow: UserID follows AuthorID.
type Follow struct {
	UserID   int64     `json:"user_id" gorm:"primaryKey"`
	User     User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	AuthorID int64     `json:"author_id" gorm:"primaryKey;index;check:no_self_follow,user_id <> author_id"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	CDate    time.Time `json:"cdate" gorm:"autoCreateTime"`
}
