package models

import (
	"gorm.io/gorm"
)

type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"not null"`
	User       User   `gorm:"foreignKey:UserID"`
	Role       string
	Permission string `gorm:"type:varchar(255)"` // e.g., "approve-certificates"
	IsDeleted  bool   `gorm:"default:false"`
}
