package models

import (
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User is a local mirror of an identity managed by an external provider.
// Records are created lazily on first order submission; IdentityToken is
// the stable external identifier carried in JWT claims.
type User struct {
	gorm.Model
	IdentityToken string `json:"identity_token" gorm:"uniqueIndex;not null"`
	Name          string `json:"name" gorm:"default:''"`
	Email         string `json:"email" gorm:"default:''"`
	Role          string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	IsDeleted     bool   `gorm:"default:false"`
}
