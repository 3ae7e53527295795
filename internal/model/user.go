package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first login; Email is the natural key for login lookup.
type User struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Picture  string    `json:"picture"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Admin    bool      `gorm:"not null;default:false" json:"admin"`
	Banned   bool      `gorm:"not null;default:false" json:"banned"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Author is the public projection of a User. It never carries email or banned.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Picture  string    `json:"picture"`
	Admin    bool      `json:"admin"`
	JoinedAt time.Time `json:"joinedAt"`
}

// AuthorOf returns the public projection of u, or nil when u is nil.
func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	return &Author{
		ID:       u.ID,
		Name:     u.Name,
		Picture:  u.Picture,
		Admin:    u.Admin,
		JoinedAt: u.JoinedAt,
	}
}
