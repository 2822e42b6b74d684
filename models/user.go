package models

import (
	"context"
	"time"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleDealer = "dealer"
)

type User struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:50;not null" json:"username" binding:"required"`
	Role        string    `gorm:"size:20;not null;default:dealer" json:"role"`
	CompanyName string    `gorm:"size:100" json:"company_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername is the whole of authentication: the original system
// trusts the dealer network and identifies callers by username only.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	return &user, nil
}

func (s *UserStore) FindById(ctx context.Context, id int) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *User) error {
	return utils.TranslateStoreError(s.db.WithContext(ctx).Create(user).Error)
}
