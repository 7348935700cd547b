package model

import (
	"errors"
	"fmt"
	"time"

	"sukoon/platform"

	"gorm.io/gorm"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// User holds the account row plus the profile fields the app exposes.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email       string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	Nickname    string    `json:"nickname"`
	Phone       string    `json:"phone"`
	Avatar      string    `json:"avatar"`
	DisplayLang string    `gorm:"type:varchar(8);default:'en'" json:"display_lang"`
	Plan        Plan      `gorm:"type:varchar(32);default:'free'" json:"plan"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.Plan == "" {
		u.Plan = PlanFree
	}
	if u.DisplayLang == "" {
		u.DisplayLang = "en"
	}
	return nil
}

func CreateUser(user *User) error {
	db := platform.DB
	return db.Create(user).Error
}

func UserExists(username, email string) bool {
	db := platform.DB
	var count int64
	db.Model(&User{}).Where("username = ? OR email = ?", username, email).Count(&count)
	return count > 0
}

func GetUserByUsername(username string) (*User, error) {
	var user User
	db := platform.DB
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func GetUserByID(id uint) (*User, error) {
	var user User
	db := platform.DB
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func UpdateUserProfile(id uint, fields map[string]interface{}) error {
	db := platform.DB
	if err := db.Model(&User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

func ListUsers() ([]User, error) {
	db := platform.DB
	var users []User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
