package model

import (
	"fmt"
	"time"

	"sukoon/platform"

	"gorm.io/gorm"
)

// Achievement codes awarded by the service.
const (
	AchievementFirstMood = "first_mood"
	AchievementStreak3   = "streak_3"
	AchievementStreak7   = "streak_7"
	AchievementFirstChat = "first_chat"
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"type:varchar(64);not null;unique" json:"code"`
	Title       string `gorm:"type:varchar(255)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        string    `gorm:"index;uniqueIndex:ux_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"uniqueIndex:ux_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

var achievementCatalog = []Achievement{
	{Code: AchievementFirstMood, Title: "First Check-in", Description: "Logged your first mood entry."},
	{Code: AchievementStreak3, Title: "Three in a Row", Description: "Checked in three days in a row."},
	{Code: AchievementStreak7, Title: "One Full Week", Description: "Checked in seven days in a row."},
	{Code: AchievementFirstChat, Title: "Opening Up", Description: "Had your first conversation with the assistant."},
}

// SeedAchievements inserts the fixed catalog, skipping codes already present.
func SeedAchievements(db *gorm.DB) error {
	for _, a := range achievementCatalog {
		var count int64
		db.Model(&Achievement{}).Where("code = ?", a.Code).Count(&count)
		if count > 0 {
			continue
		}
		record := a
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to seed achievement %s: %w", a.Code, err)
		}
	}
	return nil
}

func GetAchievementByCode(code string) (*Achievement, error) {
	var achievement Achievement
	db := platform.DB
	if err := db.Where("code = ?", code).First(&achievement).Error; err != nil {
		return nil, fmt.Errorf("achievement %s not found: %w", code, err)
	}
	return &achievement, nil
}

func GetAchievementList() ([]Achievement, error) {
	db := platform.DB
	var achievements []Achievement
	if err := db.Order("id ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func HasAchievement(userId string, achievementID uint) bool {
	db := platform.DB
	var count int64
	db.Model(&UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userId, achievementID).
		Count(&count)
	return count > 0
}

// AwardAchievement records the achievement for the user. Awarding twice is
// a no-op thanks to the unique index.
func AwardAchievement(userId string, achievementID uint) error {
	db := platform.DB
	if HasAchievement(userId, achievementID) {
		return nil
	}
	record := &UserAchievement{UserId: userId, AchievementID: achievementID}
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to award achievement: %w", err)
	}
	return nil
}

func GetUserAchievements(userId string) ([]UserAchievement, error) {
	db := platform.DB
	var earned []UserAchievement
	if err := db.Where("user_id = ?", userId).Find(&earned).Error; err != nil {
		return nil, err
	}
	return earned, nil
}
