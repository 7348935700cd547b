package model

import (
	"fmt"
	"time"

	"sukoon/platform"
)

// Mood vocabulary the tracker accepts.
var ValidMoods = map[string]bool{
	"great":      true,
	"good":       true,
	"okay":       true,
	"low":        true,
	"struggling": true,
}

type MoodEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    string    `json:"user_id" gorm:"index:idx_mood_user_created"`
	Mood      string    `gorm:"type:varchar(32)" json:"mood"`
	Note      string    `gorm:"type:text" json:"note"`
	Language  string    `gorm:"type:varchar(8);default:'en'" json:"language"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_mood_user_created"`
}

func CreateMoodEntry(entry *MoodEntry) error {
	db := platform.DB
	if err := db.Create(entry).Error; err != nil {
		return fmt.Errorf("%w: create mood entry: %v", ErrPersistence, err)
	}
	return nil
}

func GetMoodEntries(userId string, limit int) ([]MoodEntry, error) {
	db := platform.DB
	var entries []MoodEntry
	err := db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list mood entries: %v", ErrPersistence, err)
	}
	return entries, nil
}

func GetMoodEntriesSince(userId string, since time.Time) ([]MoodEntry, error) {
	db := platform.DB
	var entries []MoodEntry
	err := db.Where("user_id = ? AND created_at >= ?", userId, since).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list mood entries: %v", ErrPersistence, err)
	}
	return entries, nil
}

// DeleteMoodEntry removes one entry, scoped to the owner so a user can
// never delete another user's row.
func DeleteMoodEntry(userId string, id uint) error {
	db := platform.DB
	result := db.Where("id = ? AND user_id = ?", id, userId).Delete(&MoodEntry{})
	if result.Error != nil {
		return fmt.Errorf("%w: delete mood entry: %v", ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("mood entry not found")
	}
	return nil
}
