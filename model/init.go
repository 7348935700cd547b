package model

import "sukoon/platform"

func InstallDB() {
	db := platform.DB
	if err := db.AutoMigrate(
		&User{},
		&ChatMessage{},
		&MoodEntry{},
		&Resource{},
		&Achievement{},
		&UserAchievement{}); err != nil {
		panic(err)
	}
	if err := SeedAchievements(db); err != nil {
		panic(err)
	}
}
