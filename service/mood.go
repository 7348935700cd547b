package service

import (
	"errors"

	"sukoon/model"
)

type MoodService struct {
	achievements *AchievementService
}

func NewMoodService(achievements *AchievementService) *MoodService {
	return &MoodService{achievements: achievements}
}

type MoodInput struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

func (s *MoodService) Record(userId string, input *MoodInput) (*model.MoodEntry, error) {
	if !model.ValidMoods[input.Mood] {
		return nil, errors.New("unknown mood")
	}

	entry := &model.MoodEntry{
		UserId:   userId,
		Mood:     input.Mood,
		Note:     input.Note,
		Language: DetectLanguage(input.Note),
	}
	if err := model.CreateMoodEntry(entry); err != nil {
		return nil, err
	}

	// Streak evaluation piggybacks on the write; a failed evaluation only
	// delays the award until the nightly sweep.
	if s.achievements != nil {
		if err := s.achievements.EvaluateMoodStreaks(userId); err != nil {
			logger.Warnf("[%s] achievement evaluation failed: %s", userId, err)
		}
	}
	return entry, nil
}

func (s *MoodService) List(userId string, limit int) ([]model.MoodEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return model.GetMoodEntries(userId, limit)
}

func (s *MoodService) Delete(userId string, id uint) error {
	return model.DeleteMoodEntry(userId, id)
}
