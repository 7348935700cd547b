package service

import (
	"sort"
	"strconv"
	"time"

	"sukoon/model"
)

type AchievementService struct {
}

// AchievementView is one catalog row with the caller's earned state.
type AchievementView struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

func (s *AchievementService) ListForUser(userId string) ([]AchievementView, error) {
	catalog, err := model.GetAchievementList()
	if err != nil {
		return nil, err
	}
	earned, err := model.GetUserAchievements(userId)
	if err != nil {
		return nil, err
	}

	earnedByID := make(map[uint]model.UserAchievement, len(earned))
	for _, ua := range earned {
		earnedByID[ua.AchievementID] = ua
	}

	views := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		view := AchievementView{
			Code:        a.Code,
			Title:       a.Title,
			Description: a.Description,
		}
		if ua, ok := earnedByID[a.ID]; ok {
			view.Earned = true
			t := ua.EarnedAt
			view.EarnedAt = &t
		}
		views = append(views, view)
	}
	return views, nil
}

// EvaluateMoodStreaks awards the check-in achievements the user currently
// qualifies for. Awards are idempotent, so re-evaluating is always safe.
func (s *AchievementService) EvaluateMoodStreaks(userId string) error {
	since := time.Now().AddDate(0, 0, -8)
	entries, err := model.GetMoodEntriesSince(userId, since)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if err := s.award(userId, model.AchievementFirstMood); err != nil {
		return err
	}

	days := make([]time.Time, len(entries))
	for i, e := range entries {
		days[i] = e.CreatedAt
	}
	streak := ConsecutiveDays(days, time.Now())

	if streak >= 3 {
		if err := s.award(userId, model.AchievementStreak3); err != nil {
			return err
		}
	}
	if streak >= 7 {
		if err := s.award(userId, model.AchievementStreak7); err != nil {
			return err
		}
	}
	return nil
}

// RecordFirstChat awards the first-conversation achievement.
func (s *AchievementService) RecordFirstChat(userId string) error {
	return s.award(userId, model.AchievementFirstChat)
}

func (s *AchievementService) award(userId, code string) error {
	achievement, err := model.GetAchievementByCode(code)
	if err != nil {
		return err
	}
	return model.AwardAchievement(userId, achievement.ID)
}

// SweepAll re-evaluates streaks for every user. Runs from the nightly cron
// so awards are not missed when a user logs moods without tripping the
// on-write evaluation.
func (s *AchievementService) SweepAll() {
	users, err := model.ListUsers()
	if err != nil {
		logger.Warnf("[achievement sweep] failed to list users: %s", err)
		return
	}
	for _, user := range users {
		userId := strconv.FormatUint(uint64(user.ID), 10)
		if err := s.EvaluateMoodStreaks(userId); err != nil {
			logger.Warnf("[achievement sweep] evaluation failed for user %s: %s", userId, err)
		}
	}
}

// ConsecutiveDays counts the run of distinct calendar days ending at the most
// recent entry, provided that entry is today or yesterday relative to now.
func ConsecutiveDays(entries []time.Time, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		day := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, e.Location())
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if days[0].Before(today.AddDate(0, 0, -1)) {
		// streak already broken
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}
	return streak
}
