package service

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"sukoon/model"

	"github.com/jordan-wright/email"
)

// WeeklyMoodReport mails each user a short summary of their last seven days
// of check-ins. Send failures are logged per user and never abort the run.
func WeeklyMoodReport() {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	if host == "" || from == "" {
		logger.Warnf("[weekly report] SMTP not configured, skipping")
		return
	}

	users, err := model.ListUsers()
	if err != nil {
		logger.Warnf("[weekly report] failed to list users: %s", err)
		return
	}

	since := time.Now().AddDate(0, 0, -7)
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		userId := strconv.FormatUint(uint64(user.ID), 10)
		entries, err := model.GetMoodEntriesSince(userId, since)
		if err != nil {
			logger.Warnf("[weekly report] failed to load moods for user %s: %s", userId, err)
			continue
		}
		if len(entries) == 0 {
			continue
		}

		e := email.NewEmail()
		e.From = from
		e.To = []string{user.Email}
		e.Subject = "Your week with Sukoon"
		e.Text = []byte(composeMoodReport(user.Nickname, entries))

		addr := fmt.Sprintf("%s:%s", host, port)
		if err := e.Send(addr, smtp.PlainAuth("", from, password, host)); err != nil {
			logger.Warnf("[weekly report] failed to send to user %s: %s", userId, err)
			continue
		}
		logger.Infof("[weekly report] sent to user %s", userId)
	}
}

func composeMoodReport(nickname string, entries []model.MoodEntry) string {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Mood]++
	}

	name := nickname
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "You checked in %d time(s) this week. Here is how it looked:\n\n", len(entries))
	for _, mood := range []string{"great", "good", "okay", "low", "struggling"} {
		if counts[mood] > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", mood, counts[mood])
		}
	}
	b.WriteString("\nEvery check-in counts. Be kind to yourself this week.\n\nThe Sukoon team\n")
	return b.String()
}
