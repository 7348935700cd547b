package service

import (
	"os"
	"strconv"
	"sync"
	"time"

	"sukoon/model"
)

// Limits holds the feature gates. Both default to off, which is the current
// production behavior: every user is treated as premium and usage is
// unlimited. Keeping them as configuration makes that an explicit, removable
// branch instead of hardcoded always-true checks.
type Limits struct {
	EnforceLimits bool
	PremiumGating bool
}

func LoadLimits() Limits {
	enforce, _ := strconv.ParseBool(os.Getenv("ENFORCE_LIMITS"))
	gating, _ := strconv.ParseBool(os.Getenv("PREMIUM_GATING"))
	return Limits{EnforceLimits: enforce, PremiumGating: gating}
}

const anonymousDailyCap = 20

// SubscriptionService answers premium/limit questions for the controllers.
type SubscriptionService struct {
	limits Limits

	mu       sync.Mutex
	capDate  string
	capCount map[string]int
}

func NewSubscriptionService(limits Limits) *SubscriptionService {
	return &SubscriptionService{
		limits:   limits,
		capCount: make(map[string]int),
	}
}

type SubscriptionStatus struct {
	Premium bool   `json:"premium"`
	Plan    string `json:"plan"`
}

// Status reports the user's effective subscription. With gating off everyone
// is premium regardless of the stored plan.
func (s *SubscriptionService) Status(userID uint) (*SubscriptionStatus, error) {
	user, err := model.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	premium := true
	if s.limits.PremiumGating {
		premium = user.Plan == model.PlanPremium
	}
	return &SubscriptionStatus{Premium: premium, Plan: string(user.Plan)}, nil
}

// CanAccessResource gates premium library items when gating is on.
func (s *SubscriptionService) CanAccessResource(userID uint, resource *model.Resource) bool {
	if !s.limits.PremiumGating || !resource.Premium {
		return true
	}
	status, err := s.Status(userID)
	if err != nil {
		return false
	}
	return status.Premium
}

// AllowAnonymousChat applies the per-client daily cap for anonymous chat.
// With limits off it always allows. The counter is in-process and resets on
// date change, which is all the low-stakes chat surface needs.
func (s *SubscriptionService) AllowAnonymousChat(clientKey string) bool {
	if !s.limits.EnforceLimits {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	if s.capDate != today {
		s.capDate = today
		s.capCount = make(map[string]int)
	}
	if s.capCount[clientKey] >= anonymousDailyCap {
		return false
	}
	s.capCount[clientKey]++
	return true
}
