package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"chillista/internal/domain"
	"chillista/internal/persist"
	"chillista/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// DisplayName is the barista name given to the account and its cart.
	DisplayName string
	// SaveCreated is false when the account already had a save.
	SaveCreated bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	saves    ports.SaveStore
	tuning   domain.Tuning
	rng      *rand.Rand
	now      func() time.Time
}

// NewService constructs an onboarding service with required ports.
// accounts/saves must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, saves ports.SaveStore, tuning domain.Tuning, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		saves:    saves,
		tuning:   tuning,
		rng:      rng,
		now:      time.Now,
	}
}

// OnboardNewUser names a newly created account and opens its first cart.
// Returns a Result with any non-fatal issues and an error if the initial save cannot be written.
// Side effects: updates the account profile and creates the save once.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.saves == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{DisplayName: s.generateBaristaName()}
	if err := s.accounts.UpdateProfile(ctx, userID, result.DisplayName, result.DisplayName); err != nil {
		// The cart matters more than the profile name.
		result.ProfileUpdateErr = err
	}

	st := domain.NewState(s.tuning)
	st.PlayerName = result.DisplayName
	blob, err := persist.Encode(st, s.now())
	if err != nil {
		return result, fmt.Errorf("failed to encode initial save: %w", err)
	}

	created, err := s.saves.CreateSaveOnce(ctx, userID, blob)
	if err != nil {
		return result, fmt.Errorf("failed to create initial save: %w", err)
	}
	result.SaveCreated = created
	return result, nil
}

func (s *Service) generateBaristaName() string {
	adjectives := []string{"Cozy", "Sleepy", "Mellow", "Sunny", "Frothy", "Toasty", "Breezy", "Jolly", "Dreamy", "Zesty"}
	nouns := []string{"Bean", "Latte", "Mocha", "Kettle", "Biscuit", "Crema", "Muffin", "Sprout", "Scone", "Whisk"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
