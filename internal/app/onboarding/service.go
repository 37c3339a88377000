package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fnmonopoly/internal/domain"
	"fnmonopoly/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the display name update failed but onboarding continued.
	ProfileUpdateErr error
	// ProfileCreated is false when the user already had a stored profile.
	ProfileCreated bool
	DisplayName    string
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	profiles ports.ProfilePort
	rng      *rand.Rand
	now      func() time.Time
}

// NewService constructs an onboarding service with required ports.
// accounts/profiles must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, profiles ports.ProfilePort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		profiles: profiles,
		rng:      rng,
		now:      time.Now,
	}
}

// OnboardNewUser names a freshly created account and stores its player profile.
// A failed name update is reported in Result; a failed profile write is an error.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.profiles == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{DisplayName: s.generateFriendlyName()}
	if err := s.accounts.UpdateProfile(ctx, userID, result.DisplayName, result.DisplayName); err != nil {
		result.ProfileUpdateErr = err
	}

	profile := ports.PlayerProfile{
		FavoriteCharacter: s.rng.Intn(int(domain.CharacterTravisScott) + 1),
		CreatedAt:         s.now().UTC().Format(time.RFC3339),
	}
	created, err := s.profiles.CreateProfileOnce(ctx, userID, profile)
	if err != nil {
		return result, fmt.Errorf("failed to create player profile: %w", err)
	}
	result.ProfileCreated = created

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Cozy", "Sweaty", "Default", "Bouncy", "Sneaky", "Legendary", "Rare", "Epic", "Salty", "Tilted"}
	nouns := []string{"Llama", "Jonesy", "Peely", "Bush", "Sniper", "Chest", "Campfire", "Glider", "Pickaxe", "Bus"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
