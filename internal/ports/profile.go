package ports

import "context"

// AccountPort updates the public account fields of a user.
type AccountPort interface {
	// UpdateProfile sets the username and display name shown at the table.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}

// PlayerProfile is the per-user record created on first login.
type PlayerProfile struct {
	FavoriteCharacter int    `json:"favorite_character"`
	CreatedAt         string `json:"created_at"`
}

// ProfilePort stores the player profile at most once per user.
type ProfilePort interface {
	// CreateProfileOnce writes profile unless one exists. created=false means
	// the user already had a profile.
	CreateProfileOnce(ctx context.Context, userID string, profile PlayerProfile) (created bool, err error)
}
