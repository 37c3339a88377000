package app

import "fnmonopoly/internal/domain"

// Registry is the authoritative mapping of connection identity to player
// attributes. It is owned by the match and handed to the Session by pointer.
type Registry struct {
	players map[string]*domain.Player
	seats   []string // seat index -> user ID
	locked  bool     // seat order is fixed once the game starts
	seq     uint64   // last snapshot sequence handed out
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*domain.Player)}
}

// Register seats a newly connected player in connection order. Registering an
// already seated user returns the existing seat.
func (r *Registry) Register(userID, name string) (int, error) {
	if p, ok := r.players[userID]; ok {
		return p.Seat, nil
	}
	if r.locked {
		return -1, ErrNotInLobby
	}
	if len(r.seats) >= domain.MaxPlayers {
		return -1, ErrRegistryFull
	}

	seat := len(r.seats)
	r.players[userID] = domain.NewPlayer(userID, name, seat)
	r.seats = append(r.seats, userID)
	return seat, nil
}

// Remove drops a player before the game starts and closes the gap in seat order.
func (r *Registry) Remove(userID string) error {
	if r.locked {
		return ErrNotInLobby
	}
	p, ok := r.players[userID]
	if !ok {
		return ErrUnknownPlayer
	}
	delete(r.players, userID)
	r.seats = append(r.seats[:p.Seat], r.seats[p.Seat+1:]...)
	for i, id := range r.seats {
		r.players[id].Seat = i
	}
	return nil
}

// MarkLoaded records that the player finished loading the board with the
// chosen character and reports whether every seated player has loaded.
func (r *Registry) MarkLoaded(userID string, character domain.Character) (bool, error) {
	p, ok := r.players[userID]
	if !ok {
		return false, ErrUnknownPlayer
	}
	if !character.Valid() {
		return false, ErrInvalidChoice
	}
	p.Character = character
	p.Loaded = true
	return r.AllLoaded(), nil
}

// AllLoaded reports whether every seated player has loaded.
func (r *Registry) AllLoaded() bool {
	if len(r.seats) == 0 {
		return false
	}
	for _, id := range r.seats {
		if !r.players[id].Loaded {
			return false
		}
	}
	return true
}

// Get returns the player for a connection.
func (r *Registry) Get(userID string) (*domain.Player, bool) {
	p, ok := r.players[userID]
	return p, ok
}

// BySeat returns the player sitting at seat.
func (r *Registry) BySeat(seat int) (*domain.Player, bool) {
	if seat < 0 || seat >= len(r.seats) {
		return nil, false
	}
	return r.players[r.seats[seat]], true
}

// SeatOf returns the seat of a connection, or -1.
func (r *Registry) SeatOf(userID string) int {
	if p, ok := r.players[userID]; ok {
		return p.Seat
	}
	return -1
}

// Count returns the number of seated players.
func (r *Registry) Count() int {
	return len(r.seats)
}

// Players returns the seated players in seat order.
func (r *Registry) Players() []*domain.Player {
	out := make([]*domain.Player, 0, len(r.seats))
	for _, id := range r.seats {
		out = append(out, r.players[id])
	}
	return out
}

// UserIDs returns the seated user IDs in seat order.
func (r *Registry) UserIDs() []string {
	return append([]string(nil), r.seats...)
}

// MutateHealth applies delta to a player's health clamped to the legal range.
// Healing a player already at full health is rejected and reports changed=false.
func (r *Registry) MutateHealth(userID string, delta int) (int, bool) {
	p, ok := r.players[userID]
	if !ok {
		return 0, false
	}
	if p.Health == domain.MaxHealth && delta > 0 {
		return p.Health, false
	}
	p.Health = domain.ClampHealth(p.Health + delta)
	return p.Health, true
}

// IncreaseDamage applies a sniper pickup to a player's damage modifier.
func (r *Registry) IncreaseDamage(userID string, bonus int) int {
	p, ok := r.players[userID]
	if !ok {
		return 0
	}
	p.Damage = domain.RaiseDamage(p.Damage, bonus)
	return p.Damage
}

func (r *Registry) lock() {
	r.locked = true
}
