package model

// UserSnapshot is the read-time display projection of a user used to hydrate
// conversation partners and profile lookups. It is never stored alongside
// messages or notifications.
type UserSnapshot struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`
}
