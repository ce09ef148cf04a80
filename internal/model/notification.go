package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NotificationType identifies what kind of event a notification describes.
type NotificationType string

const (
	TypeProjectInvite       NotificationType = "PROJECT_INVITE"
	TypeJoinRequest         NotificationType = "JOIN_REQUEST"
	TypeJoinRequestResponse NotificationType = "JOIN_REQUEST_RESPONSE"
	TypeSkillEndorsement    NotificationType = "SKILL_ENDORSEMENT"
	TypeBadgeEarned         NotificationType = "BADGE_EARNED"
	TypeComment             NotificationType = "COMMENT"
	TypeReply               NotificationType = "REPLY"
	TypeLike                NotificationType = "LIKE"
	TypeContentReported     NotificationType = "CONTENT_REPORTED"
	TypeFollow              NotificationType = "FOLLOW"
	TypeResourceShared      NotificationType = "RESOURCE_SHARED"
)

// Category groups notification types for navigation resolution. New types
// must be classified here deliberately; anything unlisted is CategoryGeneric.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryProject
	CategoryResource
	CategoryUser
	CategoryModeration
)

var typeCategories = map[NotificationType]Category{
	TypeProjectInvite:       CategoryProject,
	TypeJoinRequest:         CategoryProject,
	TypeJoinRequestResponse: CategoryProject,
	TypeSkillEndorsement:    CategoryUser,
	TypeFollow:              CategoryUser,
	TypeResourceShared:      CategoryResource,
	TypeContentReported:     CategoryModeration,
	TypeBadgeEarned:         CategoryGeneric,
	TypeComment:             CategoryGeneric,
	TypeReply:               CategoryGeneric,
	TypeLike:                CategoryGeneric,
}

// Category returns the navigation category for the type. Unrecognized types
// map to CategoryGeneric so unknown values never navigate anywhere.
func (t NotificationType) Category() Category {
	return typeCategories[t]
}

// NotificationData is the per-type contextual payload attached to a
// notification. The schema varies by type; every field is optional and
// readers must treat absent fields defensively. Unknown JSON keys from
// older or newer producers are dropped on decode.
type NotificationData struct {
	ProjectID  *int64 `json:"projectId,omitempty"`
	ResourceID *int64 `json:"resourceId,omitempty"`
	UserID     *int64 `json:"userId,omitempty"`
	ContentURL string `json:"contentUrl,omitempty"`
	Link       string `json:"link,omitempty"`
}

// Value implements driver.Valuer so the payload persists as a JSON column.
func (d NotificationData) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal notification data: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner for reading the JSON column back.
func (d *NotificationData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = NotificationData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported notification data type %T", src)
	}
}

// Notification is a per-recipient delivery record. Immutable after creation
// except for IsRead, which only ever transitions false -> true.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipient_id" db:"recipient_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Data        NotificationData `json:"data" db:"data_json"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// NotificationListResponse is a paginated notification feed with counters.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	Unread        int            `json:"unread"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
}

// NavigationTarget is the outcome of resolving where a notification should
// take the user when opened. Navigate is false when no rule matched.
type NavigationTarget struct {
	Path     string `json:"path,omitempty"`
	Navigate bool   `json:"navigate"`
}
