package model

// TargetKind selects how an intent's recipient set is resolved.
type TargetKind string

const (
	TargetKindUser             TargetKind = "user"
	TargetKindProjectMembers   TargetKind = "project-members-except-actor"
	TargetKindPostParticipants TargetKind = "post-participants"
)

// Target names the recipient set of an intent. Exactly one of the id fields
// is meaningful depending on Kind.
type Target struct {
	Kind      TargetKind `json:"kind" binding:"required"`
	UserID    int64      `json:"user_id,omitempty"`
	ProjectID int64      `json:"project_id,omitempty"`
	PostID    int64      `json:"post_id,omitempty"`
}

// TargetUser addresses a single user.
func TargetUser(userID int64) Target {
	return Target{Kind: TargetKindUser, UserID: userID}
}

// TargetProjectMembers addresses every current member of a project except
// the acting user. Membership is read at dispatch time.
func TargetProjectMembers(projectID int64) Target {
	return Target{Kind: TargetKindProjectMembers, ProjectID: projectID}
}

// TargetPostParticipants addresses everyone who has participated in a post
// thread, except the acting user.
func TargetPostParticipants(postID int64) Target {
	return Target{Kind: TargetKindPostParticipants, PostID: postID}
}

// Intent describes something that happened that some user(s) should be told
// about, decoupled from delivery. Domain services emit intents and never
// learn whether notification creation succeeded.
type Intent struct {
	EventType NotificationType `json:"event_type" binding:"required"`
	ActorID   int64            `json:"actor_id" binding:"required"`
	Target    Target           `json:"target" binding:"required"`
	Title     string           `json:"title" binding:"required"`
	Message   string           `json:"message" binding:"required"`
	Data      NotificationData `json:"data"`
}
