package service

import (
	"context"
	"fmt"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// ResolveNavigation computes where opening a notification should take the
// user. Rules are tried in order and the first match wins; this ordering
// resolves payloads that carry more than one id. Unrecognized types with no
// explicit link resolve to no navigation.
func ResolveNavigation(n model.Notification) model.NavigationTarget {
	data := n.Data

	// An explicit link always wins.
	if data.Link != "" {
		return model.NavigationTarget{Path: data.Link, Navigate: true}
	}

	if data.ProjectID != nil && n.Type.Category() == model.CategoryProject {
		return model.NavigationTarget{
			Path:     fmt.Sprintf("/projects/%d", *data.ProjectID),
			Navigate: true,
		}
	}

	if data.ResourceID != nil && n.Type.Category() == model.CategoryResource {
		return model.NavigationTarget{
			Path:     fmt.Sprintf("/resources/%d", *data.ResourceID),
			Navigate: true,
		}
	}

	if n.Type == model.TypeContentReported && data.ContentURL != "" {
		return model.NavigationTarget{Path: data.ContentURL, Navigate: true}
	}

	if data.UserID != nil && (n.Type == model.TypeSkillEndorsement || n.Type == model.TypeFollow) {
		return model.NavigationTarget{
			Path:     fmt.Sprintf("/users/%d", *data.UserID),
			Navigate: true,
		}
	}

	return model.NavigationTarget{}
}

// ReadStateService performs the click-to-navigate transition: mark the
// notification read, then resolve its navigation target. The two are one
// operation from the caller's perspective.
type ReadStateService struct {
	notifications *NotificationService
}

// NewReadStateService creates a new read-state service
func NewReadStateService(notifications *NotificationService) *ReadStateService {
	return &ReadStateService{notifications: notifications}
}

// Open marks the notification read on behalf of its owner and returns the
// updated record with its navigation target. The read transition always
// happens, even when no navigation rule matches. Repeating the call is safe.
func (s *ReadStateService) Open(ctx context.Context, notificationID, userID int64) (model.Notification, model.NavigationTarget, error) {
	n, err := s.notifications.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return model.Notification{}, model.NavigationTarget{}, err
	}

	return n, ResolveNavigation(n), nil
}
