package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// Emitter is the narrow interface through which domain actions announce
// events. Callers never learn whether notification creation succeeded;
// delivery failures must not fail the triggering domain action.
type Emitter interface {
	Emit(ctx context.Context, intent model.Intent)
}

// UnreadInvalidator drops a user's cached unread count after fan-out.
type UnreadInvalidator interface {
	InvalidateUnread(ctx context.Context, userID int64)
}

// Dispatcher resolves an intent's recipients and writes one notification
// record per recipient.
type Dispatcher struct {
	notifications NotificationStore
	memberships   MembershipStore
	invalidator   UnreadInvalidator
	logger        *zap.Logger
}

// NewDispatcher creates a new dispatcher. The invalidator may be nil.
func NewDispatcher(notifications NotificationStore, memberships MembershipStore, invalidator UnreadInvalidator, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		memberships:   memberships,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Emit implements Emitter for in-process producers. It is synchronous from
// the caller's perspective but never reports failure.
func (d *Dispatcher) Emit(ctx context.Context, intent model.Intent) {
	d.Dispatch(ctx, intent)
}

// Dispatch resolves the target to concrete recipients and persists one
// unread notification per recipient. Each domain event produces exactly one
// record per recipient; there is no duplicate-intent suppression. A failure
// for one recipient is logged and does not stop delivery to the others.
// Returns the number of records created, for logging only.
func (d *Dispatcher) Dispatch(ctx context.Context, intent model.Intent) int {
	recipients, err := d.resolveRecipients(ctx, intent)
	if err != nil {
		d.logger.Error("Failed to resolve intent recipients",
			zap.String("event_type", string(intent.EventType)),
			zap.Int64("actor_id", intent.ActorID),
			zap.Error(err))
		return 0
	}

	delivered := 0
	for _, recipientID := range recipients {
		_, err := d.notifications.Create(ctx, recipientID, intent.EventType, intent.Title, intent.Message, intent.Data)
		if err != nil {
			d.logger.Error("Failed to deliver notification",
				zap.Int64("recipient_id", recipientID),
				zap.String("event_type", string(intent.EventType)),
				zap.Error(err))
			continue
		}
		if d.invalidator != nil {
			d.invalidator.InvalidateUnread(ctx, recipientID)
		}
		delivered++
	}

	d.logger.Debug("Dispatched intent",
		zap.String("event_type", string(intent.EventType)),
		zap.Int("recipients", len(recipients)),
		zap.Int("delivered", delivered))

	return delivered
}

// resolveRecipients expands the target into user ids, reading membership at
// dispatch time and excluding the actor from broadcast-style targets.
func (d *Dispatcher) resolveRecipients(ctx context.Context, intent model.Intent) ([]int64, error) {
	switch intent.Target.Kind {
	case model.TargetKindUser:
		return []int64{intent.Target.UserID}, nil

	case model.TargetKindProjectMembers:
		members, err := d.memberships.ProjectMemberIDs(ctx, intent.Target.ProjectID)
		if err != nil {
			return nil, err
		}
		return excludeActor(members, intent.ActorID), nil

	case model.TargetKindPostParticipants:
		participants, err := d.memberships.PostParticipantIDs(ctx, intent.Target.PostID)
		if err != nil {
			return nil, err
		}
		return excludeActor(participants, intent.ActorID), nil

	default:
		d.logger.Warn("Unknown intent target kind", zap.String("kind", string(intent.Target.Kind)))
		return nil, nil
	}
}

func excludeActor(ids []int64, actorID int64) []int64 {
	out := ids[:0:0]
	for _, id := range ids {
		if id != actorID {
			out = append(out, id)
		}
	}
	return out
}
