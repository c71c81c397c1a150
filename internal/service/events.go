package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/stats"
	"github.com/mmynk/lostfound/internal/storage"
)

// Publisher receives row changes after they are committed.
type Publisher interface {
	Publish(changes ...realtime.Change)
}

// NopPublisher drops every change.
type NopPublisher struct{}

func (NopPublisher) Publish(...realtime.Change) {}

// events bundles the side effects shared by services: change publishing,
// notifications and badge awards. Failures are logged, never returned; the
// primary write has already succeeded.
type events struct {
	store     storage.Store
	publisher Publisher
	logger    *slog.Logger
}

func newEvents(store storage.Store, publisher Publisher, logger *slog.Logger) *events {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &events{store: store, publisher: publisher, logger: logger}
}

func (e *events) publish(changes ...realtime.Change) {
	e.publisher.Publish(changes...)
}

func itemChange(op realtime.Op, it *models.Item) realtime.Change {
	return realtime.Change{
		Key:      realtime.ItemsKey(it.TenantID),
		Table:    realtime.TableItems,
		Op:       op,
		RowID:    it.ID,
		TenantID: it.TenantID,
	}
}

func claimChange(op realtime.Op, c *models.Claim) realtime.Change {
	return realtime.Change{
		Key:      realtime.ClaimsKey(c.ItemID),
		Table:    realtime.TableClaims,
		Op:       op,
		RowID:    c.ID,
		TenantID: c.TenantID,
	}
}

func profileChange(op realtime.Op, p *models.Profile) realtime.Change {
	return realtime.Change{
		Key:      realtime.ProfileKey(p.ID),
		Table:    realtime.TableProfiles,
		Op:       op,
		RowID:    p.ID,
		TenantID: p.TenantID,
	}
}

// notify stores a notification for userID and tells their inbox.
func (e *events) notify(ctx context.Context, userID string, typ models.NotificationType, title, body string, data map[string]string) {
	n := &models.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	if err := e.store.CreateNotification(ctx, n); err != nil {
		e.logger.Error("Failed to create notification", "user_id", userID, "type", typ, "error", err)
		return
	}
	e.publish(realtime.Change{
		Key:   realtime.NotificationsKey(userID),
		Table: realtime.TableNotifications,
		Op:    realtime.OpInsert,
		RowID: n.ID,
	})
}

// awardBadges evaluates the profile's activity and awards any badge not yet
// held, notifying the profile of each new one.
func (e *events) awardBadges(ctx context.Context, profileID string) {
	reported, err := e.store.ListItems(ctx, models.ItemFilter{OwnerID: profileID, Limit: 1})
	if err != nil {
		e.logger.Error("Failed to count reports", "profile_id", profileID, "error", err)
		return
	}
	returned, err := e.store.CountReturned(ctx, profileID)
	if err != nil {
		e.logger.Error("Failed to count returns", "profile_id", profileID, "error", err)
		return
	}
	thanks, err := e.store.CountThankYouNotes(ctx, profileID)
	if err != nil {
		e.logger.Error("Failed to count thank-you notes", "profile_id", profileID, "error", err)
		return
	}

	activity := stats.Activity{
		Reported:       int64(len(reported)),
		Returned:       returned,
		ThanksReceived: thanks,
	}
	names := make(map[string]string)
	for _, b := range stats.Catalogue() {
		names[b.Code] = b.Name
	}

	for _, code := range stats.EvaluateBadges(activity) {
		awarded, err := e.store.AwardBadge(ctx, profileID, code)
		if err != nil {
			e.logger.Error("Failed to award badge", "profile_id", profileID, "badge", code, "error", err)
			continue
		}
		if !awarded {
			continue
		}
		e.logger.Info("Badge awarded", "profile_id", profileID, "badge", code)
		e.notify(ctx, profileID, models.NotifyBadgeAwarded,
			"New badge: "+names[code], "You earned the "+names[code]+" badge.",
			map[string]string{"badge": code})
		e.publish(realtime.Change{
			Key:   realtime.ProfileKey(profileID),
			Table: realtime.TableBadges,
			Op:    realtime.OpInsert,
			RowID: code,
		})
	}
}
