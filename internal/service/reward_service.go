package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/stats"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// SeedBadges writes the badge catalogue to the store.
func SeedBadges(ctx context.Context, store storage.RewardStore) error {
	for _, b := range stats.Catalogue() {
		badge := b
		if err := store.UpsertBadge(ctx, &badge); err != nil {
			return fmt.Errorf("failed to seed badge %s: %w", b.Code, err)
		}
	}
	return nil
}

// RewardService implements the RewardService RPC interface: the dashboard,
// the leaderboard, badges and thank-you notes.
type RewardService struct {
	apiconnect.UnimplementedRewardServiceHandler
	store  storage.Store
	events *events
	logger *slog.Logger
	now    func() time.Time
}

// NewRewardService creates a new RewardService.
func NewRewardService(store storage.Store, publisher Publisher, logger *slog.Logger) *RewardService {
	return &RewardService{
		store:  store,
		events: newEvents(store, publisher, logger),
		logger: logger,
		now:    time.Now,
	}
}

// GetDashboard summarizes the campus and charts recent reports. Admins see
// every item and claim of the campus; users see public items and their own
// claims.
func (s *RewardService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	bucket := stats.Bucket(req.Msg.Bucket)
	if bucket == "" {
		bucket = stats.BucketDay
	}
	days := req.Msg.Days
	if days == 0 {
		days = 30
	}
	var v violations
	v.check("bucket", string(bucket), "oneof=day week")
	v.check("days", days, "gte=1,lte=365")
	if err := v.err(); err != nil {
		return nil, err
	}

	statuses, _ := visibleStatuses(c, nil)
	items, err := s.store.ListItems(ctx, models.ItemFilter{TenantID: c.TenantID, Statuses: statuses})
	if err != nil {
		s.logger.Error("Dashboard items failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}
	var claims []*models.Claim
	if c.isAdmin() {
		claims, err = s.store.ListClaimsByTenant(ctx, c.TenantID)
	} else {
		claims, err = s.store.ListClaimsByClaimant(ctx, c.UserID)
	}
	if err != nil {
		s.logger.Error("Dashboard claims failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}

	itemValues := make([]models.Item, len(items))
	for i, it := range items {
		itemValues[i] = *it
	}
	claimValues := make([]models.Claim, len(claims))
	for i, cl := range claims {
		claimValues[i] = *cl
	}

	now := s.now()
	series, err := stats.ChartSeries(itemValues, bucket, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, invalidArgument(fieldViolation{Field: "days", Description: err.Error()})
	}

	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	badges, err := listAwarded(ctx, s.store, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	unread, err := s.store.CountUnread(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		Summary:  toAPISummary(stats.Summarize(itemValues, claimValues)),
		Series:   toAPISeries(series),
		MyPoints: profile.Points,
		MyBadges: badges,
		Unread:   unread,
	}), nil
}

func toAPISummary(sum stats.Summary) *api.DashboardSummary {
	byStatus := make(map[string]int, len(sum.ByStatus))
	for st, n := range sum.ByStatus {
		byStatus[string(st)] = n
	}
	return &api.DashboardSummary{
		TotalItems:     sum.TotalItems,
		Lost:           sum.Lost,
		Found:          sum.Found,
		ByStatus:       byStatus,
		RecoveryRate:   sum.RecoveryRate,
		OpenClaims:     sum.OpenClaims,
		AcceptedClaims: sum.AcceptedClaims,
	}
}

func toAPISeries(points []stats.ChartPoint) []*api.ChartPoint {
	out := make([]*api.ChartPoint, len(points))
	for i, p := range points {
		out[i] = &api.ChartPoint{Start: p.Start, Lost: p.Lost, Found: p.Found}
	}
	return out
}

// GetLeaderboard ranks the campus by points.
func (s *RewardService) GetLeaderboard(ctx context.Context, req *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	entries, err := s.store.Leaderboard(ctx, c.TenantID, clampLimit(req.Msg.Limit, 10, 100))
	if err != nil {
		s.logger.Error("Leaderboard failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetLeaderboardResponse{Entries: toAPIRanked(stats.RankLeaderboard(entries))}), nil
}

// profileInTenant resolves an optional profile id to a profile of the
// caller's campus.
func (s *RewardService) profileInTenant(ctx context.Context, c caller, id string) (*models.Profile, error) {
	if id == "" {
		id = c.UserID
	}
	p, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.sameTenant(p.TenantID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListBadges returns the badge catalogue and the badges a profile holds.
func (s *RewardService) ListBadges(ctx context.Context, req *connect.Request[api.ListBadgesRequest]) (*connect.Response[api.ListBadgesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	p, err := s.profileInTenant(ctx, c, req.Msg.ProfileID)
	if err != nil {
		return nil, toConnectError(err)
	}

	catalogue, err := s.store.ListBadges(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	awarded, err := listAwarded(ctx, s.store, p.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Badge, len(catalogue))
	for i, b := range catalogue {
		out[i] = &api.Badge{Code: b.Code, Name: b.Name, Description: b.Description}
	}
	return connect.NewResponse(&api.ListBadgesResponse{Catalogue: out, Awarded: awarded}), nil
}

// SendThanks sends a thank-you note, which also earns the recipient points.
func (s *RewardService) SendThanks(ctx context.Context, req *connect.Request[api.SendThanksRequest]) (*connect.Response[api.SendThanksResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	message := strings.TrimSpace(req.Msg.Message)

	var v violations
	v.check("to_id", req.Msg.ToID, "required")
	v.check("message", message, "required,max=500")
	if req.Msg.ToID != "" && req.Msg.ToID == c.UserID {
		v.add("to_id", "must be another user")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	to, err := s.profileInTenant(ctx, c, req.Msg.ToID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.ItemID != "" {
		item, err := s.store.GetItem(ctx, req.Msg.ItemID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !c.canSeeItem(item) {
			return nil, toConnectError(storage.ErrNotFound)
		}
	}

	note := &models.ThankYouNote{
		TenantID: c.TenantID,
		FromID:   c.UserID,
		ToID:     to.ID,
		ItemID:   req.Msg.ItemID,
		Message:  message,
	}
	if err := s.store.CreateThankYouNote(ctx, note); err != nil {
		s.logger.Error("SendThanks failed", "to_id", to.ID, "error", err)
		return nil, toConnectError(err)
	}

	if _, err := s.store.AddPoints(ctx, to.ID, stats.PointsPerThanks); err != nil {
		s.logger.Error("Failed to award points", "profile_id", to.ID, "error", err)
	}
	s.events.publish(profileChange(realtime.OpUpdate, to))
	s.events.notify(ctx, to.ID, models.NotifyThankYou, "You received a thank-you note", message,
		map[string]string{"note_id": note.ID, "from_id": c.UserID})
	s.events.awardBadges(ctx, to.ID)

	s.logger.Info("Thanks sent", "note_id", note.ID, "from_id", c.UserID, "to_id", to.ID)
	return connect.NewResponse(&api.SendThanksResponse{Note: toAPINote(note)}), nil
}

// ListThanks lists the notes a profile received.
func (s *RewardService) ListThanks(ctx context.Context, req *connect.Request[api.ListThanksRequest]) (*connect.Response[api.ListThanksResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	p, err := s.profileInTenant(ctx, c, req.Msg.ProfileID)
	if err != nil {
		return nil, toConnectError(err)
	}
	notes, err := s.store.ListThankYouNotes(ctx, p.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.ThankYouNote, len(notes))
	for i, n := range notes {
		out[i] = toAPINote(n)
	}
	return connect.NewResponse(&api.ListThanksResponse{Notes: out}), nil
}
