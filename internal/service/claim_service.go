package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/contact"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/stats"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// ClaimService implements the ClaimService RPC interface.
type ClaimService struct {
	apiconnect.UnimplementedClaimServiceHandler
	store  storage.Store
	events *events
	logger *slog.Logger
}

// NewClaimService creates a new ClaimService.
func NewClaimService(store storage.Store, publisher Publisher, logger *slog.Logger) *ClaimService {
	return &ClaimService{
		store:  store,
		events: newEvents(store, publisher, logger),
		logger: logger,
	}
}

// CreateClaim asks the owner of an approved item to hand it over (for found
// items) or offers to return it (for lost items).
func (s *ClaimService) CreateClaim(ctx context.Context, req *connect.Request[api.CreateClaimRequest]) (*connect.Response[api.CreateClaimResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	message := strings.TrimSpace(req.Msg.Message)

	var v violations
	v.check("item_id", req.Msg.ItemID, "required")
	v.check("message", message, "required,max=1000")
	if err := v.err(); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.canSeeItem(item) {
		return nil, toConnectError(storage.ErrNotFound)
	}
	if item.OwnerID == c.UserID {
		return nil, toConnectError(errClaimOwnItem)
	}
	if item.Status != models.StatusApproved {
		return nil, toConnectError(errItemNotClaimable)
	}

	claim := &models.Claim{
		ItemID:     item.ID,
		TenantID:   item.TenantID,
		ClaimantID: c.UserID,
		Message:    message,
	}
	if err := s.store.CreateClaim(ctx, claim); err != nil {
		s.logger.Error("CreateClaim failed", "item_id", item.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(claimChange(realtime.OpInsert, claim))
	s.events.notify(ctx, item.OwnerID, models.NotifyClaimCreated,
		"New claim on "+item.Title,
		contact.Preview(message, 140),
		map[string]string{"item_id": item.ID, "claim_id": claim.ID})

	s.logger.Info("Claim created", "claim_id", claim.ID, "item_id", item.ID, "claimant_id", c.UserID)
	return connect.NewResponse(&api.CreateClaimResponse{Claim: toAPIClaim(claim)}), nil
}

// ListClaims lists every claim on an item for its owner or an admin. Other
// callers see only their own claims.
func (s *ClaimService) ListClaims(ctx context.Context, req *connect.Request[api.ListClaimsRequest]) (*connect.Response[api.ListClaimsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	var claims []*models.Claim
	if req.Msg.ItemID == "" {
		claims, err = s.store.ListClaimsByClaimant(ctx, c.UserID)
	} else {
		var item *models.Item
		item, err = s.store.GetItem(ctx, req.Msg.ItemID)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !c.canSeeItem(item) {
			return nil, toConnectError(storage.ErrNotFound)
		}
		claims, err = s.store.ListClaimsByItem(ctx, item.ID)
		if err == nil && !c.canEditItem(item) {
			claims = ownClaims(claims, c.UserID)
		}
	}
	if err != nil {
		s.logger.Error("ListClaims failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Claim, len(claims))
	for i, cl := range claims {
		out[i] = toAPIClaim(cl)
	}
	return connect.NewResponse(&api.ListClaimsResponse{Claims: out}), nil
}

func ownClaims(claims []*models.Claim, userID string) []*models.Claim {
	var out []*models.Claim
	for _, cl := range claims {
		if cl.ClaimantID == userID {
			out = append(out, cl)
		}
	}
	return out
}

// helperOf returns who handed the item back: the finder of a found item is
// its owner, the finder of a lost item is the claimant.
func helperOf(item *models.Item, claim *models.Claim) string {
	if item.Kind == models.KindFound {
		return item.OwnerID
	}
	return claim.ClaimantID
}

// ResolveClaim accepts or rejects an open claim. Accepting marks the item
// recovered, rewards the helper and rejects the remaining open claims.
func (s *ClaimService) ResolveClaim(ctx context.Context, req *connect.Request[api.ResolveClaimRequest]) (*connect.Response[api.ResolveClaimResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument(fieldViolation{Field: "id", Description: "is required"})
	}

	claim, err := s.store.GetClaim(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := c.sameTenant(claim.TenantID); err != nil {
		return nil, toConnectError(err)
	}
	item, err := s.store.GetItem(ctx, claim.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.canEditItem(item) {
		return nil, toConnectError(errForbidden)
	}

	if req.Msg.Accept {
		return s.accept(ctx, c, item, claim)
	}

	claim, err = s.store.ResolveClaim(ctx, claim.ID, models.ClaimRejected, c.UserID)
	if errors.Is(err, storage.ErrConflict) {
		return nil, toConnectError(errClaimResolved)
	}
	if err != nil {
		s.logger.Error("ResolveClaim failed", "claim_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(claimChange(realtime.OpUpdate, claim))
	s.notifyResolved(ctx, item, claim, "Your claim on "+item.Title+" was rejected.")

	s.logger.Info("Claim resolved", "claim_id", claim.ID, "state", claim.State, "by", c.UserID)
	return connect.NewResponse(&api.ResolveClaimResponse{Claim: toAPIClaim(claim), Item: toAPIItem(item)}), nil
}

// accept settles the item in one store transaction, then publishes the
// changes and notifies everyone whose claim was resolved.
func (s *ClaimService) accept(ctx context.Context, c caller, item *models.Item, claim *models.Claim) (*connect.Response[api.ResolveClaimResponse], error) {
	res, err := s.store.AcceptClaim(ctx, claim.ID, c.UserID, helperOf, stats.PointsPerReturn)
	if errors.Is(err, storage.ErrConflict) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		s.logger.Error("AcceptClaim failed", "claim_id", claim.ID, "error", err)
		return nil, toConnectError(err)
	}
	item = res.Item

	s.events.publish(claimChange(realtime.OpUpdate, res.Claim), itemChange(realtime.OpUpdate, item), realtime.Change{
		Key:      realtime.ProfileKey(res.Helper),
		Table:    realtime.TableProfiles,
		Op:       realtime.OpUpdate,
		RowID:    res.Helper,
		TenantID: item.TenantID,
	})
	s.notifyResolved(ctx, item, res.Claim, "Your claim on "+item.Title+" was accepted.")
	s.events.awardBadges(ctx, res.Helper)

	for _, rejected := range res.Rejected {
		s.events.publish(claimChange(realtime.OpUpdate, rejected))
		s.notifyResolved(ctx, item, rejected, item.Title+" was returned to someone else.")
	}

	s.logger.Info("Claim accepted", "claim_id", res.Claim.ID, "item_id", item.ID, "helper", res.Helper, "points", res.Points, "rejected", len(res.Rejected))
	return connect.NewResponse(&api.ResolveClaimResponse{Claim: toAPIClaim(res.Claim), Item: toAPIItem(item)}), nil
}

func (s *ClaimService) notifyResolved(ctx context.Context, item *models.Item, claim *models.Claim, body string) {
	s.events.notify(ctx, claim.ClaimantID, models.NotifyClaimResolved,
		"Your claim was "+string(claim.State),
		body,
		map[string]string{"item_id": item.ID, "claim_id": claim.ID, "state": string(claim.State)})
}
