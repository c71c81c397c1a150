package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/pkg/api"
)

func TestCreateClaim_Preconditions(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	bob := env.register(t, "north", "bob")
	ctx := context.Background()

	approved := createItem(t, alice, &admin, "found", "Keys", "")
	pending := createItem(t, alice, nil, "found", "Gloves", "")

	_, err := alice.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: approved.ID, Message: "mine"}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = bob.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: pending.ID, Message: "mine"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = bob.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: approved.ID}))
	assertCode(t, err, connect.CodeInvalidArgument)

	resp, err := bob.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{
		ItemID:  approved.ID,
		Message: "Those are mine, text me on 555-123-4567",
	}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	if resp.Msg.Claim.State != "open" {
		t.Errorf("state: expected open, got %s", resp.Msg.Claim.State)
	}

	// The owner is notified with contact details masked.
	inbox, err := alice.Notifications.ListNotifications(ctx, connect.NewRequest(&api.ListNotificationsRequest{}))
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	var body string
	for _, n := range inbox.Msg.Notifications {
		if n.Type == "claim_created" {
			body = n.Body
		}
	}
	if body != "Those are mine, text me on [phone]" {
		t.Errorf("claim notification body: got %q", body)
	}
}

func TestResolveClaim_AcceptRecoversItem(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	finder := env.register(t, "north", "finder")
	owner := env.register(t, "north", "owner")
	other := env.register(t, "north", "other")
	ctx := context.Background()

	item := createItem(t, finder, &admin, "found", "Watch", "Silver watch")

	good, err := owner.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "engraved with my initials"}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	bad, err := other.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "mine too"}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}

	// Only the item owner (or an admin) may resolve.
	_, err = other.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: good.Msg.Claim.ID, Accept: true}))
	assertCode(t, err, connect.CodePermissionDenied)

	resp, err := finder.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: good.Msg.Claim.ID, Accept: true}))
	if err != nil {
		t.Fatalf("ResolveClaim failed: %v", err)
	}
	if resp.Msg.Claim.State != "accepted" {
		t.Errorf("claim state: expected accepted, got %s", resp.Msg.Claim.State)
	}
	if resp.Msg.Item.Status != "recovered" {
		t.Errorf("item status: expected recovered, got %s", resp.Msg.Item.Status)
	}

	// The competing claim was rejected.
	claims, err := finder.Claims.ListClaims(ctx, connect.NewRequest(&api.ListClaimsRequest{ItemID: item.ID}))
	if err != nil {
		t.Fatalf("ListClaims failed: %v", err)
	}
	for _, c := range claims.Msg.Claims {
		if c.ID == bad.Msg.Claim.ID && c.State != "rejected" {
			t.Errorf("competing claim: expected rejected, got %s", c.State)
		}
	}

	// Resolving again is a precondition failure.
	_, err = finder.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: good.Msg.Claim.ID, Accept: false}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	// The finder of a found item is the helper and gets points and a badge.
	profile, err := finder.Profile.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Msg.Profile.Points != 10 {
		t.Errorf("points: expected 10, got %d", profile.Msg.Profile.Points)
	}
	hasBadge := false
	for _, b := range profile.Msg.Badges {
		if b.Code == "first_return" {
			hasBadge = true
		}
	}
	if !hasBadge {
		t.Errorf("expected first_return badge, got %v", profile.Msg.Badges)
	}
}

func TestResolveClaim_LostItemRewardsClaimant(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	loser := env.register(t, "north", "loser")
	helper := env.register(t, "north", "helper")
	ctx := context.Background()

	item := createItem(t, loser, &admin, "lost", "Scarf", "Red wool scarf")
	claim, err := helper.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "I found it"}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	if _, err := loser.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: claim.Msg.Claim.ID, Accept: true})); err != nil {
		t.Fatalf("ResolveClaim failed: %v", err)
	}

	profile, err := helper.Profile.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Msg.Profile.Points != 10 {
		t.Errorf("helper points: expected 10, got %d", profile.Msg.Profile.Points)
	}
}

func TestListClaims_Visibility(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	bob := env.register(t, "north", "bob")
	carol := env.register(t, "north", "carol")
	ctx := context.Background()

	item := createItem(t, alice, &admin, "found", "Book", "")
	for _, u := range []user{bob, carol} {
		if _, err := u.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "mine"})); err != nil {
			t.Fatalf("CreateClaim failed: %v", err)
		}
	}

	tests := []struct {
		name string
		u    user
		want int
	}{
		{"owner sees all", alice, 2},
		{"admin sees all", admin, 2},
		{"claimant sees own", bob, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.u.Claims.ListClaims(ctx, connect.NewRequest(&api.ListClaimsRequest{ItemID: item.ID}))
			if err != nil {
				t.Fatalf("ListClaims failed: %v", err)
			}
			if len(resp.Msg.Claims) != tt.want {
				t.Errorf("claims: expected %d, got %d", tt.want, len(resp.Msg.Claims))
			}
		})
	}

	mine, err := carol.Claims.ListClaims(ctx, connect.NewRequest(&api.ListClaimsRequest{}))
	if err != nil {
		t.Fatalf("ListClaims failed: %v", err)
	}
	if len(mine.Msg.Claims) != 1 || mine.Msg.Claims[0].ClaimantID != carol.Me.ID {
		t.Errorf("own claims: got %v", mine.Msg.Claims)
	}
}

func TestResolveClaim_ConcurrentAcceptsSettleOnce(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	loser := env.register(t, "north", "loser")
	ctx := context.Background()

	for trial := 0; trial < 5; trial++ {
		item := createItem(t, loser, &admin, "lost", "Keys", "Bike keys on a red ring")
		var claimIDs []string
		var helpers []user
		for _, name := range []string{"first", "second"} {
			h := env.register(t, "north", fmt.Sprintf("%s%d", name, trial))
			resp, err := h.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "I have them"}))
			if err != nil {
				t.Fatalf("CreateClaim failed: %v", err)
			}
			claimIDs = append(claimIDs, resp.Msg.Claim.ID)
			helpers = append(helpers, h)
		}

		errs := make([]error, len(claimIDs))
		var wg sync.WaitGroup
		for i, id := range claimIDs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = loser.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: id, Accept: true}))
			}()
		}
		wg.Wait()

		accepted := 0
		for _, err := range errs {
			if err == nil {
				accepted++
				continue
			}
			assertCode(t, err, connect.CodeFailedPrecondition)
		}
		if accepted != 1 {
			t.Fatalf("trial %d: expected exactly one accepted claim, got %d", trial, accepted)
		}

		var points int64
		for _, h := range helpers {
			profile, err := h.Profile.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
			if err != nil {
				t.Fatalf("GetProfile failed: %v", err)
			}
			points += profile.Msg.Profile.Points
		}
		if points != 10 {
			t.Errorf("trial %d: expected 10 points awarded in total, got %d", trial, points)
		}
	}
}

func TestResolveClaim_AcceptAfterItemRejected(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	finder := env.register(t, "north", "finder")
	owner := env.register(t, "north", "owner")
	ctx := context.Background()

	item := createItem(t, finder, &admin, "found", "Phone", "Black phone")
	claim, err := owner.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{ItemID: item.ID, Message: "lock screen is my dog"}))
	if err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	if _, err := admin.Items.ModerateItem(ctx, connect.NewRequest(&api.ModerateItemRequest{ID: item.ID, Status: "rejected"})); err != nil {
		t.Fatalf("ModerateItem failed: %v", err)
	}

	_, err = finder.Claims.ResolveClaim(ctx, connect.NewRequest(&api.ResolveClaimRequest{ID: claim.Msg.Claim.ID, Accept: true}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	got, err := admin.Items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID}))
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Msg.Item.Status != "rejected" {
		t.Errorf("item status: expected rejected, got %s", got.Msg.Item.Status)
	}
	profile, err := finder.Profile.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Msg.Profile.Points != 0 {
		t.Errorf("finder points: expected 0, got %d", profile.Msg.Profile.Points)
	}
}
