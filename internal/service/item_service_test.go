package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/pkg/api"
)

func TestCreateItem_PendingUntilApproved(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	bob := env.register(t, "north", "bob")
	ctx := context.Background()

	item := createItem(t, alice, nil, "lost", "Blue umbrella", "Left it near the stairs")
	if item.Status != "pending" {
		t.Fatalf("status: expected pending, got %s", item.Status)
	}

	// The owner sees a pending item, other users do not.
	if _, err := alice.Items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID})); err != nil {
		t.Fatalf("owner GetItem failed: %v", err)
	}
	_, err := bob.Items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID}))
	assertCode(t, err, connect.CodeNotFound)

	feed, err := bob.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(feed.Msg.Items) != 0 {
		t.Errorf("feed: expected no items before approval, got %d", len(feed.Msg.Items))
	}

	mod, err := admin.Items.ModerateItem(ctx, connect.NewRequest(&api.ModerateItemRequest{ID: item.ID, Status: "approved"}))
	if err != nil {
		t.Fatalf("ModerateItem failed: %v", err)
	}
	if mod.Msg.Item.Status != "approved" {
		t.Errorf("status: expected approved, got %s", mod.Msg.Item.Status)
	}

	feed, err = bob.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(feed.Msg.Items) != 1 || feed.Msg.Items[0].ID != item.ID {
		t.Errorf("feed: expected the approved item, got %v", feed.Msg.Items)
	}

	// The owner is told about the decision.
	inbox, err := alice.Notifications.ListNotifications(ctx, connect.NewRequest(&api.ListNotificationsRequest{}))
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	found := false
	for _, n := range inbox.Msg.Notifications {
		if n.Type == "item_moderated" && n.Data["item_id"] == item.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected item_moderated notification, got %v", inbox.Msg.Notifications)
	}
}

func TestCreateItem_AdminReportsAreApproved(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")

	item := createItem(t, admin, nil, "found", "Keys", "Ring of three keys")
	if item.Status != "approved" {
		t.Errorf("status: expected approved, got %s", item.Status)
	}
}

func TestCreateItem_ExtractsContactInfo(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")

	item := createItem(t, alice, nil, "found", "Wallet", "Black leather wallet. Email me at Alice.Smith@North.edu")
	if !strings.Contains(item.ContactInfo, "alice.smith@north.edu") {
		t.Errorf("contact info: expected extracted email, got %q", item.ContactInfo)
	}

	resp, err := alice.Items.CreateItem(context.Background(), connect.NewRequest(&api.CreateItemRequest{
		Kind:        "found",
		Title:       "Scarf",
		Description: "call 555-123-4567",
		ContactInfo: "front desk",
	}))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if resp.Msg.Item.ContactInfo != "front desk" {
		t.Errorf("explicit contact info should win, got %q", resp.Msg.Item.ContactInfo)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "north", "alice")

	_, err := alice.Items.CreateItem(context.Background(), connect.NewRequest(&api.CreateItemRequest{
		Kind:     "stolen",
		ImageURL: "not a url",
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	fields := FieldViolations(err)
	for _, f := range []string{"kind", "title", "image_url"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("expected violation on %s, got %v", f, fields)
		}
	}
}

func TestUpdateItem(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	bob := env.register(t, "north", "bob")
	ctx := context.Background()

	item := createItem(t, alice, &admin, "lost", "Phone", "Cracked screen")

	title := "Black phone"
	resp, err := alice.Items.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{ID: item.ID, Title: &title}))
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if resp.Msg.Item.Title != title {
		t.Errorf("title: expected %q, got %q", title, resp.Msg.Item.Title)
	}
	if resp.Msg.Item.Description != "Cracked screen" {
		t.Errorf("unset fields must be kept, got description %q", resp.Msg.Item.Description)
	}

	_, err = bob.Items.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{ID: item.ID, Title: &title}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestModerateItem_AdminOnly(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")

	item := createItem(t, alice, nil, "lost", "Hat", "")
	_, err := alice.Items.ModerateItem(context.Background(), connect.NewRequest(&api.ModerateItemRequest{ID: item.ID, Status: "approved"}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestItems_TenantIsolation(t *testing.T) {
	env := setupTestServer(t)
	northAdmin := env.register(t, "north", "admin")
	southAdmin := env.register(t, "south", "admin")
	ctx := context.Background()

	item := createItem(t, northAdmin, nil, "found", "Laptop", "Silver laptop")

	_, err := southAdmin.Items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = southAdmin.Items.ModerateItem(ctx, connect.NewRequest(&api.ModerateItemRequest{ID: item.ID, Status: "rejected"}))
	assertCode(t, err, connect.CodeNotFound)

	feed, err := southAdmin.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(feed.Msg.Items) != 0 {
		t.Errorf("expected empty feed on another campus, got %d items", len(feed.Msg.Items))
	}
}

func TestListItems_Filters(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	ctx := context.Background()

	createItem(t, alice, &admin, "lost", "Glasses", "")
	createItem(t, alice, &admin, "found", "Bottle", "")
	createItem(t, alice, nil, "lost", "Notebook", "")

	lost, err := alice.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{Kind: "lost"}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(lost.Msg.Items) != 1 {
		t.Errorf("lost feed: expected 1 approved item, got %d", len(lost.Msg.Items))
	}

	mine, err := alice.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{Mine: true}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(mine.Msg.Items) != 3 {
		t.Errorf("mine: expected 3 items, got %d", len(mine.Msg.Items))
	}

	// Users cannot list pending items of the campus.
	pending, err := alice.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{Statuses: []string{"pending"}}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(pending.Msg.Items) != 0 {
		t.Errorf("pending for user: expected 0, got %d", len(pending.Msg.Items))
	}
	pending, err = admin.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{Statuses: []string{"pending"}}))
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(pending.Msg.Items) != 1 {
		t.Errorf("pending for admin: expected 1, got %d", len(pending.Msg.Items))
	}

	_, err = alice.Items.ListItems(ctx, connect.NewRequest(&api.ListItemsRequest{Statuses: []string{"lost-ish"}}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestSearchItems(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	ctx := context.Background()

	createItem(t, admin, nil, "found", "Red backpack", "Found in the gym")
	createItem(t, admin, nil, "found", "Red pen", "Lecture hall")
	createItem(t, admin, nil, "lost", "Backpack", "Green, with stickers")

	resp, err := admin.Items.SearchItems(ctx, connect.NewRequest(&api.SearchItemsRequest{Query: "red backpack"}))
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if len(resp.Msg.Items) != 1 || resp.Msg.Items[0].Title != "Red backpack" {
		t.Errorf("expected only the red backpack, got %v", resp.Msg.Items)
	}

	resp, err = admin.Items.SearchItems(ctx, connect.NewRequest(&api.SearchItemsRequest{Query: "backpack", Kind: "lost"}))
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if len(resp.Msg.Items) != 1 || resp.Msg.Items[0].Kind != "lost" {
		t.Errorf("expected the lost backpack, got %v", resp.Msg.Items)
	}

	_, err = admin.Items.SearchItems(ctx, connect.NewRequest(&api.SearchItemsRequest{Query: " "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestSearchByImage(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	ctx := context.Background()

	umbrella := createItem(t, admin, nil, "found", "Umbrella", "")
	createItem(t, admin, nil, "found", "Mug", "")
	env.ai.setImageHit(umbrella.ID)

	resp, err := admin.Items.SearchByImage(ctx, connect.NewRequest(&api.SearchByImageRequest{
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	}))
	if err != nil {
		t.Fatalf("SearchByImage failed: %v", err)
	}
	if len(resp.Msg.Matches) != 1 {
		t.Fatalf("matches: expected 1, got %d", len(resp.Msg.Matches))
	}
	if resp.Msg.Matches[0].Item.ID != umbrella.ID {
		t.Errorf("match: expected umbrella, got %s", resp.Msg.Matches[0].Item.Title)
	}

	_, err = admin.Items.SearchByImage(ctx, connect.NewRequest(&api.SearchByImageRequest{ContentType: "text/plain", Data: []byte("x")}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestEnhanceDescription(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "north", "alice")

	resp, err := alice.Items.EnhanceDescription(context.Background(), connect.NewRequest(&api.EnhanceDescriptionRequest{Text: "  blue bag  "}))
	if err != nil {
		t.Fatalf("EnhanceDescription failed: %v", err)
	}
	if resp.Msg.Text != "Enhanced: blue bag" {
		t.Errorf("text: got %q", resp.Msg.Text)
	}
}

func TestFindMatches_NotifiesOwners(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	ctx := context.Background()

	lost := createItem(t, alice, &admin, "lost", "Blue water bottle", "Steel bottle with stickers")
	createItem(t, admin, nil, "found", "Calculator", "Graphing calculator")
	found := createItem(t, admin, nil, "found", "Blue bottle", "Steel water bottle")

	resp, err := alice.Items.FindMatches(ctx, connect.NewRequest(&api.FindMatchesRequest{ItemID: lost.ID}))
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(resp.Msg.Matches) == 0 || resp.Msg.Matches[0].Item.ID != found.ID {
		t.Fatalf("expected the blue bottle first, got %v", resp.Msg.Matches)
	}
	for _, m := range resp.Msg.Matches {
		if m.Item.Kind != "found" {
			t.Errorf("matches must be of the opposite kind, got %s", m.Item.Kind)
		}
	}

	// Approving the found bottle told the owner of the lost one.
	inbox, err := alice.Notifications.ListNotifications(ctx, connect.NewRequest(&api.ListNotificationsRequest{}))
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	notified := false
	for _, n := range inbox.Msg.Notifications {
		if n.Type == "possible_match" && n.Data["match_id"] == found.ID {
			notified = true
		}
	}
	if !notified {
		t.Errorf("expected possible_match notification, got %v", inbox.Msg.Notifications)
	}
}
