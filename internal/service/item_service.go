package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/contact"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

const (
	// maxCandidates bounds how many items are sent to the matcher.
	maxCandidates = 200
	// MaxSearchImageBytes bounds image search uploads.
	MaxSearchImageBytes = 5 << 20
	// matchNotifyScore is the minimum score that triggers a possible_match
	// notification.
	matchNotifyScore = 0.3
	matchNotifyLimit = 3
)

// Assistant is the AI collaborator used by the item service.
type Assistant interface {
	EnhanceDescription(ctx context.Context, text string) (string, error)
	SearchByImage(ctx context.Context, image []byte, contentType string, candidates []inference.Candidate, limit int) ([]inference.Match, error)
	Match(ctx context.Context, item inference.Candidate, candidates []inference.Candidate, limit int) ([]inference.Match, error)
}

// publicStatuses are the statuses any campus member may see.
var publicStatuses = []models.ModerationStatus{models.StatusApproved, models.StatusRecovered}

// ItemService implements the ItemService RPC interface.
type ItemService struct {
	apiconnect.UnimplementedItemServiceHandler
	store  storage.Store
	ai     Assistant
	events *events
	logger *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(store storage.Store, ai Assistant, publisher Publisher, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:  store,
		ai:     ai,
		events: newEvents(store, publisher, logger),
		logger: logger,
	}
}

func checkItemFields(v *violations, title, description, category, location, imageURL, contactInfo string) {
	v.check("title", title, "required,max=120")
	v.check("description", description, "max=2000")
	v.check("category", category, "max=60")
	v.check("location", location, "max=120")
	v.check("image_url", imageURL, "omitempty,url,max=500")
	v.check("contact_info", contactInfo, "max=200")
}

// CreateItem reports a lost or found item. Reports start pending until an
// admin approves them; reports by admins are approved immediately.
func (s *ItemService) CreateItem(ctx context.Context, req *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg := req.Msg
	item := &models.Item{
		TenantID:    c.TenantID,
		OwnerID:     c.UserID,
		Kind:        models.ItemKind(msg.Kind),
		Title:       strings.TrimSpace(msg.Title),
		Description: strings.TrimSpace(msg.Description),
		Category:    strings.TrimSpace(msg.Category),
		Location:    strings.TrimSpace(msg.Location),
		ImageURL:    strings.TrimSpace(msg.ImageURL),
		ContactInfo: strings.TrimSpace(msg.ContactInfo),
		OccurredAt:  msg.OccurredAt,
		Status:      models.StatusPending,
	}

	var v violations
	if !item.Kind.Valid() {
		v.add("kind", "must be one of: lost found")
	}
	checkItemFields(&v, item.Title, item.Description, item.Category, item.Location, item.ImageURL, item.ContactInfo)
	if msg.OccurredAt < 0 || msg.OccurredAt > nowUnix()+60 {
		v.add("occurred_at", "must not be in the future")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if item.ContactInfo == "" {
		if info := contact.Parse(item.Description); !info.Empty() {
			item.ContactInfo = info.String()
		}
	}
	if c.isAdmin() {
		item.Status = models.StatusApproved
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		s.logger.Error("CreateItem failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(itemChange(realtime.OpInsert, item))
	s.events.awardBadges(ctx, c.UserID)
	if item.Status == models.StatusApproved {
		s.notifyMatches(ctx, item)
	}

	s.logger.Info("Item created", "item_id", item.ID, "kind", item.Kind, "status", item.Status)
	return connect.NewResponse(&api.CreateItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItem changes the descriptive fields of the caller's item.
func (s *ItemService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	item, err := s.loadVisibleItem(ctx, c, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.canEditItem(item) {
		return nil, toConnectError(errForbidden)
	}

	msg := req.Msg
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&item.Title, msg.Title)
	set(&item.Description, msg.Description)
	set(&item.Category, msg.Category)
	set(&item.Location, msg.Location)
	set(&item.ImageURL, msg.ImageURL)
	set(&item.ContactInfo, msg.ContactInfo)
	if msg.OccurredAt != nil {
		item.OccurredAt = *msg.OccurredAt
	}

	var v violations
	checkItemFields(&v, item.Title, item.Description, item.Category, item.Location, item.ImageURL, item.ContactInfo)
	if err := v.err(); err != nil {
		return nil, err
	}
	if item.ContactInfo == "" && msg.Description != nil {
		if info := contact.Parse(item.Description); !info.Empty() {
			item.ContactInfo = info.String()
		}
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		s.logger.Error("UpdateItem failed", "item_id", item.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(itemChange(realtime.OpUpdate, item))

	s.logger.Info("Item updated", "item_id", item.ID)
	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(item)}), nil
}

// GetItem returns one item if the caller may see it.
func (s *ItemService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	item, err := s.loadVisibleItem(ctx, c, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetItemResponse{Item: toAPIItem(item)}), nil
}

// loadVisibleItem hides items the caller may not see behind ErrNotFound.
func (s *ItemService) loadVisibleItem(ctx context.Context, c caller, id string) (*models.Item, error) {
	if id == "" {
		return nil, invalidArgument(fieldViolation{Field: "id", Description: "is required"})
	}
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.canSeeItem(item) {
		return nil, storage.ErrNotFound
	}
	return item, nil
}

// visibleStatuses narrows requested statuses to what the caller may list.
// ok is false when nothing requested is visible.
func visibleStatuses(c caller, requested []models.ModerationStatus) ([]models.ModerationStatus, bool) {
	if c.isAdmin() {
		return requested, true
	}
	if len(requested) == 0 {
		return publicStatuses, true
	}
	var out []models.ModerationStatus
	for _, st := range requested {
		if st == models.StatusApproved || st == models.StatusRecovered {
			out = append(out, st)
		}
	}
	return out, len(out) > 0
}

func parseStatuses(v *violations, raw []string) []models.ModerationStatus {
	out := make([]models.ModerationStatus, 0, len(raw))
	for _, r := range raw {
		st := models.ModerationStatus(r)
		if !st.Valid() {
			v.add("statuses", "must be one of: pending approved rejected recovered")
			continue
		}
		out = append(out, st)
	}
	return out
}

func parseKind(v *violations, raw string) models.ItemKind {
	kind := models.ItemKind(raw)
	if raw != "" && !kind.Valid() {
		v.add("kind", "must be one of: lost found")
	}
	return kind
}

// ListItems lists the campus feed, or the caller's own reports with Mine.
func (s *ItemService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg := req.Msg

	var v violations
	filter := models.ItemFilter{
		TenantID: c.TenantID,
		Kind:     parseKind(&v, msg.Kind),
		Statuses: parseStatuses(&v, msg.Statuses),
		Category: strings.TrimSpace(msg.Category),
		Since:    msg.Since,
		Limit:    clampLimit(msg.Limit, 50, 200),
		Offset:   msg.Offset,
	}
	if msg.Offset < 0 {
		v.add("offset", "must not be negative")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if msg.Mine {
		filter.OwnerID = c.UserID
	} else {
		statuses, ok := visibleStatuses(c, filter.Statuses)
		if !ok {
			return connect.NewResponse(&api.ListItemsResponse{Items: []*api.Item{}}), nil
		}
		filter.Statuses = statuses
	}

	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		s.logger.Error("ListItems failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListItemsResponse{Items: toAPIItems(items)}), nil
}

// SearchItems matches the query against title, description and location.
func (s *ItemService) SearchItems(ctx context.Context, req *connect.Request[api.SearchItemsRequest]) (*connect.Response[api.SearchItemsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	query := strings.TrimSpace(req.Msg.Query)

	var v violations
	v.check("query", query, "required,min=2,max=200")
	kind := parseKind(&v, req.Msg.Kind)
	if err := v.err(); err != nil {
		return nil, err
	}

	statuses, _ := visibleStatuses(c, nil)
	items, err := s.store.ListItems(ctx, models.ItemFilter{
		TenantID: c.TenantID,
		Kind:     kind,
		Statuses: statuses,
		Query:    query,
		Limit:    clampLimit(req.Msg.Limit, 20, 100),
	})
	if err != nil {
		s.logger.Error("SearchItems failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Debug("Search", "query", query, "results", len(items))
	return connect.NewResponse(&api.SearchItemsResponse{Items: toAPIItems(items)}), nil
}

// SearchByImage ranks visible items by similarity to an uploaded photo.
func (s *ItemService) SearchByImage(ctx context.Context, req *connect.Request[api.SearchByImageRequest]) (*connect.Response[api.SearchByImageResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg := req.Msg

	var v violations
	if !strings.HasPrefix(msg.ContentType, "image/") {
		v.add("content_type", "must be an image type")
	}
	if len(msg.Data) == 0 {
		v.add("data", "is required")
	} else if len(msg.Data) > MaxSearchImageBytes {
		v.add("data", "must be at most 5 MiB")
	}
	kind := parseKind(&v, msg.Kind)
	if err := v.err(); err != nil {
		return nil, err
	}

	statuses, _ := visibleStatuses(c, nil)
	items, err := s.store.ListItems(ctx, models.ItemFilter{
		TenantID: c.TenantID,
		Kind:     kind,
		Statuses: statuses,
		Limit:    maxCandidates,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	if len(items) == 0 {
		return connect.NewResponse(&api.SearchByImageResponse{Matches: []*api.Match{}}), nil
	}

	matches, err := s.ai.SearchByImage(ctx, msg.Data, msg.ContentType, candidates(items), clampLimit(msg.Limit, 10, 50))
	if err != nil {
		s.logger.Warn("Image search failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SearchByImageResponse{Matches: joinMatches(items, matches)}), nil
}

// EnhanceDescription rewrites a description draft.
func (s *ItemService) EnhanceDescription(ctx context.Context, req *connect.Request[api.EnhanceDescriptionRequest]) (*connect.Response[api.EnhanceDescriptionResponse], error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, toConnectError(err)
	}
	text := strings.TrimSpace(req.Msg.Text)
	var v violations
	v.check("text", text, "required,max=2000")
	if err := v.err(); err != nil {
		return nil, err
	}

	out, err := s.ai.EnhanceDescription(ctx, text)
	if err != nil {
		s.logger.Warn("Enhance failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EnhanceDescriptionResponse{Text: out}), nil
}

// FindMatches returns approved reports of the opposite kind that may describe
// the same object.
func (s *ItemService) FindMatches(ctx context.Context, req *connect.Request[api.FindMatchesRequest]) (*connect.Response[api.FindMatchesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	item, err := s.loadVisibleItem(ctx, c, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}

	matches, pool, err := s.match(ctx, item, clampLimit(req.Msg.Limit, 5, 20))
	if err != nil {
		s.logger.Warn("FindMatches failed", "item_id", item.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.FindMatchesResponse{Matches: joinMatches(pool, matches)}), nil
}

func (s *ItemService) match(ctx context.Context, item *models.Item, limit int) ([]inference.Match, []*models.Item, error) {
	opposite := models.KindFound
	if item.Kind == models.KindFound {
		opposite = models.KindLost
	}
	pool, err := s.store.ListItems(ctx, models.ItemFilter{
		TenantID: item.TenantID,
		Kind:     opposite,
		Statuses: []models.ModerationStatus{models.StatusApproved},
		Limit:    maxCandidates,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(pool) == 0 {
		return nil, nil, nil
	}
	matches, err := s.ai.Match(ctx, candidateOf(item), candidates(pool), limit)
	return matches, pool, err
}

// notifyMatches tells the owners of likely matching reports about item.
// Failures are logged only.
func (s *ItemService) notifyMatches(ctx context.Context, item *models.Item) {
	matches, pool, err := s.match(ctx, item, matchNotifyLimit)
	if err != nil {
		s.logger.Warn("Match notification skipped", "item_id", item.ID, "error", err)
		return
	}
	byID := make(map[string]*models.Item, len(pool))
	for _, it := range pool {
		byID[it.ID] = it
	}
	for _, m := range matches {
		other, ok := byID[m.ItemID]
		if !ok || m.Score < matchNotifyScore || other.OwnerID == item.OwnerID {
			continue
		}
		s.events.notify(ctx, other.OwnerID, models.NotifyPossibleMatch,
			"Possible match for "+other.Title,
			"A new "+string(item.Kind)+" report may match your item: "+item.Title,
			map[string]string{"item_id": other.ID, "match_id": item.ID})
	}
}

// ModerateItem sets the moderation status of an item. Admins only.
func (s *ItemService) ModerateItem(ctx context.Context, req *connect.Request[api.ModerateItemRequest]) (*connect.Response[api.ModerateItemResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.isAdmin() {
		return nil, toConnectError(errAdminOnly)
	}
	status := models.ModerationStatus(req.Msg.Status)
	var v violations
	v.check("id", req.Msg.ID, "required")
	if !status.Valid() {
		v.add("status", "must be one of: pending approved rejected recovered")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	before, err := s.store.GetItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := c.sameTenant(before.TenantID); err != nil {
		return nil, toConnectError(err)
	}

	item, err := s.store.SetItemStatus(ctx, before.ID, status)
	if err != nil {
		s.logger.Error("ModerateItem failed", "item_id", before.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(itemChange(realtime.OpUpdate, item))

	if item.OwnerID != c.UserID && before.Status != status {
		s.events.notify(ctx, item.OwnerID, models.NotifyItemModerated,
			"Your report was "+string(status),
			item.Title+" is now "+string(status)+".",
			map[string]string{"item_id": item.ID, "status": string(status)})
	}
	if status == models.StatusApproved && before.Status != models.StatusApproved {
		s.notifyMatches(ctx, item)
	}

	s.logger.Info("Item moderated", "item_id", item.ID, "from", before.Status, "to", status, "by", c.UserID)
	return connect.NewResponse(&api.ModerateItemResponse{Item: toAPIItem(item)}), nil
}

func candidateOf(it *models.Item) inference.Candidate {
	return inference.Candidate{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Location:    it.Location,
		ImageURL:    it.ImageURL,
	}
}

func candidates(items []*models.Item) []inference.Candidate {
	out := make([]inference.Candidate, len(items))
	for i, it := range items {
		out[i] = candidateOf(it)
	}
	return out
}

// joinMatches resolves scored ids against pool, keeping score order and
// dropping ids the matcher invented.
func joinMatches(pool []*models.Item, matches []inference.Match) []*api.Match {
	byID := make(map[string]*models.Item, len(pool))
	for _, it := range pool {
		byID[it.ID] = it
	}
	out := make([]*api.Match, 0, len(matches))
	for _, m := range matches {
		if it, ok := byID[m.ItemID]; ok {
			out = append(out, &api.Match{Item: *toAPIItem(it), Score: m.Score})
		}
	}
	return out
}
