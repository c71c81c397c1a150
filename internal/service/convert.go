package service

import (
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/stats"
	"github.com/mmynk/lostfound/pkg/api"
)

// AvatarPath is where the server exposes a profile's avatar image.
func AvatarPath(profileID string) string {
	return "/avatars/" + profileID
}

// BackupPath is where the server exposes a backup download.
func BackupPath(backupID string) string {
	return "/backups/" + backupID
}

func toAPITenant(t *models.Tenant) *api.Tenant {
	return &api.Tenant{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// toAPIProfile converts a profile. The email is only included for the
// caller's own profile.
func toAPIProfile(p *models.Profile, withEmail bool) *api.Profile {
	out := &api.Profile{
		ID:          p.ID,
		TenantID:    p.TenantID,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Points:      p.Points,
		CreatedAt:   p.CreatedAt,
	}
	if withEmail {
		out.Email = p.Email
	}
	if p.AvatarFileID != "" {
		out.AvatarURL = AvatarPath(p.ID)
	}
	return out
}

func toAPIPreferences(p models.Preferences) *api.Preferences {
	return &api.Preferences{
		Theme:              string(p.Theme),
		HighContrast:       p.HighContrast,
		ReduceMotion:       p.ReduceMotion,
		FontScale:          p.FontScale,
		EmailNotifications: p.EmailNotifications,
	}
}

func fromAPIPreferences(p *api.Preferences) models.Preferences {
	return models.Preferences{
		Theme:              models.Theme(p.Theme),
		HighContrast:       p.HighContrast,
		ReduceMotion:       p.ReduceMotion,
		FontScale:          p.FontScale,
		EmailNotifications: p.EmailNotifications,
	}
}

func toAPIItem(it *models.Item) *api.Item {
	return &api.Item{
		ID:          it.ID,
		TenantID:    it.TenantID,
		OwnerID:     it.OwnerID,
		Kind:        string(it.Kind),
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Location:    it.Location,
		ImageURL:    it.ImageURL,
		ContactInfo: it.ContactInfo,
		Status:      string(it.Status),
		OccurredAt:  it.OccurredAt,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toAPIItems(items []*models.Item) []*api.Item {
	out := make([]*api.Item, len(items))
	for i, it := range items {
		out[i] = toAPIItem(it)
	}
	return out
}

func toAPIClaim(c *models.Claim) *api.Claim {
	return &api.Claim{
		ID:         c.ID,
		ItemID:     c.ItemID,
		ClaimantID: c.ClaimantID,
		Message:    c.Message,
		State:      string(c.State),
		CreatedAt:  c.CreatedAt,
		ResolvedAt: c.ResolvedAt,
		ResolvedBy: c.ResolvedBy,
	}
}

func toAPIConversation(c *models.Conversation) *api.Conversation {
	return &api.Conversation{
		ID:            c.ID,
		ItemID:        c.ItemID,
		Participants:  c.Participants,
		CreatedAt:     c.CreatedAt,
		LastMessageAt: c.LastMessageAt,
	}
}

func toAPIMessage(m *models.Message) *api.Message {
	return &api.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		Seq:            m.Seq,
		CreatedAt:      m.CreatedAt,
	}
}

func toAPINotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}

func toAPINote(n *models.ThankYouNote) *api.ThankYouNote {
	return &api.ThankYouNote{
		ID:        n.ID,
		FromID:    n.FromID,
		ToID:      n.ToID,
		ItemID:    n.ItemID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}

func toAPIBackup(b *models.Backup) *api.Backup {
	return &api.Backup{
		ID:           b.ID,
		CreatedBy:    b.CreatedBy,
		SizeBytes:    b.SizeBytes,
		ProfileCount: b.ProfileCount,
		ItemCount:    b.ItemCount,
		CreatedAt:    b.CreatedAt,
		DownloadPath: BackupPath(b.ID),
	}
}

func toAPIRanked(entries []stats.RankedEntry) []*api.LeaderboardEntry {
	out := make([]*api.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = &api.LeaderboardEntry{
			Rank:        e.Rank,
			ProfileID:   e.ProfileID,
			DisplayName: e.DisplayName,
			Points:      e.Points,
			Returned:    e.Returned,
		}
	}
	return out
}

// ToAPIChange converts a hub change to its wire form.
func ToAPIChange(c realtime.Change) *api.Change {
	return &api.Change{
		ID:       c.ID,
		Key:      c.Key,
		Table:    c.Table,
		Op:       string(c.Op),
		RowID:    c.RowID,
		TenantID: c.TenantID,
		At:       c.At,
	}
}
