package service

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// MaxAvatarBytes bounds avatar uploads.
const MaxAvatarBytes = 2 << 20

// FaceDetector counts faces in an image.
type FaceDetector interface {
	DetectFaces(ctx context.Context, image []byte, contentType string) (int, error)
}

// ProfileService implements the ProfileService RPC interface.
type ProfileService struct {
	apiconnect.UnimplementedProfileServiceHandler
	store         storage.Store
	authenticator auth.Authenticator
	faces         FaceDetector
	events        *events
	logger        *slog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store storage.Store, authenticator auth.Authenticator, faces FaceDetector, publisher Publisher, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:         store,
		authenticator: authenticator,
		faces:         faces,
		events:        newEvents(store, publisher, logger),
		logger:        logger,
	}
}

// GetProfile returns a profile of the caller's campus with its badges.
func (s *ProfileService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	id := req.Msg.ProfileID
	if id == "" {
		id = c.UserID
	}

	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := c.sameTenant(profile.TenantID); err != nil {
		return nil, toConnectError(err)
	}

	badges, err := s.awardedBadges(ctx, profile.ID)
	if err != nil {
		s.logger.Error("Failed to load badges", "profile_id", id, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetProfileResponse{
		Profile: toAPIProfile(profile, profile.ID == c.UserID || c.isAdmin()),
		Badges:  badges,
	}), nil
}

func (s *ProfileService) awardedBadges(ctx context.Context, profileID string) ([]*api.Badge, error) {
	return listAwarded(ctx, s.store, profileID)
}

// UpdateProfile changes the caller's display name.
func (s *ProfileService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.DisplayName != nil {
		name := strings.TrimSpace(*req.Msg.DisplayName)
		var v violations
		v.check("display_name", name, "required,max=80")
		if err := v.err(); err != nil {
			return nil, err
		}
		profile.DisplayName = name
	}

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		s.logger.Error("UpdateProfile failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(profileChange(realtime.OpUpdate, profile))

	s.logger.Info("Profile updated", "user_id", c.UserID)
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: toAPIProfile(profile, true)}), nil
}

// GetPreferences returns the caller's display settings.
func (s *ProfileService) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPreferencesResponse{Preferences: toAPIPreferences(profile.Preferences)}), nil
}

// UpdatePreferences replaces the caller's display settings.
func (s *ProfileService) UpdatePreferences(ctx context.Context, req *connect.Request[api.UpdatePreferencesRequest]) (*connect.Response[api.UpdatePreferencesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.Preferences == nil {
		return nil, invalidArgument(fieldViolation{Field: "preferences", Description: "is required"})
	}
	prefs := fromAPIPreferences(req.Msg.Preferences)
	if prefs.Theme == "" {
		prefs.Theme = models.ThemeSystem
	}
	if prefs.FontScale == 0 {
		prefs.FontScale = 1
	}

	var v violations
	v.check("preferences.theme", string(prefs.Theme), "oneof=system light dark")
	v.check("preferences.font_scale", prefs.FontScale, "gte=0.5,lte=3")
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	profile.Preferences = prefs
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		s.logger.Error("UpdatePreferences failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}
	s.events.publish(profileChange(realtime.OpUpdate, profile))

	return connect.NewResponse(&api.UpdatePreferencesResponse{Preferences: toAPIPreferences(prefs)}), nil
}

// avatarTypes are the formats accepted for avatars. They are served publicly
// with the stored content type, so nothing scriptable is allowed.
var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// UploadAvatar stores a new avatar if the image shows exactly one face.
func (s *ProfileService) UploadAvatar(ctx context.Context, req *connect.Request[api.UploadAvatarRequest]) (*connect.Response[api.UploadAvatarResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	var v violations
	contentType, _, err := mime.ParseMediaType(req.Msg.ContentType)
	if err != nil || !avatarTypes[contentType] {
		v.add("content_type", "must be one of: image/png image/jpeg image/webp")
	}
	if len(req.Msg.Data) == 0 {
		v.add("data", "is required")
	} else if len(req.Msg.Data) > MaxAvatarBytes {
		v.add("data", "must be at most 2 MiB")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	faces, err := s.faces.DetectFaces(ctx, req.Msg.Data, contentType)
	if err != nil {
		s.logger.Warn("Face detection failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}
	if faces != 1 {
		s.logger.Info("Avatar rejected", "user_id", c.UserID, "faces", faces)
		return nil, toConnectError(errNoFace)
	}

	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	file := &models.StoredFile{OwnerID: c.UserID, ContentType: contentType, Data: req.Msg.Data}
	if err := s.store.PutFile(ctx, file); err != nil {
		s.logger.Error("Failed to store avatar", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}

	previous := profile.AvatarFileID
	profile.AvatarFileID = file.ID
	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, toConnectError(err)
	}
	if previous != "" {
		if err := s.store.DeleteFile(ctx, previous); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to delete old avatar", "file_id", previous, "error", err)
		}
	}
	s.events.publish(profileChange(realtime.OpUpdate, profile))

	s.logger.Info("Avatar uploaded", "user_id", c.UserID, "bytes", len(req.Msg.Data))
	return connect.NewResponse(&api.UploadAvatarResponse{Profile: toAPIProfile(profile, true)}), nil
}

// Avatar returns the avatar image of a profile.
func (s *ProfileService) Avatar(ctx context.Context, profileID string) (*models.StoredFile, error) {
	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.AvatarFileID == "" {
		return nil, storage.ErrNotFound
	}
	return s.store.GetFile(ctx, profile.AvatarFileID)
}

// DeleteAccount removes the caller's profile and everything it owns after
// re-checking the password.
func (s *ProfileService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if _, err := s.authenticator.Authenticate(ctx, profile.Email, req.Msg.Password); err != nil {
		s.logger.Warn("DeleteAccount password check failed", "user_id", c.UserID)
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrInvalidCredentials)
	}

	if err := s.store.DeleteProfile(ctx, c.UserID); err != nil {
		s.logger.Error("DeleteAccount failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}
	if profile.AvatarFileID != "" {
		if err := s.store.DeleteFile(ctx, profile.AvatarFileID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to delete avatar", "file_id", profile.AvatarFileID, "error", err)
		}
	}

	s.events.publish(
		profileChange(realtime.OpDelete, profile),
		realtime.Change{Key: realtime.ItemsKey(profile.TenantID), Table: realtime.TableItems, Op: realtime.OpResync, TenantID: profile.TenantID},
	)

	s.logger.Info("Account deleted", "user_id", c.UserID)
	return connect.NewResponse(&api.DeleteAccountResponse{}), nil
}

func listAwarded(ctx context.Context, store storage.RewardStore, profileID string) ([]*api.Badge, error) {
	awarded, err := store.ListAwardedBadges(ctx, profileID)
	if err != nil {
		return nil, err
	}
	catalogue, err := store.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*models.Badge, len(catalogue))
	for _, b := range catalogue {
		byCode[b.Code] = b
	}

	out := make([]*api.Badge, 0, len(awarded))
	for _, a := range awarded {
		badge := &api.Badge{Code: a.Code, AwardedAt: a.AwardedAt}
		if b, ok := byCode[a.Code]; ok {
			badge.Name = b.Name
			badge.Description = b.Description
		}
		out = append(out, badge)
	}
	return out, nil
}
