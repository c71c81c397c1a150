package api

type GetProfileRequest struct {
	// ProfileID defaults to the caller.
	ProfileID string `json:"profile_id,omitempty"`
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
	Badges  []*Badge `json:"badges"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
}

type UpdateProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type GetPreferencesRequest struct{}

type GetPreferencesResponse struct {
	Preferences *Preferences `json:"preferences"`
}

type UpdatePreferencesRequest struct {
	Preferences *Preferences `json:"preferences"`
}

type UpdatePreferencesResponse struct {
	Preferences *Preferences `json:"preferences"`
}

// UploadAvatarRequest carries the image inline; it is accepted only when
// exactly one face is detected.
type UploadAvatarRequest struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type UploadAvatarResponse struct {
	Profile *Profile `json:"profile"`
}

// DeleteAccountRequest requires the password again.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type DeleteAccountResponse struct{}
