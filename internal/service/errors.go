package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/storage"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	errForbidden        = errors.New("not allowed")
	errAdminOnly        = errors.New("administrator role required")
	errWrongTenant      = errors.New("resource belongs to another campus")
	errNotParticipant   = errors.New("not a participant of this conversation")
	errClaimOwnItem     = errors.New("cannot claim your own item")
	errItemNotClaimable = errors.New("item is not open for claims")
	errClaimResolved    = errors.New("claim already resolved")
	errNoFace           = errors.New("avatar must show exactly one face")
)

// fieldViolation is a request field that failed validation.
type fieldViolation struct {
	Field       string
	Description string
}

// invalidArgument builds a CodeInvalidArgument error carrying one detail per
// violation. Details are google.protobuf.Struct values with "field" and
// "description" keys.
func invalidArgument(violations ...fieldViolation) *connect.Error {
	msg := "invalid request"
	if len(violations) > 0 {
		msg = fmt.Sprintf("invalid %s: %s", violations[0].Field, violations[0].Description)
	}
	cerr := connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
	for _, v := range violations {
		st, err := structpb.NewStruct(map[string]any{
			"field":       v.Field,
			"description": v.Description,
		})
		if err != nil {
			continue
		}
		if detail, err := connect.NewErrorDetail(st); err == nil {
			cerr.AddDetail(detail)
		}
	}
	return cerr
}

// FieldViolations extracts the field/description pairs attached by the
// server to an InvalidArgument error.
func FieldViolations(err error) map[string]string {
	out := make(map[string]string)
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return out
	}
	for _, d := range cerr.Details() {
		msg, derr := d.Value()
		if derr != nil {
			continue
		}
		st, ok := msg.(*structpb.Struct)
		if !ok {
			continue
		}
		fields := st.GetFields()
		out[fields["field"].GetStringValue()] = fields["description"].GetStringValue()
	}
	return out
}

// toConnectError maps domain errors onto Connect codes. Anything unknown is
// Internal.
func toConnectError(err error) *connect.Error {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword):
		return invalidArgument(fieldViolation{Field: "password", Description: err.Error()})
	case errors.Is(err, errForbidden), errors.Is(err, errAdminOnly), errors.Is(err, errNotParticipant):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, errWrongTenant):
		// Other campuses' rows are indistinguishable from missing ones.
		return connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	case errors.Is(err, errClaimOwnItem), errors.Is(err, errItemNotClaimable), errors.Is(err, errClaimResolved), errors.Is(err, errNoFace):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, inference.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
