package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

const (
	ownerID1       = "6f1c1d9e-3b2a-4c1d-8e2f-000000000001"
	ownerID2       = "6f1c1d9e-3b2a-4c1d-8e2f-000000000002"
	ownerID9       = "6f1c1d9e-3b2a-4c1d-8e2f-000000000009"
	missingOwnerID = "6f1c1d9e-3b2a-4c1d-8e2f-000000000404"
	petID1         = "7a2b3c4d-5e6f-4a1b-9c2d-000000000001"
	petID2         = "7a2b3c4d-5e6f-4a1b-9c2d-000000000002"
	petID3         = "7a2b3c4d-5e6f-4a1b-9c2d-000000000003"
	missingPetID   = "7a2b3c4d-5e6f-4a1b-9c2d-000000000404"
)

var (
	alicePrincipal   = &auth.Principal{Subject: "alice", UserID: "u-alice", Roles: []domain.Role{domain.RoleUser}}
	malloryPrincipal = &auth.Principal{Subject: "mallory", UserID: "u-mallory", Roles: []domain.Role{domain.RoleUser}}
	adminPrincipal   = &auth.Principal{Subject: "root", UserID: "u-root", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}}
)

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) SubscribeAll(events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

func requireStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, status, domainErr.HTTPStatus, domainErr.Message)
	return domainErr
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	requireStatus(t, err, http.StatusForbidden)
	require.ErrorIs(t, err, auth.ErrAccessDenied)
}

func strPtr(s string) *string { return &s }
