package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/mocks"
)

type userFixture struct {
	users      *mocks.MockUserRepository
	owners     *mocks.MockOwnerRepository
	dispatcher *recordingDispatcher
	service    *UserService
}

func newUserService(t *testing.T) userFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := userFixture{
		users:      mocks.NewMockUserRepository(ctrl),
		owners:     mocks.NewMockOwnerRepository(ctrl),
		dispatcher: &recordingDispatcher{},
	}
	f.service = NewUserService(UserDependencies{UserRepo: f.users, OwnerRepo: f.owners, Dispatcher: f.dispatcher})
	return f
}

func aliceUser() *domain.User {
	return &domain.User{ID: "u-alice", Username: "alice", Email: "alice@example.com", Enabled: true, Roles: []domain.Role{domain.RoleUser}}
}

func TestUserService_Profile(t *testing.T) {
	t.Parallel()
	f := newUserService(t)
	f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
	f.owners.EXPECT().GetByUserID(gomock.Any(), "u-alice").Return(nil, pgx.ErrNoRows)

	profile, err := f.service.Profile(context.Background(), alicePrincipal)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Nil(t, profile.Owner)
}

func TestUserService_Profile_Anonymous(t *testing.T) {
	t.Parallel()
	f := newUserService(t)
	_, err := f.service.Profile(context.Background(), nil)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestUserService_UpdateProfile_CreatesOwner(t *testing.T) {
	t.Parallel()
	f := newUserService(t)
	f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
	f.owners.EXPECT().GetByUserID(gomock.Any(), "u-alice").Return(nil, pgx.ErrNoRows)
	f.owners.EXPECT().ExistsByEmail(gomock.Any(), "alice@example.com").Return(false, nil)
	f.owners.EXPECT().ExistsByPhone(gomock.Any(), "+7 999 123 45 67").Return(false, nil)
	f.owners.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	profile, err := f.service.UpdateProfile(context.Background(), alicePrincipal, ProfileUpdateInput{
		Email: "alice@example.com", FirstName: "Alice", LastName: "Liddell", Phone: "+7 999 123 45 67",
	})
	require.NoError(t, err)
	require.NotNil(t, profile.Owner)
	assert.Equal(t, "u-alice", *profile.Owner.UserID)
	assert.Equal(t, []events.EventType{events.EventOwnerCreated}, f.dispatcher.types())
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	t.Parallel()
	f := newUserService(t)
	f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
	f.owners.EXPECT().GetByUserID(gomock.Any(), "u-alice").Return(aliceOwner(), nil)
	f.users.EXPECT().ExistsByEmail(gomock.Any(), "taken@example.com").Return(true, nil)

	_, err := f.service.UpdateProfile(context.Background(), alicePrincipal, ProfileUpdateInput{Email: "taken@example.com"})
	requireStatus(t, err, http.StatusConflict)
}

func TestUserService_UpdateProfile_OwnerConflictWritesNothing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		setup     func(f userFixture)
		wantField string
	}{
		{
			name: "owner email taken",
			setup: func(f userFixture) {
				f.owners.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(true, nil)
			},
			wantField: "email",
		},
		{
			name: "owner phone taken",
			setup: func(f userFixture) {
				f.owners.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(false, nil)
				f.owners.EXPECT().ExistsByPhone(gomock.Any(), "+7 999 000 00 00").Return(true, nil)
			},
			wantField: "phone",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newUserService(t)
			f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
			f.owners.EXPECT().GetByUserID(gomock.Any(), "u-alice").Return(aliceOwner(), nil)
			f.users.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(false, nil)
			f.users.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			f.owners.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			tt.setup(f)

			_, err := f.service.UpdateProfile(context.Background(), alicePrincipal, ProfileUpdateInput{
				Email: "new@example.com", Phone: "+7 999 000 00 00",
			})
			domainErr := requireStatus(t, err, http.StatusConflict)
			assert.Equal(t, tt.wantField, domainErr.Details["field"])
			assert.Empty(t, f.dispatcher.types())
		})
	}
}

func TestUserService_UpdateProfile_UpdatesBoth(t *testing.T) {
	t.Parallel()
	f := newUserService(t)
	f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
	f.owners.EXPECT().GetByUserID(gomock.Any(), "u-alice").Return(aliceOwner(), nil)
	f.users.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(false, nil)
	f.owners.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(false, nil)
	gomock.InOrder(
		f.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		f.owners.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
	)

	profile, err := f.service.UpdateProfile(context.Background(), alicePrincipal, ProfileUpdateInput{Email: "New@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.User.Email)
	assert.Equal(t, "new@example.com", profile.Owner.Email)
	assert.Equal(t, []events.EventType{events.EventOwnerUpdated}, f.dispatcher.types())
}

func TestUserService_SetRoles(t *testing.T) {
	t.Parallel()

	t.Run("admin grants", func(t *testing.T) {
		t.Parallel()
		f := newUserService(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(aliceUser(), nil)
		f.users.EXPECT().SetRoles(gomock.Any(), "u-alice", []domain.Role{domain.RoleAdmin, domain.RoleUser}).Return(nil)

		user, err := f.service.SetRoles(context.Background(), adminPrincipal, "alice", []string{"user", "ADMIN", "admin"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleUser}, user.Roles)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		t.Parallel()
		f := newUserService(t)
		_, err := f.service.SetRoles(context.Background(), alicePrincipal, "alice", []string{"ADMIN"})
		requireForbidden(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		f := newUserService(t)
		_, err := f.service.SetRoles(context.Background(), adminPrincipal, "alice", []string{"ROLE_ADMIN"})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()
		f := newUserService(t)
		_, err := f.service.SetRoles(context.Background(), adminPrincipal, "alice", nil)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		f := newUserService(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, pgx.ErrNoRows)
		_, err := f.service.SetRoles(context.Background(), adminPrincipal, "ghost", []string{"USER"})
		requireStatus(t, err, http.StatusNotFound)
	})
}
