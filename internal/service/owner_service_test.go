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
	"github.com/spec-kit/pet-service/internal/repository"
)

type ownerFixture struct {
	owners     *mocks.MockOwnerRepository
	pets       *mocks.MockPetRepository
	dispatcher *recordingDispatcher
	service    *OwnerService
}

func newOwnerService(t *testing.T) ownerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := ownerFixture{
		owners:     mocks.NewMockOwnerRepository(ctrl),
		pets:       mocks.NewMockPetRepository(ctrl),
		dispatcher: &recordingDispatcher{},
	}
	f.service = NewOwnerService(OwnerDependencies{OwnerRepo: f.owners, PetRepo: f.pets, Dispatcher: f.dispatcher})
	return f
}

func aliceOwner() *domain.Owner {
	return &domain.Owner{ID: ownerID1, UserID: strPtr("u-alice"), FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com", Phone: "+7 999 123 45 67"}
}

func validOwnerInput() OwnerInput {
	return OwnerInput{FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com", Phone: "+7 999 123 45 67", Address: "1 Rabbit Hole"}
}

func TestOwnerService_List_GroupsPets(t *testing.T) {
	t.Parallel()
	f := newOwnerService(t)
	ctx := context.Background()

	f.owners.EXPECT().List(ctx, "lid").Return([]domain.Owner{*aliceOwner(), {ID: ownerID2, FirstName: "Bob"}}, nil)
	f.pets.EXPECT().List(ctx, repository.PetFilter{}).Return([]domain.Pet{
		{ID: petID1, OwnerID: ownerID1}, {ID: petID2, OwnerID: ownerID1}, {ID: petID3, OwnerID: ownerID9},
	}, nil)

	result, err := f.service.List(ctx, "lid")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result[0].Pets, 2)
	assert.Empty(t, result[1].Pets)
}

func TestOwnerService_List_Empty(t *testing.T) {
	t.Parallel()
	f := newOwnerService(t)
	f.owners.EXPECT().List(gomock.Any(), "").Return(nil, nil)

	result, err := f.service.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestOwnerService_Get_NotFound(t *testing.T) {
	t.Parallel()
	f := newOwnerService(t)
	f.owners.EXPECT().GetByID(gomock.Any(), missingOwnerID).Return(nil, pgx.ErrNoRows)

	_, err := f.service.Get(context.Background(), missingOwnerID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestOwnerService_MalformedIDIsNotFound(t *testing.T) {
	t.Parallel()
	f := newOwnerService(t)

	_, err := f.service.Get(context.Background(), "not-a-uuid")
	domainErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "not-a-uuid", domainErr.Details["id"])

	_, err = f.service.Pets(context.Background(), "42")
	requireStatus(t, err, http.StatusNotFound)

	err = f.service.Delete(context.Background(), adminPrincipal, "abc")
	requireStatus(t, err, http.StatusNotFound)

	err = f.service.Delete(context.Background(), alicePrincipal, "abc")
	requireForbidden(t, err)
}

func TestOwnerService_Create(t *testing.T) {
	t.Parallel()

	t.Run("admin creates", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().ExistsByEmail(gomock.Any(), "alice@example.com").Return(false, nil)
		f.owners.EXPECT().ExistsByPhone(gomock.Any(), "+7 999 123 45 67").Return(false, nil)
		f.owners.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *domain.Owner) error {
			o.ID = ownerID1
			return nil
		})

		owner, err := f.service.Create(context.Background(), adminPrincipal, validOwnerInput())
		require.NoError(t, err)
		assert.Equal(t, ownerID1, owner.ID)
		assert.Nil(t, owner.UserID)
		assert.Equal(t, []events.EventType{events.EventOwnerCreated}, f.dispatcher.types())
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		_, err := f.service.Create(context.Background(), alicePrincipal, validOwnerInput())
		requireForbidden(t, err)
	})

	t.Run("anonymous unauthorized", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		_, err := f.service.Create(context.Background(), nil, validOwnerInput())
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().ExistsByEmail(gomock.Any(), "alice@example.com").Return(false, nil)
		f.owners.EXPECT().ExistsByPhone(gomock.Any(), "+7 999 123 45 67").Return(true, nil)
		_, err := f.service.Create(context.Background(), adminPrincipal, validOwnerInput())
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		_, err := f.service.Create(context.Background(), adminPrincipal, OwnerInput{Email: "bad"})
		domainErr := requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, domainErr.Details, "firstName")
		assert.Contains(t, domainErr.Details, "email")
	})
}

func TestOwnerService_Update_Authorization(t *testing.T) {
	t.Parallel()

	t.Run("linked user updates own profile", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().GetByID(gomock.Any(), ownerID1).Return(aliceOwner(), nil)
		f.owners.EXPECT().OwnerSubject(gomock.Any(), ownerID1).Return("alice", nil)
		f.owners.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		in := validOwnerInput()
		in.Address = "2 Looking Glass"
		owner, err := f.service.Update(context.Background(), alicePrincipal, ownerID1, in)
		require.NoError(t, err)
		assert.Equal(t, "2 Looking Glass", owner.Address)
		assert.Equal(t, []events.EventType{events.EventOwnerUpdated}, f.dispatcher.types())
	})

	t.Run("third party forbidden", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().GetByID(gomock.Any(), ownerID1).Return(aliceOwner(), nil)
		f.owners.EXPECT().OwnerSubject(gomock.Any(), ownerID1).Return("alice", nil)

		_, err := f.service.Update(context.Background(), malloryPrincipal, ownerID1, validOwnerInput())
		requireForbidden(t, err)
		assert.Empty(t, f.dispatcher.types())
	})

	t.Run("admin updates unlinked owner with new email", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		unlinked := aliceOwner()
		unlinked.UserID = nil
		f.owners.EXPECT().GetByID(gomock.Any(), ownerID1).Return(unlinked, nil)
		f.owners.EXPECT().OwnerSubject(gomock.Any(), ownerID1).Return("", nil)
		f.owners.EXPECT().ExistsByEmail(gomock.Any(), "new@example.com").Return(true, nil)

		in := validOwnerInput()
		in.Email = "new@example.com"
		_, err := f.service.Update(context.Background(), adminPrincipal, ownerID1, in)
		requireStatus(t, err, http.StatusConflict)
	})
}

func TestOwnerService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("non-admin owner forbidden", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		err := f.service.Delete(context.Background(), alicePrincipal, ownerID1)
		requireForbidden(t, err)
	})

	t.Run("admin deletes", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().GetByID(gomock.Any(), ownerID1).Return(aliceOwner(), nil)
		f.owners.EXPECT().Delete(gomock.Any(), ownerID1).Return(nil)

		require.NoError(t, f.service.Delete(context.Background(), adminPrincipal, ownerID1))
		assert.Equal(t, []events.EventType{events.EventOwnerDeleted}, f.dispatcher.types())
	})

	t.Run("admin deletes missing", func(t *testing.T) {
		t.Parallel()
		f := newOwnerService(t)
		f.owners.EXPECT().GetByID(gomock.Any(), missingOwnerID).Return(nil, pgx.ErrNoRows)

		err := f.service.Delete(context.Background(), adminPrincipal, missingOwnerID)
		requireStatus(t, err, http.StatusNotFound)
	})
}
