package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/infra/storage/database"
	rulesRepo "github.com/m04kA/venuebook/internal/infra/storage/rules"
	catalogClient "github.com/m04kA/venuebook/internal/integrations/catalog"
	"github.com/m04kA/venuebook/internal/service/rules/models"
	"github.com/m04kA/venuebook/pkg/auth"
	"github.com/m04kA/venuebook/pkg/dbmetrics"
	"github.com/m04kA/venuebook/pkg/logger"
	"github.com/m04kA/venuebook/pkg/psqlbuilder"
	"github.com/m04kA/venuebook/pkg/ptr"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockCatalog) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	args := m.Called(ctx, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const (
	venueID = int64(3)
	ownerID = int64(11)
)

var testDefaults = Defaults{
	SlotMinutes:         60,
	MaxAdvanceDays:      30,
	CancelCutoffMinutes: 1440,
	BucketMinutes:       5,
}

func newTestService(t *testing.T) (*Service, *MockCatalog) {
	t.Helper()
	db := dbmetrics.Wrap(database.OpenTestSQLite(t), nil)
	repo, err := rulesRepo.NewRepository(db, psqlbuilder.DialectSQLite)
	require.NoError(t, err)

	catalog := new(MockCatalog)
	catalog.On("GetVenue", mock.Anything, venueID).Return(&domain.Venue{ID: venueID, OwnerID: ownerID}, nil).Maybe()
	catalog.On("GetVenue", mock.Anything, int64(404)).Return(nil, catalogClient.ErrVenueNotFound).Maybe()
	catalog.On("GetCourt", mock.Anything, int64(7)).Return(&domain.Court{ID: 7, VenueID: venueID}, nil).Maybe()
	catalog.On("GetCourt", mock.Anything, int64(8)).Return(&domain.Court{ID: 8, VenueID: 99}, nil).Maybe()

	svc := NewService(repo, catalog, testDefaults, logger.NewNop())
	svc.timeProvider = fixedClock{now: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}
	return svc, catalog
}

func upsertRequest(actor domain.Actor, courtID *int64, slotMinutes int) *models.UpsertRulesRequest {
	return &models.UpsertRulesRequest{
		Actor:               actor,
		VenueID:             venueID,
		CourtID:             courtID,
		SlotMinutes:         slotMinutes,
		MaxAdvanceDays:      14,
		CancelCutoffMinutes: 720,
	}
}

func TestService_Effective_FallsBackToDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	rules, err := svc.Effective(context.Background(), venueID, 7)
	require.NoError(t, err)
	assert.Zero(t, rules.ID)
	assert.Equal(t, 60, rules.SlotMinutes)
	assert.Equal(t, 24*time.Hour, rules.CancelCutoff())
	assert.Equal(t, 5, rules.GridMinutes)
}

func TestService_Upsert_CreatesThenReplaces(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := domain.Actor{UserID: ownerID, Role: auth.RoleOwner}

	created, err := svc.Upsert(ctx, upsertRequest(owner, nil, 30))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	replaced, err := svc.Upsert(ctx, upsertRequest(owner, nil, 90))
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)

	rules, err := svc.Effective(ctx, venueID, 7)
	require.NoError(t, err)
	assert.Equal(t, 90, rules.SlotMinutes)
	assert.Equal(t, 12*time.Hour, rules.CancelCutoff())
	assert.Equal(t, 5, rules.GridMinutes)

	_, err = svc.Upsert(ctx, upsertRequest(owner, ptr.Ptr(int64(7)), 45))
	require.NoError(t, err)

	rules, err = svc.Effective(ctx, venueID, 7)
	require.NoError(t, err)
	assert.Equal(t, 45, rules.SlotMinutes)

	list, err := svc.List(ctx, venueID, owner)
	require.NoError(t, err)
	assert.Len(t, list.Rules, 2)
	assert.Equal(t, 60, list.Defaults.SlotMinutes)
}

func TestService_Upsert_Errors(t *testing.T) {
	owner := domain.Actor{UserID: ownerID, Role: auth.RoleOwner}

	tests := []struct {
		name    string
		req     *models.UpsertRulesRequest
		wantErr error
	}{
		{"stranger", upsertRequest(domain.Actor{UserID: 5, Role: auth.RoleOwner}, nil, 60), ErrAccessDenied},
		{"slot not multiple of bucket", upsertRequest(owner, nil, 62), ErrInvalidInput},
		{"slot too short", upsertRequest(owner, nil, 0), ErrInvalidInput},
		{"court of another venue", upsertRequest(owner, ptr.Ptr(int64(8)), 60), ErrCourtNotFound},
		{"unknown venue", &models.UpsertRulesRequest{Actor: owner, VenueID: 404, SlotMinutes: 60}, ErrVenueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Upsert(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Upsert_AdminBypassesOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Upsert(context.Background(), upsertRequest(domain.Actor{UserID: 1, Role: auth.RoleAdmin}, nil, 60))
	assert.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := domain.Actor{UserID: ownerID, Role: auth.RoleOwner}

	assert.ErrorIs(t, svc.Delete(ctx, venueID, nil, owner), ErrRulesNotFound)

	_, err := svc.Upsert(ctx, upsertRequest(owner, nil, 30))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, venueID, nil, owner))

	rules, err := svc.Effective(ctx, venueID, 7)
	require.NoError(t, err)
	assert.Equal(t, 60, rules.SlotMinutes)
}
