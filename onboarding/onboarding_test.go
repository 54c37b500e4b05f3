package onboarding_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/events"
	"github.com/effective-security/finmcp/mocks/mockadapters"
	"github.com/effective-security/finmcp/mocks/mockstore"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/onboarding"
	"github.com/effective-security/finmcp/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var kyc = &model.KycDetail{
	DocumentType: model.DocumentTypeAadhaar,
	DocumentID:   "1234-5678-9012",
	FullName:     "Asha Rao",
	DateOfBirth:  "01-01-1990",
	Gender:       "F",
	Address:      "Pune",
}

var timeout = &adapters.Error{Adapter: adapters.NameExtraction, Kind: adapters.KindTimeout}

type fixture struct {
	extractor *mockadapters.MockExtractor
	store     store.Store
	recorder  *events.Recorder
	svc       *onboarding.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		extractor: mockadapters.NewMockExtractor(ctrl),
		store:     store.NewMemoryStore(),
		recorder:  events.NewRecorder(),
	}
	f.svc = onboarding.New(f.extractor, f.store, f.store, f.recorder)
	return f
}

func TestOnboard_SuccessWithoutLead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil)

	outcome, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, &model.OnboardingOutcome{
		ClientID: "C1",
		Status:   model.OnboardingSuccess,
		Message:  "Onboarding successful.",
	}, outcome)

	client, err := f.store.GetClient(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, model.KycStatusCompleted, client.KycStatus)
	assert.Equal(t, []model.KycDetail{*kyc}, client.KycDetails)

	// no lead is created as a side effect
	_, err = f.store.FindLeadByContactNumber(ctx, "C1")
	assert.True(t, store.IsNotFound(err))

	evs := f.recorder.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "C1", evs[0].ClientID)
	assert.Equal(t, model.OnboardingSuccess, evs[0].Status)
	assert.Equal(t, model.KycStatusCompleted, evs[0].KycStatus)
	assert.Zero(t, evs[0].LeadID)
}

func TestOnboard_TimeoutWithLead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.store.UpsertLead(ctx, &model.Lead{ID: 11, FirstName: "Ravi", Status: model.LeadStatusNew, ContactNumber: "C2"})
	require.NoError(t, err)

	f.extractor.EXPECT().Extract(gomock.Any(), "C2").Return(nil, timeout)

	outcome, err := f.svc.Onboard(ctx, "C2")
	require.NoError(t, err)
	assert.Equal(t, &model.OnboardingOutcome{
		ClientID: "C2",
		Status:   model.OnboardingFailed,
		Message:  "Onboarding failed, please try again later.",
	}, outcome)

	client, err := f.store.GetClient(ctx, "C2")
	require.NoError(t, err)
	assert.Equal(t, model.KycStatusFailed, client.KycStatus)
	assert.Empty(t, client.KycDetails)

	lead, err := f.store.GetLead(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusFailed, lead.Status)
	assert.Equal(t, "Ravi", lead.FirstName)

	evs := f.recorder.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, int64(11), evs[0].LeadID)
	assert.Equal(t, model.LeadStatusFailed, evs[0].LeadStatus)
}

func TestOnboard_LeadOnboarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, l := range []*model.Lead{
		{ID: 5, Status: model.LeadStatusNew, ContactNumber: "9876543210"},
		{ID: 3, Status: model.LeadStatusNew, ContactNumber: "9876543210"},
	} {
		_, err := f.store.UpsertLead(ctx, l)
		require.NoError(t, err)
	}
	f.extractor.EXPECT().Extract(gomock.Any(), "9876543210").Return(kyc, nil)

	outcome, err := f.svc.Onboard(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingSuccess, outcome.Status)

	// only the first lead transitions
	l3, err := f.store.GetLead(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusOnboarded, l3.Status)
	l5, err := f.store.GetLead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusNew, l5.Status)
}

func TestOnboard_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.store.UpsertLead(ctx, &model.Lead{ID: 1, Status: model.LeadStatusNew, ContactNumber: "C1"})
	require.NoError(t, err)
	f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil).Times(2)

	first, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	c1, err := f.store.GetClient(ctx, "C1")
	require.NoError(t, err)

	second, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	c2, err := f.store.GetClient(ctx, "C1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, c1.KycDetails, c2.KycDetails)
	assert.Equal(t, c1.KycStatus, c2.KycStatus)
	assert.Equal(t, c1.CreatedDate, c2.CreatedDate)

	list, err := f.store.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	lead, err := f.store.GetLead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusOnboarded, lead.Status)
}

func TestOnboard_ReonboardOverwrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	gomock.InOrder(
		f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil),
		f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(nil, &adapters.Error{Adapter: adapters.NameExtraction, Kind: adapters.KindRemoteRejected, Status: 500}),
	)

	_, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	outcome, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingFailed, outcome.Status)

	client, err := f.store.GetClient(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, model.KycStatusFailed, client.KycStatus)
	assert.Empty(t, client.KycDetails)
}

func TestOnboard_PublishFailureIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.recorder.Err = errors.New("broker down")
	f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil)

	outcome, err := f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingSuccess, outcome.Status)
	assert.Empty(t, f.recorder.Events())
}

func TestOnboard_ClientWriteFails(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	extractor := mockadapters.NewMockExtractor(ctrl)
	clients := mockstore.NewMockClientStore(ctrl)
	leads := mockstore.NewMockLeadStore(ctrl)
	svc := onboarding.New(extractor, clients, leads, nil)

	extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil)
	clients.EXPECT().UpsertClient(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	outcome, err := svc.Onboard(ctx, "C1")
	assert.Nil(t, outcome)
	assert.EqualError(t, err, "failed to save client C1: db down")
}

func TestOnboard_LeadStepIsBestEffort(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	extractor := mockadapters.NewMockExtractor(ctrl)
	leads := mockstore.NewMockLeadStore(ctrl)
	clients := store.NewMemoryStore()
	svc := onboarding.New(extractor, clients, leads, nil)

	extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(kyc, nil).Times(2)

	// lookup failure
	leads.EXPECT().FindLeadByContactNumber(gomock.Any(), "C1").Return(nil, errors.New("timeout"))
	outcome, err := svc.Onboard(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingSuccess, outcome.Status)

	// update failure
	leads.EXPECT().FindLeadByContactNumber(gomock.Any(), "C2").Return(&model.Lead{ID: 2, ContactNumber: "C2"}, nil)
	leads.EXPECT().UpsertLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *model.Lead) (*model.Lead, error) {
			assert.Equal(t, model.LeadStatusOnboarded, l.Status)
			return nil, errors.New("conflict")
		})
	outcome, err = svc.Onboard(ctx, "C2")
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingSuccess, outcome.Status)

	_, err = clients.GetClient(ctx, "C2")
	assert.NoError(t, err)
}

func TestOnboard_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string) (*model.KycDetail, error) {
			if id[len(id)-1]%2 == 0 {
				return nil, timeout
			}
			return kyc, nil
		}).AnyTimes()

	var wg sync.WaitGroup
	for _, id := range []string{"K1", "K2", "K3", "K4", "K5", "K6"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Onboard(ctx, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	list, err := f.store.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 6)
	for _, c := range list {
		assert.NoError(t, c.Validate())
	}
	assert.Len(t, f.recorder.Events(), 6)
}

func TestOnboard_InvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Onboard(context.Background(), "  ")
	assert.ErrorIs(t, err, onboarding.ErrClientIDRequired)
	_, err = f.svc.GetClient(context.Background(), "")
	assert.ErrorIs(t, err, onboarding.ErrClientIDRequired)
}

func TestGetClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.GetClient(ctx, "unknown")
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
	assert.EqualError(t, err, "Client not found with ID: unknown")

	f.extractor.EXPECT().Extract(gomock.Any(), "C1").Return(kyc, nil)
	_, err = f.svc.Onboard(ctx, "C1")
	require.NoError(t, err)

	client, err := f.svc.GetClient(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", client.ID)
}

func TestOnboard_KeyAsSupplied(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.extractor.EXPECT().Extract(gomock.Any(), " C9 ").Return(kyc, nil)
	_, err := f.svc.Onboard(ctx, " C9 ")
	require.NoError(t, err)

	client, err := f.svc.GetClient(ctx, " C9 ")
	require.NoError(t, err)
	assert.Equal(t, " C9 ", client.ID)

	_, err = f.svc.GetClient(ctx, "C9")
	assert.True(t, store.IsNotFound(err))
}
