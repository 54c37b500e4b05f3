// Package storetest provides the conformance tests of store.Store implementations.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FakeKycDetail returns random KYC details
func FakeKycDetail(f *gofakeit.Faker) *model.KycDetail {
	return &model.KycDetail{
		DocumentType: model.DocumentTypePassport,
		DocumentID:   f.Regex("[A-Z][0-9]{7}"),
		FullName:     f.Name(),
		DateOfBirth:  f.Date().Format("02-01-2006"),
		Gender:       f.Gender(),
		Address:      f.Address().Address,
	}
}

// FakeLead returns a random lead with the given ID, contact and status
func FakeLead(f *gofakeit.Faker, id int64, contact, status string) *model.Lead {
	return &model.Lead{
		ID:            id,
		FirstName:     f.FirstName(),
		LastName:      f.LastName(),
		Company:       f.Company(),
		Title:         f.JobTitle(),
		Type:          "individual",
		Source:        "web",
		Status:        status,
		ContactNumber: contact,
	}
}

// Run exercises the store contract. Keys are unique per run,
// so the store may be shared with other data.
func Run(t *testing.T, s store.Store) {
	faker := gofakeit.New(0)
	run := faker.Regex("[a-z]{8}")
	baseID := int64(faker.IntRange(1, 1<<30)) * 1000

	t.Run("client_not_found", func(t *testing.T) {
		ctx := context.Background()
		_, err := s.GetClient(ctx, "unknown-"+run)
		require.Error(t, err)
		assert.True(t, store.IsNotFound(err))
		assert.EqualError(t, err, "Client not found with ID: unknown-"+run)

		var nf *store.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Client", nf.Entity)
	})

	t.Run("client_upsert", func(t *testing.T) {
		ctx := context.Background()
		id := "C1-" + run

		kyc := FakeKycDetail(faker)
		first, err := s.UpsertClient(ctx, model.NewClient(id, kyc))
		require.NoError(t, err)
		assert.False(t, first.CreatedDate.IsZero())
		assert.Equal(t, first.CreatedDate, first.LastModifiedDate)

		got, err := s.GetClient(ctx, id)
		require.NoError(t, err)
		if diff := cmp.Diff(first, got); diff != "" {
			t.Errorf("GetClient mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, model.KycStatusCompleted, got.KycStatus)
		require.Len(t, got.KycDetails, 1)
		assert.Equal(t, *kyc, got.KycDetails[0])

		// last write wins, created date is preserved
		second, err := s.UpsertClient(ctx, model.NewClient(id, nil))
		require.NoError(t, err)
		assert.True(t, second.CreatedDate.Equal(first.CreatedDate.Time))
		assert.True(t, second.LastModifiedDate.After(first.LastModifiedDate.Time))

		got, err = s.GetClient(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.KycStatusFailed, got.KycStatus)
		assert.Empty(t, got.KycDetails)
		assert.NotNil(t, got.KycDetails)
		assert.True(t, got.CreatedDate.Equal(first.CreatedDate.Time))
		assert.True(t, got.LastModifiedDate.Equal(second.LastModifiedDate.Time))
	})

	t.Run("client_copy", func(t *testing.T) {
		ctx := context.Background()
		id := "C2-" + run
		in := model.NewClient(id, FakeKycDetail(faker))
		out, err := s.UpsertClient(ctx, in)
		require.NoError(t, err)

		in.KycDetails[0].FullName = "changed"
		out.KycDetails[0].FullName = "changed"

		got, err := s.GetClient(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, "changed", got.KycDetails[0].FullName)
	})

	t.Run("client_invalid", func(t *testing.T) {
		ctx := context.Background()
		_, err := s.UpsertClient(ctx, &model.Client{KycStatus: model.KycStatusFailed})
		assert.EqualError(t, err, "client id is required")
		_, err = s.UpsertClient(ctx, &model.Client{ID: "C3-" + run, KycStatus: model.KycStatusCompleted})
		assert.Error(t, err)
		_, err = s.GetClient(ctx, "C3-"+run)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("client_list", func(t *testing.T) {
		ctx := context.Background()
		a, b, c := "LA-"+run, "LB-"+run, "LC-"+run
		for _, id := range []string{a, b, c, a} {
			_, err := s.UpsertClient(ctx, model.NewClient(id, nil))
			require.NoError(t, err)
		}

		list, err := s.ListClients(ctx)
		require.NoError(t, err)

		var ours []string
		for i, cl := range list {
			if i > 0 {
				assert.False(t, cl.LastModifiedDate.After(list[i-1].LastModifiedDate.Time), "must be sorted by last modified desc")
			}
			if cl.ID == a || cl.ID == b || cl.ID == c {
				ours = append(ours, cl.ID)
			}
		}
		assert.Equal(t, []string{a, c, b}, ours)
	})

	t.Run("lead_not_found", func(t *testing.T) {
		ctx := context.Background()
		_, err := s.FindLeadByContactNumber(ctx, "000-"+run)
		assert.True(t, store.IsNotFound(err))
		assert.EqualError(t, err, "Lead not found with contact: 000-"+run)

		_, err = s.GetLead(ctx, baseID+999)
		assert.True(t, store.IsNotFound(err))
		assert.EqualError(t, err, fmt.Sprintf("Lead not found with ID: %d", baseID+999))

		_, err = s.UpsertLead(ctx, &model.Lead{ContactNumber: "1"})
		assert.EqualError(t, err, "lead id is required")
	})

	t.Run("lead_lookup", func(t *testing.T) {
		ctx := context.Background()
		contact := "98-" + run
		status := "new-" + run

		second := FakeLead(faker, baseID+2, contact, status)
		first := FakeLead(faker, baseID+1, contact, status)
		other := FakeLead(faker, baseID+3, "77-"+run, status)
		for _, l := range []*model.Lead{second, first, other} {
			_, err := s.UpsertLead(ctx, l)
			require.NoError(t, err)
		}

		got, err := s.GetLead(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		got, err = s.FindLeadByContactNumber(ctx, contact)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID, "lowest ID wins")

		list, err := s.ListLeadsByStatus(ctx, status)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []int64{first.ID, second.ID, other.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

		// status change moves the lead between status lists
		first.Status = "onboarded-" + run
		_, err = s.UpsertLead(ctx, first)
		require.NoError(t, err)

		list, err = s.ListLeadsByStatus(ctx, status)
		require.NoError(t, err)
		assert.Len(t, list, 2)
		list, err = s.ListLeadsByStatus(ctx, first.Status)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, first, list[0])

		// contact change moves the lead between contacts
		first.ContactNumber = "55-" + run
		_, err = s.UpsertLead(ctx, first)
		require.NoError(t, err)
		got, err = s.FindLeadByContactNumber(ctx, contact)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		list, err = s.ListLeadsByStatus(ctx, "none-"+run)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("concurrent_upserts", func(t *testing.T) {
		ctx := context.Background()
		id := "CC-" + run

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var kyc *model.KycDetail
				if i%2 == 0 {
					kyc = &model.KycDetail{FullName: fmt.Sprintf("name-%d", i)}
				}
				_, err := s.UpsertClient(ctx, model.NewClient(id, kyc))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		got, err := s.GetClient(ctx, id)
		require.NoError(t, err)
		assert.NoError(t, got.Validate(), "no partial writes")
	})

	t.Run("opaque_keys", func(t *testing.T) {
		ctx := context.Background()
		plain := "K1-" + run
		for _, id := range []string{plain, "x/../" + plain, plain + "/", "./" + plain, plain + "%2F"} {
			_, err := s.UpsertClient(ctx, model.NewClient(id, nil))
			require.NoError(t, err)
		}
		plainKyc := FakeKycDetail(faker)
		_, err := s.UpsertClient(ctx, model.NewClient(plain, plainKyc))
		require.NoError(t, err)

		got, err := s.GetClient(ctx, "x/../"+plain)
		require.NoError(t, err)
		assert.Equal(t, "x/../"+plain, got.ID)
		assert.Equal(t, model.KycStatusFailed, got.KycStatus)

		got, err = s.GetClient(ctx, plain)
		require.NoError(t, err)
		assert.Equal(t, model.KycStatusCompleted, got.KycStatus)

		// a contact number shaped like a lead key
		target := FakeLead(faker, baseID+50, "50-"+run, "opaque-"+run)
		_, err = s.UpsertLead(ctx, target)
		require.NoError(t, err)
		contact := fmt.Sprintf("../leads/%d", baseID+50)
		alias := FakeLead(faker, baseID+51, contact, "opaque-"+run)
		_, err = s.UpsertLead(ctx, alias)
		require.NoError(t, err)

		lead, err := s.FindLeadByContactNumber(ctx, contact)
		require.NoError(t, err)
		assert.Equal(t, alias.ID, lead.ID)
		lead, err = s.GetLead(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, target, lead)
	})
}
