package lead

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/state"
)

// fakeLeadClient assigns ids on create and records every request.
type fakeLeadClient struct {
	nextID  string
	ids     []string
	fields  []map[string]any
	err     error
	created int
}

func (f *fakeLeadClient) UpsertLead(_ context.Context, id string, fields map[string]any) (*api.LeadResult, error) {
	f.ids = append(f.ids, id)
	f.fields = append(f.fields, fields)
	if f.err != nil {
		return nil, f.err
	}
	if id == "" {
		f.created++
		id = f.nextID
	}
	return &api.LeadResult{LeadID: id}, nil
}

func strPtr(s string) *string { return &s }

func TestSave_AdoptsLeadIDOnce(t *testing.T) {
	client := &fakeLeadClient{nextID: "lead-7"}
	store := state.New()
	store.UpdateFormData(state.Patch{SiteName: strPtr("kicksonfire"), BusinessName: strPtr("Kicks On Fire")})
	saver := NewSaver(client, store)

	id, err := saver.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lead-7", id)

	// The second call carries the adopted id: update, not create.
	id, err = saver.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lead-7", id)

	assert.Equal(t, []string{"", "lead-7"}, client.ids)
	assert.Equal(t, 1, client.created)
}

func TestSave_SendsAccumulatedStepData(t *testing.T) {
	client := &fakeLeadClient{nextID: "lead-1"}
	store := state.New()
	store.UpdateFormData(state.Patch{SiteName: strPtr("toyscity")})
	store.UpdateFormData(state.Patch{SiteVibe: strPtr("playful"), Features: []string{"contact_form"}})
	saver := NewSaver(client, store)

	_, err := saver.Save(context.Background())
	require.NoError(t, err)

	sent := client.fields[0]
	assert.Equal(t, "toyscity", sent["siteName"])
	assert.Equal(t, "playful", sent["siteVibe"])
	assert.Equal(t, state.DefaultSiteType, sent["siteType"])
	assert.Equal(t, []any{"contact_form"}, sent["features"])
}

func TestSave_FailureRecordsErrorAndKeepsLeadUnset(t *testing.T) {
	client := &fakeLeadClient{err: assert.AnError}
	store := state.New()
	saver := NewSaver(client, store)

	_, err := saver.Save(context.Background())
	require.Error(t, err)

	snap := store.Snapshot()
	assert.Empty(t, snap.LeadID)
	assert.False(t, snap.IsLoading)
	assert.NotEmpty(t, snap.Error)
}

func TestSave_ClearsErrorOnNextAttempt(t *testing.T) {
	client := &fakeLeadClient{err: assert.AnError}
	store := state.New()
	saver := NewSaver(client, store)

	_, _ = saver.Save(context.Background())
	client.err = nil
	client.nextID = "lead-2"

	_, err := saver.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, store.Snapshot().Error)
}
