// Package lead synchronizes in-progress wizard form data to the remote lead
// record. The save is an idempotent upsert: the first successful call adopts
// the server-assigned lead id, and every later call updates that same record.
package lead

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/state"
)

// Client is the remote surface the saver needs.
type Client interface {
	UpsertLead(ctx context.Context, id string, fields map[string]any) (*api.LeadResult, error)
}

// Saver persists wizard progress to the lead record.
type Saver struct {
	client Client
	store  *state.Store
}

// NewSaver creates a saver bound to the store.
func NewSaver(client Client, store *state.Store) *Saver {
	return &Saver{client: client, store: store}
}

// Save upserts the current step data and returns the lead id. Safe to call
// once per step: after the first success the stable lead id keeps the server
// updating instead of creating. Failure is reported, not retried; the calling
// step decides whether it blocks advancement.
func (s *Saver) Save(ctx context.Context) (string, error) {
	snap := s.store.Snapshot()
	s.store.SetLoading(true)

	fields, err := stepDataFields(snap.StepData)
	if err != nil {
		s.store.SetError(err.Error())
		return "", err
	}

	result, err := s.client.UpsertLead(ctx, snap.LeadID, fields)
	if err != nil {
		s.store.SetError(err.Error())
		return "", fmt.Errorf("failed to save progress: %w", err)
	}

	s.store.SetLoading(false)
	if snap.LeadID == "" && result.LeadID != "" {
		s.store.SetLeadID(result.LeadID)
	}
	return s.store.Snapshot().LeadID, nil
}

// stepDataFields flattens the step data into the request body's field map.
func stepDataFields(d state.StepData) (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode step data: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten step data: %w", err)
	}
	return fields, nil
}
