package state

import (
	"log"
	"sync"
)

// Store applies reducer-style mutations to a WizardState. All mutations are
// serialized behind a mutex and the persist hook runs after each one, so
// concurrent timer callbacks (poller, saver) never observe a half-applied
// merge.
type Store struct {
	mu      sync.Mutex
	state   WizardState
	persist func(WizardState) error
}

// New returns an in-memory store seeded with the initial state.
func New() *Store {
	return &Store{state: Initial()}
}

// NewFrom returns a store seeded with an existing state, persisting through
// the given hook after every mutation. A nil hook disables persistence.
func NewFrom(st WizardState, persist func(WizardState) error) *Store {
	if st.Users == nil {
		st.Users = map[string]CustomerRecord{}
	}
	return &Store{state: st, persist: persist}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

func (s *Store) mutate(fn func(*WizardState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	if s.persist != nil {
		if err := s.persist(cloneState(s.state)); err != nil {
			log.Printf("state: persist failed: %v", err)
		}
	}
}

// SetStep sets the current step index unconditionally. Gating predicates are
// the caller's responsibility; back navigation uses this too.
func (s *Store) SetStep(n int) {
	s.mutate(func(w *WizardState) { w.CurrentStep = n })
}

// SetLeadID records the upstream lead identifier. The id is stable once
// assigned; callers only set it when the server returns one.
func (s *Store) SetLeadID(id string) {
	s.mutate(func(w *WizardState) { w.LeadID = id })
}

// SetCustomerID records the registered account identifier.
func (s *Store) SetCustomerID(id string) {
	s.mutate(func(w *WizardState) { w.CustomerID = id })
}

// SetLoading flips the async-operation flag and clears the last error when a
// new operation starts.
func (s *Store) SetLoading(loading bool) {
	s.mutate(func(w *WizardState) {
		w.IsLoading = loading
		if loading {
			w.Error = ""
		}
	})
}

// SetError records the last async-operation error and clears the loading flag.
func (s *Store) SetError(msg string) {
	s.mutate(func(w *WizardState) {
		w.IsLoading = false
		w.Error = msg
	})
}

// UpdateFormData shallow-merges the patch into the step data. Keys absent
// from the patch are never removed.
func (s *Store) UpdateFormData(p Patch) {
	s.mutate(func(w *WizardState) {
		d := &w.StepData
		if p.SiteName != nil {
			d.SiteName = *p.SiteName
		}
		if p.BusinessName != nil {
			d.BusinessName = *p.BusinessName
		}
		if p.SiteType != nil {
			d.SiteType = *p.SiteType
		}
		if p.SiteVibe != nil {
			d.SiteVibe = *p.SiteVibe
		}
		if p.Description != nil {
			d.Description = *p.Description
		}
		if p.Features != nil {
			d.Features = append([]string(nil), p.Features...)
		}
		if p.Email != nil {
			d.Email = *p.Email
		}
		if p.Phone != nil {
			d.Phone = *p.Phone
		}
	})
}

// MergeUser shallow-merges data into the customer record for the given id,
// creating the record if absent. Section values present in data replace the
// existing sections wholesale; sections absent from data are kept. This is
// the top-level half of the merge asymmetry.
func (s *Store) MergeUser(customerID string, data map[string]any) {
	s.mutate(func(w *WizardState) {
		rec := w.Users[customerID]
		if rec == nil {
			rec = CustomerRecord{}
		}
		for k, v := range data {
			rec[k] = cloneValue(v)
		}
		w.Users[customerID] = rec
	})
}

// MergeUserField updates a single section of a customer record. When both the
// existing value and data are plain maps their keys are merged; otherwise
// data overwrites the section. The conditional deep-path half of the merge
// asymmetry: updating users.<id>.status must not clobber users.<id>.site.
func (s *Store) MergeUserField(customerID, field string, data any) {
	s.mutate(func(w *WizardState) {
		rec := w.Users[customerID]
		if rec == nil {
			rec = CustomerRecord{}
			w.Users[customerID] = rec
		}
		existing, existingIsMap := rec[field].(map[string]any)
		incoming, incomingIsMap := data.(map[string]any)
		if existingIsMap && incomingIsMap {
			merged := make(map[string]any, len(existing)+len(incoming))
			for k, v := range existing {
				merged[k] = v
			}
			for k, v := range incoming {
				merged[k] = cloneValue(v)
			}
			rec[field] = merged
			return
		}
		rec[field] = cloneValue(data)
	})
}

// ResetAll restores the entire state to initial values under a fresh session.
func (s *Store) ResetAll() {
	s.mutate(func(w *WizardState) { *w = Initial() })
}

// ResetStepData clears the lead and customer ids, returns to step 0, and
// resets the form data, but keeps the accumulated Users records so an
// existing account can claim another store.
func (s *Store) ResetStepData() {
	s.mutate(func(w *WizardState) {
		w.LeadID = ""
		w.CustomerID = ""
		w.CurrentStep = 0
		w.StepData = defaultStepData()
	})
}

func cloneState(w WizardState) WizardState {
	out := w
	out.StepData.Features = append([]string(nil), w.StepData.Features...)
	out.Users = make(map[string]CustomerRecord, len(w.Users))
	for id, rec := range w.Users {
		cloned := make(CustomerRecord, len(rec))
		for k, v := range rec {
			cloned[k] = cloneValue(v)
		}
		out.Users[id] = cloned
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
