// Package state holds the wizard's single source of truth: step position,
// accumulated form data, and per-customer provisioning records. Mutations are
// applied serially through a Store and persisted after every change so an
// interrupted onboarding run can resume where it left off.
package state

import (
	"strconv"

	"github.com/google/uuid"
)

// StepData is the accumulated form data across all wizard steps. Fields are
// additive: later steps never clear values written by earlier ones except on
// an explicit reset. SiteName doubles as the requested subdomain.
type StepData struct {
	SiteName     string   `json:"siteName,omitempty"`
	BusinessName string   `json:"businessName,omitempty"`
	SiteType     string   `json:"siteType,omitempty"`
	SiteVibe     string   `json:"siteVibe,omitempty"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

// Patch is a partial StepData update. Nil pointer fields are left untouched;
// Features is only replaced when non-nil.
type Patch struct {
	SiteName     *string
	BusinessName *string
	SiteType     *string
	SiteVibe     *string
	Description  *string
	Features     []string
	Email        *string
	Phone        *string
}

// CustomerRecord holds the server-shaped payloads returned for one registered
// customer: customer, site, and status sections plus any trailing message.
// The sections stay schemaless because the backend owns their shape; the
// store only ever merges or overwrites them wholesale.
type CustomerRecord map[string]any

// Site returns the site section of the record, or nil.
func (r CustomerRecord) Site() map[string]any {
	m, _ := r["site"].(map[string]any)
	return m
}

// SiteID returns the provisioned site identifier, or "" when registration has
// not completed yet.
func (r CustomerRecord) SiteID() string {
	site := r.Site()
	if site == nil {
		return ""
	}
	switch id := site["id"].(type) {
	case string:
		return id
	case float64:
		// JSON numbers decode to float64; ids are integral.
		return strconv.FormatInt(int64(id), 10)
	}
	return ""
}

// Status returns the status section of the record, or nil.
func (r CustomerRecord) Status() map[string]any {
	m, _ := r["status"].(map[string]any)
	return m
}

// WizardState is the full onboarding state tree.
type WizardState struct {
	SessionID   string                    `json:"sessionId"`
	CurrentStep int                       `json:"currentStep"`
	LeadID      string                    `json:"leadId,omitempty"`
	CustomerID  string                    `json:"customerId,omitempty"`
	StepData    StepData                  `json:"stepData"`
	Users       map[string]CustomerRecord `json:"users"`
	IsLoading   bool                      `json:"isLoading"`
	Error       string                    `json:"error,omitempty"`
}

// DefaultSiteType is preselected until the user picks otherwise.
const DefaultSiteType = "online_store"

func defaultStepData() StepData {
	return StepData{
		SiteType: DefaultSiteType,
		Features: []string{},
	}
}

// Initial returns a fresh WizardState with a new session id.
func Initial() WizardState {
	return WizardState{
		SessionID: uuid.NewString(),
		StepData:  defaultStepData(),
		Users:     map[string]CustomerRecord{},
	}
}

// User returns the customer record for the given id, or nil.
func (w WizardState) User(customerID string) CustomerRecord {
	if customerID == "" {
		return nil
	}
	return w.Users[customerID]
}

// CurrentUser returns the record for the registered customer, or nil before
// registration.
func (w WizardState) CurrentUser() CustomerRecord {
	return w.User(w.CustomerID)
}

// SiteID returns the current customer's site id, or "".
func (w WizardState) SiteID() string {
	if rec := w.CurrentUser(); rec != nil {
		return rec.SiteID()
	}
	return ""
}
