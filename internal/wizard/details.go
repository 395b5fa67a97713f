package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/brandwik/shopfront/internal/availability"
	"github.com/brandwik/shopfront/internal/state"
	"github.com/brandwik/shopfront/internal/util/async"
)

const minPasswordLength = 8

// runDetails collects the storefront details and credentials, then runs the
// registration chain: save progress, register the account, trigger the store
// build. A Back selection returns to the prompt step without registering.
func (w *Wizard) runDetails(ctx context.Context) error {
	snap := w.store.Snapshot()
	data := snap.StepData

	checker := availability.NewChecker(w.client)
	defer checker.Close()

	var password, confirmPassword string
	create := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a vibe").
				Description("Sets the design direction for the generated theme.").
				Options(vibeOptions...).
				Value(&data.SiteVibe),
			huh.NewText().
				Title("Describe your business").
				Placeholder("Limited-edition sneakers, restocked weekly.").
				CharLimit(500).
				Value(&data.Description),
			huh.NewMultiSelect[string]().
				Title("Features to include at launch").
				Options(FeatureOptions(data.SiteType)...).
				Value(&data.Features),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("Your storefront login.").
				Validate(func(s string) error {
					res := checker.CheckNow(ctx, availability.FieldEmail, s)
					if res.Available == nil {
						return errors.New("enter a valid email address")
					}
					if !res.OK() {
						return errors.New(res.Reason)
					}
					return nil
				}).
				Value(&data.Email),
			huh.NewInput().
				Title("Phone").
				Placeholder("+31 6 12345678").
				Value(&data.Phone),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < minPasswordLength {
						return fmt.Errorf("at least %d characters", minPasswordLength)
					}
					return nil
				}).
				Value(&password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != password {
						return errors.New("passwords do not match")
					}
					return nil
				}).
				Value(&confirmPassword),
			huh.NewConfirm().
				Title("Create your store?").
				Affirmative("Create").
				Negative("Back").
				Value(&create),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}
	if !create {
		w.store.SetStep(StepPrompt)
		return nil
	}

	w.store.UpdateFormData(state.Patch{
		SiteVibe:    &data.SiteVibe,
		Description: &data.Description,
		Features:    data.Features,
		Email:       &data.Email,
		Phone:       &data.Phone,
	})

	if err := w.register(ctx, password); err != nil {
		w.store.SetError(err.Error())
		return err
	}

	w.store.SetStep(StepBuild)
	return nil
}

// register runs the step's async chain: recheck uniqueness, save the lead,
// register the account, and trigger the store build. Any failure leaves the
// step in place so the user can correct and retry.
func (w *Wizard) register(ctx context.Context, password string) error {
	snap := w.store.Snapshot()

	checker := availability.NewChecker(w.client)
	defer checker.Close()

	// The debounced checks ran against a live form; recheck both values in
	// one round trip before committing the registration.
	tasks := []async.Task{
		{Name: "subdomain", Func: func(ctx context.Context) error {
			res := checker.CheckNow(ctx, availability.FieldSubdomain, snap.StepData.SiteName)
			if !res.OK() {
				return checkFailure(res)
			}
			return nil
		}},
		{Name: "email", Func: func(ctx context.Context) error {
			res := checker.CheckNow(ctx, availability.FieldEmail, snap.StepData.Email)
			if !res.OK() {
				return checkFailure(res)
			}
			return nil
		}},
	}
	if err := async.RunParallel(ctx, tasks); err != nil {
		return err
	}

	leadID, err := w.saver.Save(ctx)
	if err != nil {
		return err
	}

	w.store.SetLoading(true)
	payload, err := w.client.Register(ctx, leadID, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	customerID := customerIDFrom(payload)
	if customerID == "" {
		return errors.New("registration response missing customer id")
	}
	w.store.MergeUser(customerID, payload)
	w.store.SetCustomerID(customerID)

	siteID := w.store.Snapshot().SiteID()
	if siteID == "" {
		return errors.New("registration response missing site id")
	}
	message, err := w.client.CreateStore(ctx, siteID)
	if err != nil {
		return fmt.Errorf("store creation failed: %w", err)
	}
	w.store.MergeUserField(customerID, "status", map[string]any{"message": message})
	w.store.SetLoading(false)
	return nil
}

func checkFailure(res availability.Result) error {
	if res.Reason != "" {
		return errors.New(res.Reason)
	}
	return errors.New("no longer available")
}

// customerIDFrom pulls the customer id out of the registration payload. The
// backend sends it as a JSON number or string depending on the route.
func customerIDFrom(payload map[string]any) string {
	customer, _ := payload["customer"].(map[string]any)
	switch id := customer["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	}
	return ""
}
