package wizard

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/brandwik/shopfront/internal/availability"
	"github.com/brandwik/shopfront/internal/state"
)

// runPrompt collects the site basics and claims the address. The step only
// advances once the address is confirmed available and the lead record holds
// the progress so far.
func (w *Wizard) runPrompt(ctx context.Context) error {
	data := w.store.Snapshot().StepData
	if data.SiteType == "" {
		data.SiteType = state.DefaultSiteType
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Business name").
				Description("Shown on invoices and in the site footer.").
				Placeholder("Kicks on Fire").
				Validate(notEmpty("business name")).
				Value(&data.BusinessName),
			huh.NewSelect[string]().
				Title("What are you building?").
				Options(siteTypeOptions...).
				Value(&data.SiteType),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return err
	}

	initial := data.SiteName
	if initial == "" {
		initial = availability.SanitizeSubdomain(data.BusinessName)
	}
	address, err := w.chooseAddress(ctx, initial)
	if err != nil {
		return err
	}
	data.SiteName = address

	w.store.UpdateFormData(state.Patch{
		SiteName:     &data.SiteName,
		BusinessName: &data.BusinessName,
		SiteType:     &data.SiteType,
	})

	if _, err := w.saver.Save(ctx); err != nil {
		return err
	}

	w.store.SetStep(StepDetails)
	return nil
}
