package wizard

import "github.com/charmbracelet/huh"

// Site type catalogue offered on the first step.
var siteTypeOptions = []huh.Option[string]{
	huh.NewOption("Online Store", "online_store"),
	huh.NewOption("Blog", "blog"),
	huh.NewOption("Portfolio", "portfolio"),
	huh.NewOption("Restaurant / Food", "restaurant"),
}

// Vibe catalogue; the selection steers the generated design but is opaque to
// provisioning.
var vibeOptions = []huh.Option[string]{
	huh.NewOption("Minimalist - clean lines, lots of whitespace", "minimal"),
	huh.NewOption("Bold & Loud - high contrast, large typography", "bold"),
	huh.NewOption("Luxury - elegant serifs, gold/cream palette", "luxury"),
	huh.NewOption("Playful - rounded corners, soft pastels", "playful"),
}

// featureSuggestions maps a site type to the features worth offering for it.
var featureSuggestions = map[string][]huh.Option[string]{
	"fashion": {
		huh.NewOption("Size Guide", "site_guide"),
		huh.NewOption("Instagram Feed", "instagram_feed"),
		huh.NewOption("Lookbook Gallery", "lookbook_gallery"),
		huh.NewOption("Newsletter Popup", "newsletter_popup"),
	},
	"restaurant": {
		huh.NewOption("Menu Display", "menu_display"),
		huh.NewOption("Table Reservation", "table_reservation"),
		huh.NewOption("Location Map", "location_map"),
		huh.NewOption("UberEats Link", "ubereats_link"),
	},
	"beauty": {
		huh.NewOption("Booking System", "booking_system"),
		huh.NewOption("Before/After Slider", "before_after_slider"),
		huh.NewOption("Service Menu", "service_menu"),
		huh.NewOption("Testimonials", "testimonials"),
	},
	"electronics": {
		huh.NewOption("Tech Specs Table", "tech_specs_table"),
		huh.NewOption("Compare Products", "compare_products"),
		huh.NewOption("Support Chat", "support_chat"),
		huh.NewOption("Warranty Info", "warranty_info"),
	},
}

var defaultFeatures = []huh.Option[string]{
	huh.NewOption("Contact Form", "contact_form"),
	huh.NewOption("About Us Section", "about_us_section"),
	huh.NewOption("FAQ Section", "faq_section"),
	huh.NewOption("Blog", "blog"),
}

// FeatureOptions returns the feature suggestions for a site type, falling
// back to the generic set.
func FeatureOptions(siteType string) []huh.Option[string] {
	if opts, ok := featureSuggestions[siteType]; ok {
		return opts
	}
	return defaultFeatures
}
