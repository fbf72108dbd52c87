package pagebuilder

import (
	"fmt"

	"github.com/jarahq/jara-backend/internal/types"
)

// MergeDraft splices an AI draft suggestion into the aggregate. Draft arrays
// fully replace the corresponding collections and every item gets a fresh
// {kind}-{index} id scoped to this one call, so a merged draft can never
// collide with ids already on the page. Content sections additionally get
// order = index; buttons and testimonials are unordered. Non-empty scalar
// fields and a present theme overwrite the target; everything else is left
// untouched. The merge is pure and total: it cannot fail for any well-typed
// suggestion, including one with empty arrays.
func MergeDraft(page types.LandingPage, draft types.DraftSuggestion) types.LandingPage {
	out := page

	if draft.Title != "" {
		out.Title = draft.Title
	}
	if draft.Subtitle != "" {
		out.Subtitle = draft.Subtitle
	}
	if draft.Description != "" {
		out.Description = draft.Description
	}
	if draft.HeroTitle != "" {
		out.HeroTitle = draft.HeroTitle
	}
	if draft.HeroSubtitle != "" {
		out.HeroSubtitle = draft.HeroSubtitle
	}
	if draft.HeroDescription != "" {
		out.HeroDescription = draft.HeroDescription
	}
	if draft.ThemeSettings != nil {
		out.ThemeSettings = fillTheme(overlayTheme(page.ThemeSettings, *draft.ThemeSettings))
	}

	if draft.ContentSections != nil {
		sections := make([]types.ContentSection, len(draft.ContentSections))
		for i, s := range draft.ContentSections {
			section := cloneSection(s)
			section.ID = fmt.Sprintf("section-%d", i)
			section.Order = i
			if section.Content == nil {
				section.Content = types.DefaultContent(section.Type)
			}
			sections[i] = section
		}
		out.ContentSections = sections
	}

	if draft.CTAButtons != nil {
		buttons := make([]types.CTAButton, len(draft.CTAButtons))
		for i, b := range draft.CTAButtons {
			b.ID = fmt.Sprintf("cta-%d", i)
			buttons[i] = b
		}
		out.CTAButtons = buttons
	}

	if draft.Testimonials != nil {
		reviews := make([]types.Testimonial, len(draft.Testimonials))
		for i, r := range draft.Testimonials {
			r.ID = fmt.Sprintf("testimonial-%d", i)
			reviews[i] = r
		}
		out.Testimonials = reviews
	}

	return out
}
