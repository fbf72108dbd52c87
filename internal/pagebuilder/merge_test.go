package pagebuilder

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/types"
)

func TestMergeDraftAssignsIDsAndOrder(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	draft := types.DraftSuggestion{
		ContentSections: []types.ContentSection{
			{Type: types.SectionText, Content: &types.TextContent{Text: "hi"}},
			{Type: types.SectionCTA, Content: &types.CTAContent{Text: "Go", URL: "#contact"}, Order: 99},
		},
		CTAButtons: []types.CTAButton{
			{Text: "Join", URL: "#join", Style: types.CTAPrimary},
		},
		Testimonials: []types.Testimonial{
			{Name: "Ada", Review: "Great", Rating: 5},
		},
	}

	got := MergeDraft(page, draft)

	if len(got.ContentSections) != 2 {
		t.Fatalf("sections = %d, want 2", len(got.ContentSections))
	}
	for i, s := range got.ContentSections {
		wantID := map[int]string{0: "section-0", 1: "section-1"}[i]
		if s.ID != wantID {
			t.Fatalf("section %d id = %q, want %q", i, s.ID, wantID)
		}
		if s.Order != i {
			t.Fatalf("section %d order = %d, want %d (draft order must be discarded)", i, s.Order, i)
		}
	}
	if got.CTAButtons[0].ID != "cta-0" {
		t.Fatalf("cta id = %q", got.CTAButtons[0].ID)
	}
	if got.Testimonials[0].ID != "testimonial-0" {
		t.Fatalf("testimonial id = %q", got.Testimonials[0].ID)
	}
}

func TestMergeDraftMinimalSuggestion(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	draft := types.DraftSuggestion{
		ContentSections: []types.ContentSection{{Type: types.SectionText, Content: &types.TextContent{Text: "hi"}}},
		CTAButtons:      []types.CTAButton{},
		Testimonials:    []types.Testimonial{},
	}

	got := MergeDraft(page, draft)

	if len(got.ContentSections) != 1 {
		t.Fatalf("sections = %d, want 1", len(got.ContentSections))
	}
	section := got.ContentSections[0]
	if section.ID != "section-0" || section.Order != 0 {
		t.Fatalf("section = {id: %q, order: %d}, want {section-0, 0}", section.ID, section.Order)
	}
	if len(got.CTAButtons) != 0 || len(got.Testimonials) != 0 {
		t.Fatalf("empty draft arrays must replace with empty, got %d/%d", len(got.CTAButtons), len(got.Testimonials))
	}
}

func TestMergeDraftReplacesNotAppends(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	page = AddSection(page, types.SectionImage)

	draft := types.DraftSuggestion{
		ContentSections: []types.ContentSection{{Type: types.SectionText, Content: &types.TextContent{Text: "fresh"}}},
	}
	got := MergeDraft(page, draft)

	if len(got.ContentSections) != 1 {
		t.Fatalf("draft array must fully replace, got %d sections", len(got.ContentSections))
	}
}

func TestMergeDraftScalarsAndTheme(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.Title = "Existing title"
	page.Description = "Existing description"

	draft := types.DraftSuggestion{
		Title:         "Drafted title",
		HeroTitle:     "Hero",
		ThemeSettings: &types.ThemeSettings{PrimaryColor: "#112233"},
	}
	got := MergeDraft(page, draft)

	if got.Title != "Drafted title" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Description != "Existing description" {
		t.Fatalf("absent draft field overwrote target: %q", got.Description)
	}
	if got.HeroTitle != "Hero" {
		t.Fatalf("hero title = %q", got.HeroTitle)
	}
	if got.ThemeSettings.PrimaryColor != "#112233" {
		t.Fatalf("theme primary = %q", got.ThemeSettings.PrimaryColor)
	}
	if got.ThemeSettings.FontFamily == "" {
		t.Fatalf("partial draft theme left empty tokens")
	}
	if len(got.ContentSections) != 0 {
		t.Fatalf("nil draft array replaced target collection")
	}
}

func TestMergeDraftPartialThemeKeepsPageTokens(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ThemeSettings.FontFamily = "Georgia, serif"
	page.ThemeSettings.AccentColor = "#ff8800"

	got := MergeDraft(page, types.DraftSuggestion{
		ThemeSettings: &types.ThemeSettings{PrimaryColor: "#112233"},
	})

	if got.ThemeSettings.PrimaryColor != "#112233" {
		t.Fatalf("theme primary = %q", got.ThemeSettings.PrimaryColor)
	}
	if got.ThemeSettings.FontFamily != "Georgia, serif" {
		t.Fatalf("absent token replaced page font: %q", got.ThemeSettings.FontFamily)
	}
	if got.ThemeSettings.AccentColor != "#ff8800" {
		t.Fatalf("absent token replaced page accent: %q", got.ThemeSettings.AccentColor)
	}
}

func TestMergeDraftTotalOnEmptySuggestion(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)

	got := MergeDraft(page, types.DraftSuggestion{})

	if len(got.ContentSections) != 1 {
		t.Fatalf("empty suggestion changed sections: %d", len(got.ContentSections))
	}
}

func TestMergeDraftIDsUniqueWithinOneMerge(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	draft := types.DraftSuggestion{
		ContentSections: []types.ContentSection{
			{Type: types.SectionText}, {Type: types.SectionText}, {Type: types.SectionText},
		},
		CTAButtons:   []types.CTAButton{{Text: "a"}, {Text: "b"}},
		Testimonials: []types.Testimonial{{Name: "x"}, {Name: "y"}},
	}

	got := MergeDraft(page, draft)

	seen := map[string]bool{}
	for _, s := range got.ContentSections {
		if seen[s.ID] {
			t.Fatalf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for _, b := range got.CTAButtons {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
	for _, r := range got.Testimonials {
		if seen[r.ID] {
			t.Fatalf("duplicate id %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestMergeDraftFillsMissingSectionContent(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	draft := types.DraftSuggestion{
		ContentSections: []types.ContentSection{{Type: types.SectionText}},
	}

	got := MergeDraft(page, draft)

	if _, ok := got.ContentSections[0].Content.(*types.TextContent); !ok {
		t.Fatalf("content = %T, want default text shape", got.ContentSections[0].Content)
	}
}
