package pagebuilder

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/types"
)

func TestNewDraftSeedsCompleteTheme(t *testing.T) {
	page := NewDraft(uuid.New(), "")

	if page.PageType != "jara" {
		t.Fatalf("PageType = %q, want jara", page.PageType)
	}
	if len(page.ContentSections) != 0 || len(page.CTAButtons) != 0 || len(page.Testimonials) != 0 {
		t.Fatalf("draft collections not empty: %+v", page)
	}
	theme := page.ThemeSettings
	for name, val := range map[string]string{
		"PrimaryColor":    theme.PrimaryColor,
		"SecondaryColor":  theme.SecondaryColor,
		"AccentColor":     theme.AccentColor,
		"BackgroundColor": theme.BackgroundColor,
		"TextColor":       theme.TextColor,
		"FontFamily":      theme.FontFamily,
		"BorderRadius":    theme.BorderRadius,
	} {
		if val == "" {
			t.Fatalf("theme token %s is empty on a fresh draft", name)
		}
	}
}

func TestAddSectionOrderAssignment(t *testing.T) {
	cases := []struct {
		name      string
		existing  []int
		wantOrder int
	}{
		{name: "empty_page", existing: nil, wantOrder: 0},
		{name: "sequential", existing: []int{0, 1, 2}, wantOrder: 3},
		{name: "gapped_orders", existing: []int{0, 7}, wantOrder: 8},
		{name: "negative_orders", existing: []int{-5, -2}, wantOrder: -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := NewDraft(uuid.New(), "jara")
			for _, order := range tc.existing {
				page.ContentSections = append(page.ContentSections, types.ContentSection{
					ID: uuid.NewString(), Type: types.SectionText, Order: order,
				})
			}
			got := AddSection(page, types.SectionImage)
			added := got.ContentSections[len(got.ContentSections)-1]
			if added.Order != tc.wantOrder {
				t.Fatalf("added order = %d, want %d", added.Order, tc.wantOrder)
			}
			if added.ID == "" {
				t.Fatalf("added section has no id")
			}
			if _, ok := added.Content.(*types.ImageContent); !ok {
				t.Fatalf("added content = %T, want *types.ImageContent", added.Content)
			}
		})
	}
}

func TestAddSectionDoesNotReuseRemovedIDs(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	firstID := page.ContentSections[0].ID

	page = RemoveSection(page, firstID)
	page = AddSection(page, types.SectionText)

	if page.ContentSections[0].ID == firstID {
		t.Fatalf("section id %q was reused after removal", firstID)
	}
}

func TestUpdateSectionMissingIDIsNoOp(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)

	order := 9
	got := UpdateSection(page, "no-such-id", SectionPatch{Order: &order})

	if !reflect.DeepEqual(got, page) {
		t.Fatalf("update with missing id mutated the page:\n got: %+v\nwant: %+v", got, page)
	}
}

func TestUpdateSectionTypeChangeResetsContent(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionCTA)
	sectionID := page.ContentSections[0].ID
	page = UpdateSection(page, sectionID, SectionPatch{
		Content: &types.CTAContent{Text: "Buy", URL: "https://x.test", Style: "primary"},
	})

	imageType := types.SectionImage
	got := UpdateSection(page, sectionID, SectionPatch{Type: &imageType})

	section := got.ContentSections[0]
	if section.Type != types.SectionImage {
		t.Fatalf("type = %q, want image", section.Type)
	}
	content, ok := section.Content.(*types.ImageContent)
	if !ok {
		t.Fatalf("content = %T, old cta shape still observable", section.Content)
	}
	if content.URL != "" || content.Alt != "" || content.Caption != "" {
		t.Fatalf("content not reset to default shape: %+v", content)
	}
}

func TestSetSectionType(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	sectionID := page.ContentSections[0].ID
	page = UpdateSection(page, sectionID, SectionPatch{
		Content: &types.TextContent{Text: "hello"},
	})

	got := SetSectionType(page, sectionID, types.SectionVideo)

	section := got.ContentSections[0]
	if section.Type != types.SectionVideo {
		t.Fatalf("type = %q, want video", section.Type)
	}
	if _, ok := section.Content.(*types.VideoContent); !ok {
		t.Fatalf("content = %T, want default video shape", section.Content)
	}
	if missing := SetSectionType(page, "nope", types.SectionVideo); missing.ContentSections[0].Type != types.SectionText {
		t.Fatalf("missing id mutated section type to %q", missing.ContentSections[0].Type)
	}
}

func TestUpdateSectionRejectsMismatchedContent(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	sectionID := page.ContentSections[0].ID

	got := UpdateSection(page, sectionID, SectionPatch{
		Content: &types.CTAContent{Text: "Buy", URL: "https://x.test"},
	})

	if _, ok := got.ContentSections[0].Content.(*types.TextContent); !ok {
		t.Fatalf("text section accepted cta content: %T", got.ContentSections[0].Content)
	}
}

func TestUpdateSectionMergesStylingAndOrder(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	sectionID := page.ContentSections[0].ID
	page = UpdateSection(page, sectionID, SectionPatch{Styling: map[string]any{"fontSize": "18px", "textAlign": "left"}})

	order := 4
	got := UpdateSection(page, sectionID, SectionPatch{
		Styling: map[string]any{"textAlign": "center"},
		Order:   &order,
	})

	section := got.ContentSections[0]
	if section.Order != 4 {
		t.Fatalf("order = %d, want 4", section.Order)
	}
	if section.Styling["fontSize"] != "18px" {
		t.Fatalf("existing styling key dropped: %+v", section.Styling)
	}
	if section.Styling["textAlign"] != "center" {
		t.Fatalf("patched styling key not applied: %+v", section.Styling)
	}
}

func TestUpdateSectionDoesNotMutateInput(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	sectionID := page.ContentSections[0].ID

	text := &types.TextContent{Text: "after"}
	_ = UpdateSection(page, sectionID, SectionPatch{Content: text})

	if content := page.ContentSections[0].Content.(*types.TextContent); content.Text != "" {
		t.Fatalf("input page was mutated: %+v", content)
	}
}

func TestRemoveSectionKeepsOrderGaps(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page = AddSection(page, types.SectionText)
	page = AddSection(page, types.SectionImage)
	page = AddSection(page, types.SectionText)

	got := RemoveSection(page, page.ContentSections[1].ID)

	if len(got.ContentSections) != 2 {
		t.Fatalf("len = %d, want 2", len(got.ContentSections))
	}
	if got.ContentSections[0].Order != 0 || got.ContentSections[1].Order != 2 {
		t.Fatalf("orders renumbered: %d, %d", got.ContentSections[0].Order, got.ContentSections[1].Order)
	}
}

func TestUpdateFieldsShallowMerge(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.Title = "Old"
	page.Description = "Keep me"

	title := "New"
	published := true
	got := UpdateFields(page, types.PageFields{
		Title:            &title,
		ShowTestimonials: &published,
		PaymentLinks:     []string{"coffee"},
	})

	if got.Title != "New" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Description != "Keep me" {
		t.Fatalf("untouched field changed: %q", got.Description)
	}
	if len(got.PaymentLinks) != 1 || got.PaymentLinks[0] != "coffee" {
		t.Fatalf("payment links = %v", got.PaymentLinks)
	}
}

func TestUpdateFieldsBackfillsPartialTheme(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	got := UpdateFields(page, types.PageFields{
		ThemeSettings: &types.ThemeSettings{PrimaryColor: "#000000"},
	})

	if got.ThemeSettings.PrimaryColor != "#000000" {
		t.Fatalf("primary = %q", got.ThemeSettings.PrimaryColor)
	}
	if got.ThemeSettings.FontFamily == "" || got.ThemeSettings.BackgroundColor == "" {
		t.Fatalf("partial theme reached the aggregate: %+v", got.ThemeSettings)
	}
}

func TestUpdateFieldsPartialThemeKeepsPageTokens(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ThemeSettings.FontFamily = "Georgia, serif"
	page.ThemeSettings.SecondaryColor = "#abcdef"

	got := UpdateFields(page, types.PageFields{
		ThemeSettings: &types.ThemeSettings{PrimaryColor: "#000000"},
	})

	if got.ThemeSettings.PrimaryColor != "#000000" {
		t.Fatalf("primary = %q", got.ThemeSettings.PrimaryColor)
	}
	if got.ThemeSettings.FontFamily != "Georgia, serif" {
		t.Fatalf("absent token replaced page font: %q", got.ThemeSettings.FontFamily)
	}
	if got.ThemeSettings.SecondaryColor != "#abcdef" {
		t.Fatalf("absent token replaced page secondary: %q", got.ThemeSettings.SecondaryColor)
	}
}

func TestSetPublished(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	got := SetPublished(page, true)
	if !got.IsPublished {
		t.Fatalf("page not published")
	}
	if page.IsPublished {
		t.Fatalf("input page mutated")
	}
}
