// Package pagebuilder holds the pure core of the landing-page builder:
// editor mutations over the aggregate, the AI draft merge and the renderer.
// Nothing here performs I/O; every operation takes an aggregate by value and
// returns a new one, so a failed request can never leave a page half-mutated.
package pagebuilder

import (
	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/types"
)

// NewDraft returns an in-memory page with empty collections and a complete
// default theme. It is not persisted until saved.
func NewDraft(creatorID uuid.UUID, pageType string) types.LandingPage {
	if pageType == "" {
		pageType = "jara"
	}
	return types.LandingPage{
		CreatorID:        creatorID,
		PageType:         pageType,
		ContentSections:  []types.ContentSection{},
		CTAButtons:       []types.CTAButton{},
		Testimonials:     []types.Testimonial{},
		MediaGallery:     []types.MediaItem{},
		PaymentLinks:     []string{},
		ThemeSettings:    types.DefaultTheme(),
		ShowSocialLinks:  true,
		ShowTestimonials: true,
		ShowMediaGallery: true,
	}
}

// UpdateFields shallow-merges top-level scalar fields. Nil patch members
// leave the page untouched; slices replace wholesale when non-nil.
func UpdateFields(page types.LandingPage, fields types.PageFields) types.LandingPage {
	out := page
	setString(&out.PageType, fields.PageType)
	setString(&out.Title, fields.Title)
	setString(&out.Subtitle, fields.Subtitle)
	setString(&out.Description, fields.Description)
	setString(&out.HeroTitle, fields.HeroTitle)
	setString(&out.HeroSubtitle, fields.HeroSubtitle)
	setString(&out.HeroDescription, fields.HeroDescription)
	setString(&out.HeroImageURL, fields.HeroImageURL)
	setString(&out.MetaTitle, fields.MetaTitle)
	setString(&out.MetaDescription, fields.MetaDescription)
	setString(&out.OGImageURL, fields.OGImageURL)
	setBool(&out.ShowSocialLinks, fields.ShowSocialLinks)
	setBool(&out.ShowTestimonials, fields.ShowTestimonials)
	setBool(&out.ShowMediaGallery, fields.ShowMediaGallery)
	setBool(&out.ContactFormEnabled, fields.ContactFormEnabled)
	if fields.MetaKeywords != nil {
		out.MetaKeywords = append([]string{}, fields.MetaKeywords...)
	}
	if fields.PaymentLinks != nil {
		out.PaymentLinks = append([]string{}, fields.PaymentLinks...)
	}
	if fields.ThemeSettings != nil {
		out.ThemeSettings = fillTheme(overlayTheme(page.ThemeSettings, *fields.ThemeSettings))
	}
	return out
}

// AddSection appends a new section of the given type with a fresh id, the
// type's default content shape and order = max(order)+1 (0 on an empty page).
func AddSection(page types.LandingPage, t types.SectionType) types.LandingPage {
	out := page
	order := 0
	if len(page.ContentSections) > 0 {
		order = page.ContentSections[0].Order + 1
		for _, s := range page.ContentSections[1:] {
			if s.Order >= order {
				order = s.Order + 1
			}
		}
	}
	section := types.ContentSection{
		ID:      uuid.NewString(),
		Type:    t,
		Content: types.DefaultContent(t),
		Styling: map[string]any{},
		Order:   order,
	}
	out.ContentSections = append(cloneSections(page.ContentSections), section)
	return out
}

// SectionPatch is a partial update of one section. A non-nil Type resets
// Content to the new type's default shape in the same operation; content
// carried by the patch is applied only when it matches the section's
// (possibly new) type, so stale-shaped content is never observable.
type SectionPatch struct {
	Type    *types.SectionType
	Content types.SectionContent
	Styling map[string]any
	Order   *int
}

// UpdateSection merges the patch into the matching section. A missing
// sectionID is a silent no-op so retried or duplicate update events never
// fail.
func UpdateSection(page types.LandingPage, sectionID string, patch SectionPatch) types.LandingPage {
	idx := -1
	for i, s := range page.ContentSections {
		if s.ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return page
	}
	out := page
	sections := cloneSections(page.ContentSections)
	section := sections[idx]
	if patch.Type != nil && *patch.Type != section.Type {
		section.Type = *patch.Type
		section.Content = types.DefaultContent(*patch.Type)
	}
	if patch.Content != nil && contentMatchesType(section.Type, patch.Content) {
		section.Content = cloneContent(patch.Content)
	}
	if patch.Styling != nil {
		if section.Styling == nil {
			section.Styling = map[string]any{}
		}
		for k, v := range patch.Styling {
			section.Styling[k] = v
		}
	}
	if patch.Order != nil {
		section.Order = *patch.Order
	}
	sections[idx] = section
	out.ContentSections = sections
	return out
}

// SetSectionType changes a section's type and resets its content to the new
// type's default shape. Unknown section ids are a silent no-op.
func SetSectionType(page types.LandingPage, sectionID string, t types.SectionType) types.LandingPage {
	return UpdateSection(page, sectionID, SectionPatch{Type: &t})
}

// RemoveSection filters the section out. Remaining order values are not
// renumbered; rendering tolerates gaps.
func RemoveSection(page types.LandingPage, sectionID string) types.LandingPage {
	out := page
	sections := make([]types.ContentSection, 0, len(page.ContentSections))
	for _, s := range page.ContentSections {
		if s.ID == sectionID {
			continue
		}
		sections = append(sections, cloneSection(s))
	}
	out.ContentSections = sections
	return out
}

func SetPublished(page types.LandingPage, published bool) types.LandingPage {
	out := page
	out.IsPublished = published
	return out
}

func contentMatchesType(t types.SectionType, c types.SectionContent) bool {
	switch c.(type) {
	case *types.TextContent:
		return t == types.SectionText
	case *types.ImageContent:
		return t == types.SectionImage
	case *types.VideoContent:
		return t == types.SectionVideo
	case *types.CTAContent:
		return t == types.SectionCTA
	case *types.HeadingContent:
		return t == types.SectionTestimonial || t == types.SectionGallery
	default:
		return false
	}
}

func cloneSections(in []types.ContentSection) []types.ContentSection {
	out := make([]types.ContentSection, len(in))
	for i, s := range in {
		out[i] = cloneSection(s)
	}
	return out
}

func cloneSection(s types.ContentSection) types.ContentSection {
	c := s
	c.Content = cloneContent(s.Content)
	if s.Styling != nil {
		styling := make(map[string]any, len(s.Styling))
		for k, v := range s.Styling {
			styling[k] = v
		}
		c.Styling = styling
	}
	return c
}

func cloneContent(c types.SectionContent) types.SectionContent {
	switch v := c.(type) {
	case *types.TextContent:
		cp := *v
		return &cp
	case *types.ImageContent:
		cp := *v
		return &cp
	case *types.VideoContent:
		cp := *v
		return &cp
	case *types.CTAContent:
		cp := *v
		return &cp
	case *types.HeadingContent:
		cp := *v
		return &cp
	default:
		return nil
	}
}

// overlayTheme applies the non-empty tokens of overlay on top of base. Tokens
// absent from a partial theme keep whatever the page already carries.
func overlayTheme(base, overlay types.ThemeSettings) types.ThemeSettings {
	out := base
	if overlay.PrimaryColor != "" {
		out.PrimaryColor = overlay.PrimaryColor
	}
	if overlay.SecondaryColor != "" {
		out.SecondaryColor = overlay.SecondaryColor
	}
	if overlay.AccentColor != "" {
		out.AccentColor = overlay.AccentColor
	}
	if overlay.BackgroundColor != "" {
		out.BackgroundColor = overlay.BackgroundColor
	}
	if overlay.TextColor != "" {
		out.TextColor = overlay.TextColor
	}
	if overlay.FontFamily != "" {
		out.FontFamily = overlay.FontFamily
	}
	if overlay.BorderRadius != "" {
		out.BorderRadius = overlay.BorderRadius
	}
	return out
}

// fillTheme backfills empty tokens from the default theme so the aggregate
// never carries a partially populated theme downstream.
func fillTheme(t types.ThemeSettings) types.ThemeSettings {
	def := types.DefaultTheme()
	if t.PrimaryColor == "" {
		t.PrimaryColor = def.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = def.SecondaryColor
	}
	if t.AccentColor == "" {
		t.AccentColor = def.AccentColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = def.BackgroundColor
	}
	if t.TextColor == "" {
		t.TextColor = def.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.BorderRadius == "" {
		t.BorderRadius = def.BorderRadius
	}
	return t
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
