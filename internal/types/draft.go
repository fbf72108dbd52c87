package types

// DraftSuggestion is the structured content proposed by the AI drafting
// service. Items in its arrays carry no stable ids and no trustworthy order;
// the merge assigns both. Empty scalar fields are treated as absent, nil
// arrays leave the target collection alone.
type DraftSuggestion struct {
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	HeroTitle       string `json:"hero_title,omitempty"`
	HeroSubtitle    string `json:"hero_subtitle,omitempty"`
	HeroDescription string `json:"hero_description,omitempty"`

	ContentSections []ContentSection `json:"content_sections"`
	CTAButtons      []CTAButton      `json:"cta_buttons"`
	Testimonials    []Testimonial    `json:"testimonials"`

	ThemeSettings *ThemeSettings `json:"theme_settings,omitempty"`
}

// DraftRequest describes the creator context the drafting prompt is built
// from.
type DraftRequest struct {
	CreatorName     string   `json:"creator_name"`
	CreatorBio      string   `json:"creator_bio"`
	BusinessType    string   `json:"business_type"`
	TargetAudience  string   `json:"target_audience"`
	PrimaryGoal     string   `json:"primary_goal"`
	BrandColors     []string `json:"brand_colors,omitempty"`
	ReferenceImages []string `json:"reference_images,omitempty"`
}
