package types

type ThemeSettings struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	FontFamily      string `json:"font_family"`
	BorderRadius    string `json:"border_radius"`
}

// DefaultTheme seeds every new page so the renderer never sees a partially
// populated theme.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:    "#8B5CF6",
		SecondaryColor:  "#3B82F6",
		AccentColor:     "#10B981",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		FontFamily:      "Inter",
		BorderRadius:    "8px",
	}
}
