package pagebuilder

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jarahq/jara-backend/internal/types"
)

func sectionNodes(root *Node) []*Node {
	var out []*Node
	for _, child := range root.Children {
		if child.Tag == "p" || child.Tag == "figure" || (child.Tag == "div" && child.Attrs["class"] == "video") {
			out = append(out, child)
		}
	}
	return out
}

func TestRenderSectionOrdering(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{ID: "a", Order: 2, Type: types.SectionText, Content: &types.TextContent{Text: "second"}},
		{ID: "b", Order: 1, Type: types.SectionImage, Content: &types.ImageContent{URL: "https://img.test/b.png"}},
	}

	root := Render(page)
	nodes := sectionNodes(root)
	if len(nodes) != 2 {
		t.Fatalf("rendered %d sections, want 2", len(nodes))
	}
	if nodes[0].Tag != "figure" {
		t.Fatalf("image section %q must render before text section: first tag = %q", "b", nodes[0].Tag)
	}
	if nodes[1].Text != "second" {
		t.Fatalf("second node text = %q", nodes[1].Text)
	}
}

func TestRenderOrderTiesAreStable(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{ID: "first", Order: 1, Type: types.SectionText, Content: &types.TextContent{Text: "one"}},
		{ID: "second", Order: 1, Type: types.SectionText, Content: &types.TextContent{Text: "two"}},
		{ID: "third", Order: 0, Type: types.SectionText, Content: &types.TextContent{Text: "zero"}},
	}

	nodes := sectionNodes(Render(page))
	got := []string{nodes[0].Text, nodes[1].Text, nodes[2].Text}
	want := []string{"zero", "one", "two"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("render order = %v, want %v", got, want)
		}
	}
}

func TestRenderUnknownSectionTypeRendersNothing(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{ID: "x", Type: types.SectionType("hologram"), Order: 0},
		{ID: "y", Type: types.SectionText, Content: &types.TextContent{Text: "kept"}, Order: 1},
	}

	nodes := sectionNodes(Render(page))
	if len(nodes) != 1 || nodes[0].Text != "kept" {
		t.Fatalf("unknown type must be skipped, got %d nodes", len(nodes))
	}
}

func TestRenderCTAPaymentLinkResolution(t *testing.T) {
	cases := []struct {
		name     string
		attached []string
		wantHref string
	}{
		{name: "attached_slug_rewrites", attached: []string{"x"}, wantHref: "/pay/x"},
		{name: "unattached_slug_falls_back", attached: []string{"other"}, wantHref: "https://fallback.test"},
		{name: "no_attachments", attached: nil, wantHref: "https://fallback.test"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := NewDraft(uuid.New(), "jara")
			page.PaymentLinks = tc.attached
			page.CTAButtons = []types.CTAButton{{
				ID:              "cta-0",
				Text:            "Support",
				URL:             "https://fallback.test",
				PaymentLinkSlug: "x",
			}}

			root := Render(page)
			var href string
			for _, child := range root.Children {
				if child.Tag != "header" {
					continue
				}
				for _, n := range child.Children {
					if n.Tag == "a" {
						href = n.Attrs["href"]
					}
				}
			}
			if href != tc.wantHref {
				t.Fatalf("href = %q, want %q", href, tc.wantHref)
			}
		})
	}
}

func TestRenderStarsClampAndRound(t *testing.T) {
	cases := []struct {
		name   string
		rating float64
		want   string
	}{
		{name: "negative_clamps_to_zero", rating: -3, want: "0"},
		{name: "over_five_clamps", rating: 11, want: "5"},
		{name: "rounds_up", rating: 4.6, want: "5"},
		{name: "rounds_down", rating: 2.4, want: "2"},
		{name: "exact", rating: 3, want: "3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			theme := types.DefaultTheme()
			stars := renderStars(tc.rating, theme)
			if got := stars.Attrs["data-rating"]; got != tc.want {
				t.Fatalf("rating %v rendered as %q, want %q", tc.rating, got, tc.want)
			}
			if len(stars.Children) != 5 {
				t.Fatalf("always draws 5 star slots, got %d", len(stars.Children))
			}
		})
	}
}

func TestRenderThemeTokensReachEverySurface(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ThemeSettings = types.ThemeSettings{
		PrimaryColor:    "#0000aa",
		SecondaryColor:  "#00aa00",
		AccentColor:     "#aa0000",
		BackgroundColor: "#fafafa",
		TextColor:       "#111111",
		FontFamily:      "Karla",
		BorderRadius:    "12px",
	}
	page.HeroTitle = "Hello"
	page.CTAButtons = []types.CTAButton{{ID: "cta-0", Text: "Go", URL: "#", Style: types.CTAOutline}}

	root := Render(page)
	if root.Style["backgroundColor"] != "#fafafa" || root.Style["color"] != "#111111" || root.Style["fontFamily"] != "Karla" {
		t.Fatalf("root style missing theme tokens: %+v", root.Style)
	}

	html := RenderHTML(page)
	if strings.Contains(html, "#8B5CF6") {
		t.Fatalf("default brand color leaked into themed output")
	}
	if !strings.Contains(html, "#0000aa") {
		t.Fatalf("outline button did not take the theme primary color:\n%s", html)
	}
}

func TestRenderIsPure(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{ID: "a", Order: 1, Type: types.SectionText, Content: &types.TextContent{Text: "one"}},
		{ID: "b", Order: 0, Type: types.SectionText, Content: &types.TextContent{Text: "zero"}},
	}

	_ = Render(page)

	if page.ContentSections[0].ID != "a" || page.ContentSections[1].ID != "b" {
		t.Fatalf("render reordered the input page: %+v", page.ContentSections)
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{ID: "a", Type: types.SectionText, Content: &types.TextContent{Text: `<script>alert("x")</script>`}},
	}

	html := RenderHTML(page)
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped markup in output:\n%s", html)
	}
}

func TestRenderSectionStylingTokens(t *testing.T) {
	page := NewDraft(uuid.New(), "jara")
	page.ContentSections = []types.ContentSection{
		{
			ID:      "a",
			Type:    types.SectionText,
			Content: &types.TextContent{Text: "styled"},
			Styling: map[string]any{"fontSize": "18px", "textAlign": "center"},
		},
	}

	html := RenderHTML(page)
	if !strings.Contains(html, "font-size:18px") || !strings.Contains(html, "text-align:center") {
		t.Fatalf("styling tokens not emitted as css:\n%s", html)
	}
}
