package pagebuilder

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/jarahq/jara-backend/internal/types"
)

// Node is one element of the rendered visual tree. Style keys are the same
// tokens the styling bags use (fontSize, textAlign, color, ...).
type Node struct {
	Tag      string            `json:"tag"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Render turns the aggregate into a visual tree. It is a pure function: no
// network, no mutation of the page. Every themed surface reads its color and
// font from the theme parameter, never from a hardcoded value, so swapping
// the theme restyles the whole tree.
func Render(page types.LandingPage) *Node {
	theme := page.ThemeSettings
	root := &Node{
		Tag: "div",
		Attrs: map[string]string{
			"data-page": page.Slug,
		},
		Style: map[string]string{
			"backgroundColor": theme.BackgroundColor,
			"color":           theme.TextColor,
			"fontFamily":      theme.FontFamily,
		},
	}

	if hero := renderHero(page, theme); hero != nil {
		root.Children = append(root.Children, hero)
	}

	for _, section := range orderedSections(page.ContentSections) {
		if node := renderSection(section, page, theme); node != nil {
			root.Children = append(root.Children, node)
		}
	}

	if page.ShowTestimonials && len(page.Testimonials) > 0 && !hasSectionOfType(page.ContentSections, types.SectionTestimonial) {
		root.Children = append(root.Children, renderTestimonialList(page.Testimonials, theme))
	}
	if page.ShowMediaGallery && len(page.MediaGallery) > 0 && !hasSectionOfType(page.ContentSections, types.SectionGallery) {
		root.Children = append(root.Children, renderGallery(page.MediaGallery, theme))
	}

	return root
}

// orderedSections sorts ascending by order. The sort is stable: sections
// sharing an order value keep their original array sequence.
func orderedSections(sections []types.ContentSection) []types.ContentSection {
	out := make([]types.ContentSection, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func hasSectionOfType(sections []types.ContentSection, t types.SectionType) bool {
	for _, s := range sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

func renderHero(page types.LandingPage, theme types.ThemeSettings) *Node {
	if page.HeroTitle == "" && page.HeroSubtitle == "" && page.HeroImageURL == "" && len(page.CTAButtons) == 0 {
		return nil
	}
	hero := &Node{
		Tag:   "header",
		Attrs: map[string]string{"class": "hero"},
		Style: map[string]string{"backgroundColor": theme.PrimaryColor},
	}
	if page.HeroImageURL != "" {
		hero.Children = append(hero.Children, &Node{
			Tag:   "img",
			Attrs: map[string]string{"src": page.HeroImageURL, "alt": page.HeroTitle},
		})
	}
	if page.HeroTitle != "" {
		hero.Children = append(hero.Children, &Node{Tag: "h1", Text: page.HeroTitle})
	}
	if page.HeroSubtitle != "" {
		hero.Children = append(hero.Children, &Node{Tag: "h2", Text: page.HeroSubtitle})
	}
	if page.HeroDescription != "" {
		hero.Children = append(hero.Children, &Node{Tag: "p", Text: page.HeroDescription})
	}
	for _, btn := range page.CTAButtons {
		hero.Children = append(hero.Children, renderCTAButton(btn, page, theme))
	}
	return hero
}

// renderSection is the closed per-type dispatch. An unrecognized type (a
// draft may invent one) renders nothing rather than failing.
func renderSection(section types.ContentSection, page types.LandingPage, theme types.ThemeSettings) *Node {
	style := sectionStyle(section.Styling)
	switch section.Type {
	case types.SectionText:
		content, _ := section.Content.(*types.TextContent)
		if content == nil {
			return nil
		}
		return &Node{Tag: "p", Text: content.Text, Style: style}
	case types.SectionImage:
		content, _ := section.Content.(*types.ImageContent)
		if content == nil {
			return nil
		}
		figure := &Node{Tag: "figure", Style: style, Children: []*Node{
			{Tag: "img", Attrs: map[string]string{"src": content.URL, "alt": content.Alt}},
		}}
		if content.Caption != "" {
			figure.Children = append(figure.Children, &Node{Tag: "figcaption", Text: content.Caption})
		}
		return figure
	case types.SectionVideo:
		content, _ := section.Content.(*types.VideoContent)
		if content == nil {
			return nil
		}
		wrapper := &Node{Tag: "div", Attrs: map[string]string{"class": "video"}, Style: style}
		if content.Title != "" {
			wrapper.Children = append(wrapper.Children, &Node{Tag: "h3", Text: content.Title})
		}
		wrapper.Children = append(wrapper.Children, &Node{
			Tag:   "video",
			Attrs: map[string]string{"src": content.URL, "controls": "controls"},
		})
		return wrapper
	case types.SectionCTA:
		content, _ := section.Content.(*types.CTAContent)
		if content == nil {
			return nil
		}
		btn := types.CTAButton{Text: content.Text, URL: content.URL, Style: types.CTAButtonStyle(content.Style)}
		node := renderCTAButton(btn, page, theme)
		for k, v := range style {
			node.Style[k] = v
		}
		return node
	case types.SectionTestimonial:
		node := renderTestimonialList(page.Testimonials, theme)
		if content, ok := section.Content.(*types.HeadingContent); ok && content.Heading != "" {
			node.Children = append([]*Node{{Tag: "h2", Text: content.Heading}}, node.Children...)
		}
		node.Style = style
		return node
	case types.SectionGallery:
		node := renderGallery(page.MediaGallery, theme)
		if content, ok := section.Content.(*types.HeadingContent); ok && content.Heading != "" {
			node.Children = append([]*Node{{Tag: "h2", Text: content.Heading}}, node.Children...)
		}
		node.Style = style
		return node
	default:
		return nil
	}
}

// renderCTAButton resolves the clickable target before anything else: a
// payment-link slug that is attached to the page rewrites the href to
// /pay/{slug}; an unattached slug falls back to the literal url.
func renderCTAButton(btn types.CTAButton, page types.LandingPage, theme types.ThemeSettings) *Node {
	href := btn.URL
	if btn.PaymentLinkSlug != "" && slugAttached(page.PaymentLinks, btn.PaymentLinkSlug) {
		href = "/pay/" + btn.PaymentLinkSlug
	}
	style := map[string]string{"borderRadius": theme.BorderRadius}
	switch btn.Style {
	case types.CTASecondary:
		style["backgroundColor"] = theme.SecondaryColor
		style["color"] = theme.BackgroundColor
	case types.CTAOutline:
		style["borderColor"] = theme.PrimaryColor
		style["color"] = theme.PrimaryColor
	default:
		style["backgroundColor"] = theme.PrimaryColor
		style["color"] = theme.BackgroundColor
	}
	attrs := map[string]string{"href": href, "class": "cta"}
	if btn.Icon != "" {
		attrs["data-icon"] = btn.Icon
	}
	return &Node{Tag: "a", Text: btn.Text, Attrs: attrs, Style: style}
}

func slugAttached(attached []string, slug string) bool {
	for _, s := range attached {
		if s == slug {
			return true
		}
	}
	return false
}

func renderTestimonialList(reviews []types.Testimonial, theme types.ThemeSettings) *Node {
	list := &Node{Tag: "section", Attrs: map[string]string{"class": "testimonials"}}
	for _, r := range reviews {
		card := &Node{
			Tag:   "article",
			Attrs: map[string]string{"class": "testimonial"},
			Style: map[string]string{"borderRadius": theme.BorderRadius},
		}
		if r.Avatar != "" {
			card.Children = append(card.Children, &Node{Tag: "img", Attrs: map[string]string{"src": r.Avatar, "alt": r.Name}})
		}
		card.Children = append(card.Children, renderStars(r.Rating, theme))
		card.Children = append(card.Children, &Node{Tag: "blockquote", Text: r.Review})
		byline := r.Name
		if r.Title != "" {
			byline = byline + ", " + r.Title
		}
		card.Children = append(card.Children, &Node{Tag: "cite", Text: byline})
		list.Children = append(list.Children, card)
	}
	return list
}

// renderStars clamps into [0,5] and rounds to the nearest whole star.
func renderStars(rating float64, theme types.ThemeSettings) *Node {
	filled := int(math.Round(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	stars := &Node{Tag: "div", Attrs: map[string]string{"class": "stars", "data-rating": fmt.Sprintf("%d", filled)}}
	for i := 0; i < 5; i++ {
		star := &Node{Tag: "span", Text: "★"}
		if i < filled {
			star.Style = map[string]string{"color": theme.AccentColor}
		}
		stars.Children = append(stars.Children, star)
	}
	return stars
}

func renderGallery(items []types.MediaItem, theme types.ThemeSettings) *Node {
	gallery := &Node{Tag: "section", Attrs: map[string]string{"class": "gallery"}}
	for _, item := range items {
		var media *Node
		if item.Type == "video" {
			media = &Node{Tag: "video", Attrs: map[string]string{"src": item.URL, "controls": "controls"}}
		} else {
			media = &Node{Tag: "img", Attrs: map[string]string{"src": item.URL, "alt": item.Alt}}
		}
		media.Style = map[string]string{"borderRadius": theme.BorderRadius}
		cell := &Node{Tag: "figure", Children: []*Node{media}}
		if item.Caption != "" {
			cell.Children = append(cell.Children, &Node{Tag: "figcaption", Text: item.Caption})
		}
		gallery.Children = append(gallery.Children, cell)
	}
	return gallery
}

func sectionStyle(styling map[string]any) map[string]string {
	if len(styling) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(styling))
	for k, v := range styling {
		out[k] = fmt.Sprint(v)
	}
	return out
}

var voidTags = map[string]bool{"img": true, "br": true, "hr": true}

// RenderHTML serializes the visual tree. Attribute and style keys are
// emitted in sorted order so output is deterministic.
func RenderHTML(page types.LandingPage) string {
	var b strings.Builder
	writeNode(&b, Render(page))
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, k := range sortedKeys(n.Attrs) {
		fmt.Fprintf(b, ` %s="%s"`, k, html.EscapeString(n.Attrs[k]))
	}
	if len(n.Style) > 0 {
		b.WriteString(` style="`)
		for i, k := range sortedKeys(n.Style) {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(cssProp(k))
			b.WriteByte(':')
			b.WriteString(html.EscapeString(n.Style[k]))
		}
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidTags[n.Tag] {
		return
	}
	if n.Text != "" {
		b.WriteString(html.EscapeString(n.Text))
	}
	for _, child := range n.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// cssProp converts a camelCase style token to its kebab-case CSS property.
func cssProp(token string) string {
	var b strings.Builder
	for _, r := range token {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
