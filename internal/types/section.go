package types

import (
	"encoding/json"
)

type SectionType string

const (
	SectionText        SectionType = "text"
	SectionImage       SectionType = "image"
	SectionVideo       SectionType = "video"
	SectionCTA         SectionType = "cta"
	SectionTestimonial SectionType = "testimonial"
	SectionGallery     SectionType = "gallery"
)

// SectionContent is the closed variant behind ContentSection.Content. The
// legal field set is fixed by the section type; a section never carries
// content of more than one shape at a time.
type SectionContent interface {
	isSectionContent()
}

type TextContent struct {
	Text string `json:"text"`
}

type ImageContent struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type VideoContent struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type CTAContent struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"`
}

// HeadingContent anchors the testimonial and gallery section types; their
// items render from the page-level collections, the section only places a
// heading above them.
type HeadingContent struct {
	Heading string `json:"heading,omitempty"`
}

func (*TextContent) isSectionContent()    {}
func (*ImageContent) isSectionContent()   {}
func (*VideoContent) isSectionContent()   {}
func (*CTAContent) isSectionContent()     {}
func (*HeadingContent) isSectionContent() {}

// DefaultContent is the reset constructor used whenever a section's type is
// assigned: the returned value is the empty shape for that type. Unknown
// types have no shape and yield nil.
func DefaultContent(t SectionType) SectionContent {
	switch t {
	case SectionText:
		return &TextContent{}
	case SectionImage:
		return &ImageContent{}
	case SectionVideo:
		return &VideoContent{}
	case SectionCTA:
		return &CTAContent{}
	case SectionTestimonial, SectionGallery:
		return &HeadingContent{}
	default:
		return nil
	}
}

type ContentSection struct {
	ID      string
	Type    SectionType
	Content SectionContent
	Styling map[string]any
	Order   int
}

type contentSectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
	Styling map[string]any  `json:"styling,omitempty"`
	Order   int             `json:"order"`
}

func (s ContentSection) MarshalJSON() ([]byte, error) {
	out := contentSectionJSON{
		ID:      s.ID,
		Type:    s.Type,
		Styling: s.Styling,
		Order:   s.Order,
	}
	if s.Content != nil {
		raw, err := json.Marshal(s.Content)
		if err != nil {
			return nil, err
		}
		out.Content = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes content against the section's declared type. The
// decode is total: malformed or unknown-typed content degrades to the type's
// default shape (or nil) instead of failing, because sections may originate
// from an external AI draft.
func (s *ContentSection) UnmarshalJSON(data []byte) error {
	var in contentSectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Type = in.Type
	s.Styling = in.Styling
	s.Order = in.Order
	s.Content = decodeContent(in.Type, in.Content)
	return nil
}

func decodeContent(t SectionType, raw json.RawMessage) SectionContent {
	content := DefaultContent(t)
	if content == nil || len(raw) == 0 {
		return content
	}
	// Drafts emit text content both as a bare string and as an object.
	if t == SectionText {
		var plain string
		if err := json.Unmarshal(raw, &plain); err == nil {
			return &TextContent{Text: plain}
		}
	}
	if err := json.Unmarshal(raw, content); err != nil {
		return DefaultContent(t)
	}
	return content
}
