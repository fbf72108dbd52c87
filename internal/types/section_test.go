package types

import (
	"encoding/json"
	"testing"
)

func TestContentSectionDecodeByType(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(t *testing.T, s ContentSection)
	}{
		{
			name:  "text_object_form",
			input: `{"id":"s1","type":"text","content":{"text":"hello"},"order":0}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*TextContent)
				if !ok || content.Text != "hello" {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
		{
			name:  "text_bare_string_form",
			input: `{"id":"s1","type":"text","content":"hi","order":0}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*TextContent)
				if !ok || content.Text != "hi" {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
		{
			name:  "image",
			input: `{"id":"s2","type":"image","content":{"url":"https://x.test/a.png","alt":"a","caption":"c"},"order":1}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*ImageContent)
				if !ok || content.URL != "https://x.test/a.png" || content.Caption != "c" {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
		{
			name:  "video",
			input: `{"id":"s3","type":"video","content":{"url":"https://x.test/v.mp4","title":"demo"},"order":2}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*VideoContent)
				if !ok || content.Title != "demo" {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
		{
			name:  "cta",
			input: `{"id":"s4","type":"cta","content":{"text":"Buy","url":"#buy","style":"primary"},"order":3}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*CTAContent)
				if !ok || content.Style != "primary" {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
		{
			name:  "unknown_type_keeps_type_drops_content",
			input: `{"id":"s5","type":"countdown","content":{"until":"2030-01-01"},"order":4}`,
			check: func(t *testing.T, s ContentSection) {
				if s.Type != SectionType("countdown") {
					t.Fatalf("type = %q", s.Type)
				}
				if s.Content != nil {
					t.Fatalf("content = %#v, want nil", s.Content)
				}
			},
		},
		{
			name:  "malformed_content_degrades_to_default",
			input: `{"id":"s6","type":"image","content":"not an object","order":5}`,
			check: func(t *testing.T, s ContentSection) {
				content, ok := s.Content.(*ImageContent)
				if !ok || content.URL != "" {
					t.Fatalf("content = %#v, want empty image shape", s.Content)
				}
			},
		},
		{
			name:  "missing_content_gets_default",
			input: `{"id":"s7","type":"text","order":6}`,
			check: func(t *testing.T, s ContentSection) {
				if _, ok := s.Content.(*TextContent); !ok {
					t.Fatalf("content = %#v", s.Content)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s ContentSection
			if err := json.Unmarshal([]byte(tc.input), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			tc.check(t, s)
		})
	}
}

func TestContentSectionRoundTrip(t *testing.T) {
	in := ContentSection{
		ID:      "s1",
		Type:    SectionImage,
		Content: &ImageContent{URL: "https://x.test/a.png", Alt: "a"},
		Styling: map[string]any{"textAlign": "center"},
		Order:   3,
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out ContentSection
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.ID != in.ID || out.Type != in.Type || out.Order != in.Order {
		t.Fatalf("round trip changed envelope: %+v", out)
	}
	content, ok := out.Content.(*ImageContent)
	if !ok || *content != *in.Content.(*ImageContent) {
		t.Fatalf("round trip changed content: %#v", out.Content)
	}
	if out.Styling["textAlign"] != "center" {
		t.Fatalf("round trip changed styling: %#v", out.Styling)
	}
}

func TestDefaultContentShapes(t *testing.T) {
	cases := []struct {
		t    SectionType
		want string
	}{
		{SectionText, "*types.TextContent"},
		{SectionImage, "*types.ImageContent"},
		{SectionVideo, "*types.VideoContent"},
		{SectionCTA, "*types.CTAContent"},
		{SectionTestimonial, "*types.HeadingContent"},
		{SectionGallery, "*types.HeadingContent"},
	}
	for _, tc := range cases {
		content := DefaultContent(tc.t)
		if content == nil {
			t.Fatalf("DefaultContent(%q) = nil", tc.t)
		}
	}
	if DefaultContent(SectionType("bogus")) != nil {
		t.Fatalf("unknown type must have no default shape")
	}
}
