package pagebuilder

import (
	"testing"
)

func TestExtractFirstJSONObject(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "bare_object",
			text:   `{"a":1}`,
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "prose_wrapped",
			text:   "Sure! Here is your page:\n{\"title\":\"Hi\"}\nLet me know if you need edits.",
			want:   `{"title":"Hi"}`,
			wantOK: true,
		},
		{
			name:   "markdown_fenced",
			text:   "```json\n{\"a\":{\"b\":2}}\n```",
			want:   `{"a":{"b":2}}`,
			wantOK: true,
		},
		{
			name:   "nested_objects",
			text:   `before {"outer":{"inner":{"deep":true}},"x":[1,2]} after`,
			want:   `{"outer":{"inner":{"deep":true}},"x":[1,2]}`,
			wantOK: true,
		},
		{
			name:   "braces_inside_strings",
			text:   `{"text":"use { and } freely","n":1}`,
			want:   `{"text":"use { and } freely","n":1}`,
			wantOK: true,
		},
		{
			name:   "escaped_quotes",
			text:   `{"text":"she said \"hi\" {","ok":true}`,
			want:   `{"text":"she said \"hi\" {","ok":true}`,
			wantOK: true,
		},
		{
			name:   "no_json",
			text:   "I could not generate a page this time.",
			wantOK: false,
		},
		{
			name:   "unterminated_object",
			text:   `{"a": 1, "b": {`,
			wantOK: false,
		},
		{
			name:   "skips_invalid_takes_next",
			text:   `{broken} then {"fine":true}`,
			want:   `{"fine":true}`,
			wantOK: true,
		},
		{
			name:   "empty_input",
			text:   "",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFirstJSONObject(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v (got %q)", ok, tc.wantOK, got)
			}
			if tc.wantOK && got != tc.want {
				t.Fatalf("extracted %q, want %q", got, tc.want)
			}
		})
	}
}
