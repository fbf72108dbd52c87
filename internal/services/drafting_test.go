package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

type fakeAIClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeAIClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	if len(messages) > 0 {
		f.lastPrompt = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	return &AICompletion{Content: f.reply}, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newDraftingForTest(t *testing.T, client AIClient) DraftingService {
	return NewDraftingService(nil, testLogger(t), client)
}

func TestGenerateDraftDecodesSuggestion(t *testing.T) {
	client := &fakeAIClient{reply: `Here you go:
{"title":"Ada's Studio","hero_title":"Welcome","content_sections":[{"type":"text","content":{"text":"About me"}}],"theme_settings":{"primary_color":"#112233"}}`}
	svc := newDraftingForTest(t, client)

	suggestion, err := svc.GenerateDraft(context.Background(), types.DraftRequest{
		CreatorName:  "Ada",
		BusinessType: "pottery",
	})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if suggestion.Title != "Ada's Studio" || suggestion.HeroTitle != "Welcome" {
		t.Fatalf("suggestion scalars = %+v", suggestion)
	}
	if len(suggestion.ContentSections) != 1 {
		t.Fatalf("sections = %d, want 1", len(suggestion.ContentSections))
	}
	if _, ok := suggestion.ContentSections[0].Content.(*types.TextContent); !ok {
		t.Fatalf("section content = %T", suggestion.ContentSections[0].Content)
	}
	if suggestion.ThemeSettings == nil || suggestion.ThemeSettings.PrimaryColor != "#112233" {
		t.Fatalf("theme = %+v", suggestion.ThemeSettings)
	}
}

func TestGenerateDraftPromptCarriesBrief(t *testing.T) {
	client := &fakeAIClient{reply: `{}`}
	svc := newDraftingForTest(t, client)

	_, err := svc.GenerateDraft(context.Background(), types.DraftRequest{
		CreatorName:    "Ada",
		CreatorBio:     "potter in Lisbon",
		TargetAudience: "collectors",
		PrimaryGoal:    "sell workshop seats",
		BrandColors:    []string{"#111111", "#eeeeee"},
	})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	for _, want := range []string{"Ada", "potter in Lisbon", "collectors", "sell workshop seats", "#111111"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, client.lastPrompt)
		}
	}
}

func TestGenerateDraftFailureModes(t *testing.T) {
	cases := []struct {
		name     string
		client   *fakeAIClient
		wantCode string
	}{
		{
			name:     "transport_error",
			client:   &fakeAIClient{err: errors.New("connection refused")},
			wantCode: "drafting_failed",
		},
		{
			name:     "no_json_in_reply",
			client:   &fakeAIClient{reply: "Sorry, I can't help with that."},
			wantCode: "drafting_failed",
		},
		{
			name:     "json_wrong_shape",
			client:   &fakeAIClient{reply: `{"title": 42}`},
			wantCode: "drafting_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newDraftingForTest(t, tc.client)
			_, err := svc.GenerateDraft(context.Background(), types.DraftRequest{CreatorName: "Ada"})
			if err == nil {
				t.Fatalf("expected error")
			}
			_, code := apierr.StatusOf(err)
			if code != tc.wantCode {
				t.Fatalf("code = %q, want %q", code, tc.wantCode)
			}
		})
	}
}

func TestGenerateDraftRequiresCreatorName(t *testing.T) {
	svc := newDraftingForTest(t, &fakeAIClient{reply: `{}`})
	_, err := svc.GenerateDraft(context.Background(), types.DraftRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
	status, _ := apierr.StatusOf(err)
	if status != 422 {
		t.Fatalf("status = %d, want 422", status)
	}
}
