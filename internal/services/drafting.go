package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/pagebuilder"
	"github.com/jarahq/jara-backend/internal/types"
)

// DraftingService turns a creator brief into a landing-page suggestion via
// the chat model. The model's output is advisory: a failed generation leaves
// whatever page the creator already has untouched.
type DraftingService interface {
	GenerateDraft(ctx context.Context, request types.DraftRequest) (*types.DraftSuggestion, error)
}

type draftingService struct {
	db       *gorm.DB
	log      *logger.Logger
	aiClient AIClient
}

func NewDraftingService(db *gorm.DB, log *logger.Logger, aiClient AIClient) DraftingService {
	serviceLog := log.With("service", "DraftingService")
	return &draftingService{
		db:       db,
		log:      serviceLog,
		aiClient: aiClient,
	}
}

const draftingSystemPrompt = `You are a landing page designer for creators who monetize their audience.
Respond with a single JSON object and nothing else. The object may contain:
title, subtitle, description, hero_title, hero_subtitle, hero_description (strings),
content_sections (array of {type, content, styling}), cta_buttons (array of
{text, url, style, icon}), testimonials (array of {name, review, rating, title}),
theme_settings ({primary_color, secondary_color, accent_color, background_color,
text_color, font_family, border_radius}).
Section types: text, image, video, cta, testimonial, gallery. CTA styles:
primary, secondary, outline. Omit any field you have no content for.`

func (ds *draftingService) GenerateDraft(ctx context.Context, request types.DraftRequest) (*types.DraftSuggestion, error) {
	if request.CreatorName == "" {
		return nil, apierr.ValidationRejected(fmt.Errorf("a creator name is required to generate a draft"))
	}

	completion, err := ds.aiClient.Chat(ctx, []AIMessage{
		{Role: "system", Content: draftingSystemPrompt},
		{Role: "user", Content: buildDraftPrompt(request)},
	}, &AIOptions{Temperature: 0.7})
	if err != nil {
		ds.log.Warn("Draft generation call failed", "error", err)
		return nil, apierr.DraftingFailed(fmt.Errorf("draft generation failed: %w", err))
	}

	raw, ok := pagebuilder.ExtractFirstJSONObject(completion.Content)
	if !ok {
		ds.log.Warn("Draft generation returned no JSON object")
		return nil, apierr.DraftingFailed(fmt.Errorf("no JSON object in model response"))
	}

	var suggestion types.DraftSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		ds.log.Warn("Draft suggestion failed to decode", "error", err)
		return nil, apierr.DraftingFailed(fmt.Errorf("failed to decode draft suggestion: %w", err))
	}
	return &suggestion, nil
}

func buildDraftPrompt(request types.DraftRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Design a landing page for the creator %q.\n", request.CreatorName)
	if request.CreatorBio != "" {
		fmt.Fprintf(&b, "Bio: %s\n", request.CreatorBio)
	}
	if request.BusinessType != "" {
		fmt.Fprintf(&b, "Business type: %s\n", request.BusinessType)
	}
	if request.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", request.TargetAudience)
	}
	if request.PrimaryGoal != "" {
		fmt.Fprintf(&b, "Primary goal: %s\n", request.PrimaryGoal)
	}
	if len(request.BrandColors) > 0 {
		fmt.Fprintf(&b, "Brand colors to use: %s\n", strings.Join(request.BrandColors, ", "))
	}
	if len(request.ReferenceImages) > 0 {
		fmt.Fprintf(&b, "Reference images already uploaded: %s\n", strings.Join(request.ReferenceImages, ", "))
	}
	return b.String()
}
