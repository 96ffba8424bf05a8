package services

import (
	"context"
	"regexp"
	"strings"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MarketplaceService serves the prompt template marketplace. The
// catalog is a curated built-in set; browsing is free, using a prompt
// is billed through the shared gates.
type MarketplaceService interface {
	BrowsePrompts(req dto.BrowsePromptsRequest) *dto.MarketplaceResponse
	UsePrompt(ctx context.Context, db *gorm.DB, userID string, req dto.UsePromptRequest) (*dto.PromptUsageResponse, error)
}

type MarketplaceServiceImpl struct {
	billing BillableActionService
}

func NewMarketplaceService(billing BillableActionService) MarketplaceService {
	return &MarketplaceServiceImpl{billing: billing}
}

func (s *MarketplaceServiceImpl) BrowsePrompts(req dto.BrowsePromptsRequest) *dto.MarketplaceResponse {
	filtered := make([]dto.PromptTemplate, 0, len(marketplacePrompts))
	search := strings.ToLower(req.Search)

	for _, p := range marketplacePrompts {
		if req.Category != "" && p.Category != req.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	prompts := filtered
	if len(prompts) > limit {
		prompts = prompts[:limit]
	}

	return &dto.MarketplaceResponse{
		Prompts: prompts,
		Total:   len(filtered),
		Count:   len(prompts),
	}
}

func (s *MarketplaceServiceImpl) UsePrompt(ctx context.Context, db *gorm.DB, userID string, req dto.UsePromptRequest) (*dto.PromptUsageResponse, error) {
	template, ok := findPrompt(req.PromptID)
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "marketplace", "Prompt template not found", 404)
	}

	result, meta, err := s.billing.Execute(ctx, db, userID, ServicePromptMarketplace, models.ActionUsePromptTemplate, func() (interface{}, error) {
		return renderPrompt(template, req.Variables), nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PromptUsageResponse{
		Content:     result.(string),
		Prompt:      template,
		CreditsUsed: meta.CreditsUsed,
	}, nil
}

// renderPrompt substitutes [VAR] placeholders, then fills the common
// ones with neutral defaults so no placeholder leaks to the user.
func renderPrompt(template dto.PromptTemplate, variables map[string]string) string {
	content := template.Preview

	for key, value := range variables {
		placeholder := "[" + strings.ToUpper(key) + "]"
		content = strings.ReplaceAll(content, placeholder, value)
	}

	defaults := map[string]string{
		"[TOPIC]":    "your business",
		"[TONE]":     "professional",
		"[PLATFORM]": "social media",
		"[AUDIENCE]": "your target audience",
	}
	for placeholder, value := range defaults {
		content = strings.ReplaceAll(content, placeholder, value)
	}

	return content
}

var placeholderRe = regexp.MustCompile(`\[([A-Z_]+)\]`)

// PromptVariables lists the placeholders present in a preview string.
func PromptVariables(preview string) []string {
	matches := placeholderRe.FindAllStringSubmatch(preview, -1)
	seen := make(map[string]bool)
	var vars []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}

func findPrompt(id string) (dto.PromptTemplate, bool) {
	for _, p := range marketplacePrompts {
		if p.ID == id {
			return p, true
		}
	}
	return dto.PromptTemplate{}, false
}

var marketplacePrompts = []dto.PromptTemplate{
	{
		ID:          "social-post-creator",
		Title:       "Social Media Post Creator",
		Description: "Generate engaging social media posts for any platform",
		Category:    "CONTENT_CREATION",
		Credits:     1,
		Preview:     "Create a [TONE] social media post about [TOPIC] for [PLATFORM] that will engage [AUDIENCE]. Include relevant hashtags and a call-to-action.",
		Variables:   []string{"TONE", "TOPIC", "PLATFORM", "AUDIENCE"},
		Rating:      4.8,
		UsageCount:  1247,
	},
	{
		ID:          "email-marketing",
		Title:       "Email Marketing Campaign",
		Description: "Professional email templates for marketing campaigns",
		Category:    "MARKETING",
		Credits:     1,
		Preview:     "Write a compelling marketing email about [TOPIC] with a [TONE] tone. Include a strong subject line and clear call-to-action for [AUDIENCE].",
		Variables:   []string{"TOPIC", "TONE", "AUDIENCE"},
		Rating:      4.6,
		UsageCount:  892,
	},
	{
		ID:          "blog-outline",
		Title:       "Blog Post Outline Generator",
		Description: "Create detailed blog post outlines and structures",
		Category:    "CONTENT_CREATION",
		Credits:     1,
		Preview:     "Create a comprehensive blog post outline about [TOPIC] for [AUDIENCE]. Include main sections, key points, and SEO considerations.",
		Variables:   []string{"TOPIC", "AUDIENCE"},
		Rating:      4.7,
		UsageCount:  634,
	},
	{
		ID:          "product-description",
		Title:       "Product Description Writer",
		Description: "Compelling product descriptions that convert",
		Category:    "BUSINESS",
		Credits:     1,
		Preview:     "Write a persuasive product description for [TOPIC] targeting [AUDIENCE]. Highlight key benefits and include a compelling call-to-action.",
		Variables:   []string{"TOPIC", "AUDIENCE"},
		Rating:      4.9,
		UsageCount:  1156,
	},
	{
		ID:          "creative-story",
		Title:       "Creative Story Generator",
		Description: "Generate creative stories and narratives",
		Category:    "CREATIVE",
		Credits:     1,
		Preview:     "Write a creative story about [TOPIC] with a [TONE] mood. Include interesting characters and an engaging plot.",
		Variables:   []string{"TOPIC", "TONE"},
		Rating:      4.5,
		UsageCount:  423,
	},
}
