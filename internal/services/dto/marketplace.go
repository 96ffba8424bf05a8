package dto

type BrowsePromptsRequest struct {
	Category string `form:"category" validate:"omitempty,oneof=CONTENT_CREATION MARKETING BUSINESS CREATIVE"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

type PromptTemplate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Credits     int      `json:"credits"`
	Preview     string   `json:"preview"`
	Variables   []string `json:"variables"`
	Rating      float64  `json:"rating"`
	UsageCount  int      `json:"usage_count"`
}

type MarketplaceResponse struct {
	Prompts []PromptTemplate `json:"prompts"`
	Total   int              `json:"total"`
	Count   int              `json:"count"`
}

type UsePromptRequest struct {
	PromptID  string            `json:"prompt_id" validate:"required"`
	Variables map[string]string `json:"variables,omitempty"`
}

type PromptUsageResponse struct {
	Content     string         `json:"content"`
	Prompt      PromptTemplate `json:"prompt"`
	CreditsUsed int            `json:"credits_used"`
}
