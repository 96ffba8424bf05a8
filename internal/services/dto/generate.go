package dto

// Requests and responses for the template content generators. All
// generation is deterministic; no external AI calls are made.

type AdCopyRequest struct {
	ProductName        string `json:"product_name" validate:"required,min=2,max=100"`
	ProductDescription string `json:"product_description" validate:"required,min=10,max=500"`
	Platform           string `json:"platform" validate:"required,oneof=facebook google instagram linkedin twitter"`
	Tone               string `json:"tone,omitempty" validate:"omitempty,oneof=professional casual playful urgent"`
	TargetAudience     string `json:"target_audience,omitempty" validate:"omitempty,max=200"`
}

type AdCopyResponse struct {
	AdCopy          string   `json:"ad_copy"`
	Platform        string   `json:"platform"`
	CharacterCount  int      `json:"character_count"`
	CharacterLimit  int      `json:"character_limit"`
	CallToAction    string   `json:"call_to_action"`
	Recommendations []string `json:"recommendations"`
}

type EmailRequest struct {
	Subject   string `json:"subject" validate:"required,min=2,max=150"`
	Purpose   string `json:"purpose" validate:"required,oneof=marketing welcome followup announcement"`
	Recipient string `json:"recipient" validate:"required,min=2,max=100"`
	Tone      string `json:"tone,omitempty" validate:"omitempty,oneof=professional casual playful urgent"`
	KeyPoints string `json:"key_points,omitempty" validate:"omitempty,max=500"`
}

type EmailResponse struct {
	SubjectLine string `json:"subject_line"`
	Body        string `json:"body"`
	Purpose     string `json:"purpose"`
}

type HeadlineRequest struct {
	Topic    string `json:"topic" validate:"required,min=2,max=150"`
	Keyword  string `json:"keyword,omitempty" validate:"omitempty,max=50"`
	Count    int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
	Audience string `json:"audience,omitempty" validate:"omitempty,max=100"`
}

type HeadlineResponse struct {
	Headlines []string `json:"headlines"`
	Topic     string   `json:"topic"`
}

type HookRequest struct {
	Topic    string `json:"topic" validate:"required,min=2,max=150"`
	Platform string `json:"platform,omitempty" validate:"omitempty,oneof=twitter instagram tiktok linkedin"`
	Count    int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

type HookResponse struct {
	Hooks    []string `json:"hooks"`
	Platform string   `json:"platform"`
}

type PostRequest struct {
	Topic    string `json:"topic" validate:"required,min=2,max=200"`
	Platform string `json:"platform" validate:"required,oneof=twitter facebook instagram linkedin"`
	Tone     string `json:"tone,omitempty" validate:"omitempty,oneof=professional casual playful urgent"`
	Hashtags bool   `json:"hashtags,omitempty"`
}

type PostResponse struct {
	Post           string   `json:"post"`
	Platform       string   `json:"platform"`
	Hashtags       []string `json:"hashtags,omitempty"`
	CharacterCount int      `json:"character_count"`
}

type VoiceScriptRequest struct {
	Topic           string `json:"topic" validate:"required,min=2,max=200"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,oneof=15 30 60 90"`
	Style           string `json:"style,omitempty" validate:"omitempty,oneof=conversational energetic calm authoritative"`
}

type VoiceScriptResponse struct {
	Script          string `json:"script"`
	DurationSeconds int    `json:"duration_seconds"`
	WordCount       int    `json:"word_count"`
}

type PromptTemplateRequest struct {
	Goal     string `json:"goal" validate:"required,min=5,max=300"`
	Context  string `json:"context,omitempty" validate:"omitempty,max=500"`
	Audience string `json:"audience,omitempty" validate:"omitempty,max=100"`
}

type PromptTemplateResponse struct {
	Template  string   `json:"template"`
	Variables []string `json:"variables"`
}

// GenerationResult wraps a generator payload with billing info.
type GenerationResult struct {
	Result      interface{} `json:"result"`
	CreditsUsed int         `json:"credits_used"`
	Service     string      `json:"service"`
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
}
