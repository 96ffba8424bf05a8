package services

import (
	"fmt"
	"strings"

	"xideaflow_backend/internal/services/dto"
)

// Template-based content builders. All output is deterministic: the
// same request always yields the same content. No external AI calls.

var platformCharLimits = map[string]int{
	"facebook":  125,
	"google":    90,
	"instagram": 125,
	"linkedin":  150,
	"twitter":   280,
}

var platformCTAs = map[string]string{
	"facebook":  "Shop Now",
	"google":    "Learn More",
	"instagram": "Tap the link in bio",
	"linkedin":  "Request a demo",
	"twitter":   "Join us today",
}

var toneOpeners = map[string]string{
	"professional": "Introducing",
	"casual":       "Say hello to",
	"playful":      "Meet your new favorite:",
	"urgent":       "Don't miss out on",
}

// BuildAdCopy assembles platform-aware ad copy with a call to action
// and improvement recommendations.
func BuildAdCopy(req dto.AdCopyRequest) dto.AdCopyResponse {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	opener := toneOpeners[tone]
	cta := platformCTAs[req.Platform]
	limit := platformCharLimits[req.Platform]

	copyText := fmt.Sprintf("%s %s. %s", opener, req.ProductName, req.ProductDescription)
	if req.TargetAudience != "" {
		copyText += fmt.Sprintf(" Made for %s.", req.TargetAudience)
	}
	copyText += " " + cta + "."

	recommendations := []string{
		fmt.Sprintf("Keep the first %d characters compelling; that is what most feeds show", limit),
		"Test at least two variants against each other",
	}
	if len(copyText) > limit {
		copyText = truncateAtWord(copyText, limit)
		recommendations = append(recommendations, "Copy was shortened to fit the platform limit")
	}
	if req.Platform == "google" {
		recommendations = append(recommendations, "Mirror the ad headline in your landing page title")
	}

	return dto.AdCopyResponse{
		AdCopy:          copyText,
		Platform:        req.Platform,
		CharacterCount:  len(copyText),
		CharacterLimit:  limit,
		CallToAction:    cta,
		Recommendations: recommendations,
	}
}

var emailOpenings = map[string]string{
	"marketing":    "We thought you would want to see this first.",
	"welcome":      "Welcome aboard! We are thrilled to have you.",
	"followup":     "Just circling back on our last conversation.",
	"announcement": "We have news worth sharing.",
}

func BuildEmail(req dto.EmailRequest) dto.EmailResponse {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	greeting := "Hi " + req.Recipient + ","
	if tone == "professional" {
		greeting = "Dear " + req.Recipient + ","
	}

	var body strings.Builder
	body.WriteString(greeting + "\n\n")
	body.WriteString(emailOpenings[req.Purpose] + "\n\n")
	body.WriteString(req.Subject + ".")
	if req.KeyPoints != "" {
		body.WriteString("\n\nHere is what matters most:\n" + req.KeyPoints)
	}
	body.WriteString("\n\nBest regards,\nThe team")

	return dto.EmailResponse{
		SubjectLine: req.Subject,
		Body:        body.String(),
		Purpose:     req.Purpose,
	}
}

var headlinePatterns = []string{
	"The Complete Guide to %s",
	"How %s Can Change the Way You Work",
	"%s: What Nobody Tells You",
	"7 Things to Know About %s",
	"Why %s Matters More Than Ever",
	"The Smart Way to Approach %s",
	"%s Made Simple",
	"What We Learned About %s",
	"Stop Guessing: %s Explained",
	"%s in Practice: A Field Guide",
}

func BuildHeadlines(req dto.HeadlineRequest) dto.HeadlineResponse {
	count := req.Count
	if count <= 0 {
		count = 5
	}
	if count > len(headlinePatterns) {
		count = len(headlinePatterns)
	}

	topic := req.Topic
	if req.Keyword != "" {
		topic = req.Keyword + " " + topic
	}

	headlines := make([]string, 0, count)
	for _, pattern := range headlinePatterns[:count] {
		h := fmt.Sprintf(pattern, topic)
		if req.Audience != "" {
			h += " (for " + req.Audience + ")"
		}
		headlines = append(headlines, h)
	}

	return dto.HeadlineResponse{
		Headlines: headlines,
		Topic:     req.Topic,
	}
}

var hookPatterns = []string{
	"Nobody talks about this side of %s.",
	"I spent a year on %s so you don't have to.",
	"The biggest mistake people make with %s:",
	"%s changed everything for us. Here's how.",
	"Unpopular opinion: %s is easier than you think.",
	"3 seconds to explain %s. Ready?",
	"What I wish I knew before starting with %s.",
	"%s, explained like you're five.",
}

func BuildHooks(req dto.HookRequest) dto.HookResponse {
	count := req.Count
	if count <= 0 {
		count = 5
	}
	if count > len(hookPatterns) {
		count = len(hookPatterns)
	}

	platform := req.Platform
	if platform == "" {
		platform = "twitter"
	}

	hooks := make([]string, 0, count)
	for _, pattern := range hookPatterns[:count] {
		hooks = append(hooks, fmt.Sprintf(pattern, req.Topic))
	}

	return dto.HookResponse{
		Hooks:    hooks,
		Platform: platform,
	}
}

var platformHashtags = map[string][]string{
	"twitter":   {"#trending", "#tips"},
	"facebook":  {"#community"},
	"instagram": {"#instadaily", "#inspiration", "#growth"},
	"linkedin":  {"#professional", "#industry"},
}

func BuildPost(req dto.PostRequest) dto.PostResponse {
	tone := req.Tone
	if tone == "" {
		tone = "casual"
	}

	post := fmt.Sprintf("%s %s. Here's our take and why it matters to you. What's your experience with %s? Tell us below.",
		toneOpeners[tone], req.Topic, req.Topic)

	var tags []string
	if req.Hashtags {
		tags = append([]string{}, platformHashtags[req.Platform]...)
		tags = append(tags, "#"+strings.ReplaceAll(strings.ToLower(req.Topic), " ", ""))
		post += "\n\n" + strings.Join(tags, " ")
	}

	if limit, ok := platformCharLimits[req.Platform]; ok && req.Platform == "twitter" && len(post) > limit {
		post = truncateAtWord(post, limit)
	}

	return dto.PostResponse{
		Post:           post,
		Platform:       req.Platform,
		Hashtags:       tags,
		CharacterCount: len(post),
	}
}

// Spoken-word pacing: roughly 140 words per minute.
const wordsPerSecond = 140.0 / 60.0

func BuildVoiceScript(req dto.VoiceScriptRequest) dto.VoiceScriptResponse {
	style := req.Style
	if style == "" {
		style = "conversational"
	}

	targetWords := int(float64(req.DurationSeconds) * wordsPerSecond)

	sections := []string{
		fmt.Sprintf("[Opening - %s tone] Let's talk about %s.", style, req.Topic),
		fmt.Sprintf("Most people overlook how much %s affects their day to day. That ends now.", req.Topic),
		fmt.Sprintf("Here's the single most useful thing to remember about %s: start small and stay consistent.", req.Topic),
		fmt.Sprintf("[Closing] If %s matters to you, take the first step today.", req.Topic),
	}

	var script strings.Builder
	words := 0
	for _, section := range sections {
		sectionWords := len(strings.Fields(section))
		if words > 0 && words+sectionWords > targetWords {
			break
		}
		if words > 0 {
			script.WriteString("\n\n")
		}
		script.WriteString(section)
		words += sectionWords
	}

	return dto.VoiceScriptResponse{
		Script:          script.String(),
		DurationSeconds: req.DurationSeconds,
		WordCount:       words,
	}
}

func BuildPromptTemplate(req dto.PromptTemplateRequest) dto.PromptTemplateResponse {
	variables := []string{"TOPIC", "TONE", "FORMAT"}

	var b strings.Builder
	b.WriteString("You are an expert assistant. Goal: " + req.Goal + ".\n")
	if req.Context != "" {
		b.WriteString("Context: " + req.Context + "\n")
	}
	if req.Audience != "" {
		b.WriteString("Audience: " + req.Audience + "\n")
		variables = append(variables, "AUDIENCE")
	}
	b.WriteString("Write about [TOPIC] in a [TONE] tone. Present the answer as [FORMAT]. Be specific and avoid filler.")

	return dto.PromptTemplateResponse{
		Template:  b.String(),
		Variables: variables,
	}
}

// truncateAtWord cuts s to at most limit runes without splitting the
// final word, appending an ellipsis when something was removed.
func truncateAtWord(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit-3]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
