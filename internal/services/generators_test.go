package services

import (
	"strings"
	"testing"

	"xideaflow_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdCopy_RespectsPlatformLimit(t *testing.T) {
	resp := BuildAdCopy(dto.AdCopyRequest{
		ProductName:        "CloudSync Pro",
		ProductDescription: strings.Repeat("A very long product description. ", 10),
		Platform:           "google",
		Tone:               "professional",
	})

	assert.Equal(t, 90, resp.CharacterLimit)
	assert.LessOrEqual(t, resp.CharacterCount, 90)
	assert.Equal(t, len(resp.AdCopy), resp.CharacterCount)
	assert.Contains(t, resp.Recommendations, "Copy was shortened to fit the platform limit")
}

func TestBuildAdCopy_Deterministic(t *testing.T) {
	req := dto.AdCopyRequest{
		ProductName:        "CloudSync",
		ProductDescription: "Keeps your files in sync everywhere.",
		Platform:           "twitter",
	}
	assert.Equal(t, BuildAdCopy(req), BuildAdCopy(req))
}

func TestBuildEmail_ProfessionalGreeting(t *testing.T) {
	resp := BuildEmail(dto.EmailRequest{
		Subject:   "Quarterly results",
		Purpose:   "announcement",
		Recipient: "Jordan",
		Tone:      "professional",
	})

	assert.Equal(t, "Quarterly results", resp.SubjectLine)
	assert.True(t, strings.HasPrefix(resp.Body, "Dear Jordan,"))

	casual := BuildEmail(dto.EmailRequest{
		Subject:   "Quarterly results",
		Purpose:   "announcement",
		Recipient: "Jordan",
		Tone:      "casual",
	})
	assert.True(t, strings.HasPrefix(casual.Body, "Hi Jordan,"))
}

func TestBuildHeadlines_CountBounds(t *testing.T) {
	resp := BuildHeadlines(dto.HeadlineRequest{Topic: "productivity"})
	assert.Len(t, resp.Headlines, 5, "Default is five headlines")

	resp = BuildHeadlines(dto.HeadlineRequest{Topic: "productivity", Count: 100})
	assert.Len(t, resp.Headlines, len(headlinePatterns), "Capped at the pattern pool")

	for _, h := range resp.Headlines {
		assert.Contains(t, h, "productivity")
	}
}

func TestBuildHooks_DefaultPlatform(t *testing.T) {
	resp := BuildHooks(dto.HookRequest{Topic: "cold email"})
	assert.Equal(t, "twitter", resp.Platform)
	assert.Len(t, resp.Hooks, 5)
}

func TestBuildPost_HashtagsOptIn(t *testing.T) {
	without := BuildPost(dto.PostRequest{Topic: "AI tools", Platform: "linkedin"})
	assert.Empty(t, without.Hashtags)

	with := BuildPost(dto.PostRequest{Topic: "AI tools", Platform: "linkedin", Hashtags: true})
	assert.NotEmpty(t, with.Hashtags)
	assert.Contains(t, with.Hashtags, "#aitools", "Topic hashtag is derived from the topic")
	assert.Contains(t, with.Post, "#aitools")
}

func TestBuildVoiceScript_WordBudget(t *testing.T) {
	short := BuildVoiceScript(dto.VoiceScriptRequest{Topic: "meditation", DurationSeconds: 15})
	long := BuildVoiceScript(dto.VoiceScriptRequest{Topic: "meditation", DurationSeconds: 90})

	assert.Greater(t, long.WordCount, short.WordCount)
	assert.LessOrEqual(t, short.WordCount, int(15*wordsPerSecond)+20)
	assert.NotEmpty(t, short.Script)
}

func TestBuildPromptTemplate_Variables(t *testing.T) {
	resp := BuildPromptTemplate(dto.PromptTemplateRequest{Goal: "write launch announcements"})
	assert.Equal(t, []string{"TOPIC", "TONE", "FORMAT"}, resp.Variables)

	withAudience := BuildPromptTemplate(dto.PromptTemplateRequest{
		Goal:     "write launch announcements",
		Audience: "startup founders",
	})
	assert.Contains(t, withAudience.Variables, "AUDIENCE")
	assert.Contains(t, withAudience.Template, "startup founders")
}

func TestTruncateAtWord(t *testing.T) {
	assert.Equal(t, "short", truncateAtWord("short", 90))

	long := "the quick brown fox jumps over the lazy dog"
	got := truncateAtWord(long, 20)
	assert.LessOrEqual(t, len(got), 20)
	assert.Equal(t, "the quick brown...", got, "Cuts at a word boundary")
}
