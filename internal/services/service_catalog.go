package services

// Canonical names of the billable service catalog. Seed data and the
// orchestrator resolve services by these names.
const (
	ServiceAdCopyGenerator         = "ai_ad_copy_generator"
	ServiceEmailGenerator          = "email_generator_ai"
	ServiceHeadlineGenerator       = "ai_headline_generator"
	ServiceHookGenerator           = "hook_generator_ai"
	ServicePostGenerator           = "post_generator_ai"
	ServicePromptMarketplace       = "ai_prompt_marketplace"
	ServicePromptTemplateGenerator = "prompt_template_generator"
	ServiceVoiceScriptWriter       = "ai_voice_script_writer"
	ServiceContentScheduler        = "content_scheduler"
)
