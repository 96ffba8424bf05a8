package models

type PlanType string
type TransactionType string
type TransactionStatus string
type CreditActionType string
type UsagePeriod string
type ContentPlatform string
type ContentStatus string

const (
	PlanTypeFree         PlanType = "FREE"
	PlanTypeSubscription PlanType = "SUBSCRIPTION"
	PlanTypePayPerUse    PlanType = "PAY_PER_USE"

	TransactionTypePurchase          TransactionType = "PURCHASE"
	TransactionTypeSubscriptionGrant TransactionType = "SUBSCRIPTION_GRANT"
	TransactionTypeBonus             TransactionType = "BONUS"
	TransactionTypeRefund            TransactionType = "REFUND"

	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"

	ActionGenerateAdCopy         CreditActionType = "GENERATE_AD_COPY"
	ActionGenerateEmail          CreditActionType = "GENERATE_EMAIL"
	ActionGenerateHeadline       CreditActionType = "GENERATE_HEADLINE"
	ActionGenerateHook           CreditActionType = "GENERATE_HOOK"
	ActionGeneratePost           CreditActionType = "GENERATE_POST"
	ActionGenerateVoiceScript    CreditActionType = "GENERATE_VOICE_SCRIPT"
	ActionGeneratePromptTemplate CreditActionType = "GENERATE_PROMPT_TEMPLATE"
	ActionUsePromptTemplate      CreditActionType = "USE_PROMPT_TEMPLATE"
	ActionScheduleContent        CreditActionType = "SCHEDULE_CONTENT"

	UsagePeriodDaily   UsagePeriod = "DAILY"
	UsagePeriodWeekly  UsagePeriod = "WEEKLY"
	UsagePeriodMonthly UsagePeriod = "MONTHLY"

	PlatformTwitter   ContentPlatform = "TWITTER"
	PlatformFacebook  ContentPlatform = "FACEBOOK"
	PlatformInstagram ContentPlatform = "INSTAGRAM"
	PlatformLinkedIn  ContentPlatform = "LINKEDIN"
	PlatformTikTok    ContentPlatform = "TIKTOK"

	ContentStatusScheduled ContentStatus = "SCHEDULED"
	ContentStatusPublished ContentStatus = "PUBLISHED"
	ContentStatusFailed    ContentStatus = "FAILED"
	ContentStatusCancelled ContentStatus = "CANCELLED"
)
