package report

import "modbot/backend/internal/menu"

// Command keywords consumed from direct messages.
const (
	StartKeyword  = "report"
	CancelKeyword = "cancel"
	HelpKeyword   = "help"
)

// Primary abuse categories. These exact strings appear verbatim in the
// forwarded moderator payload.
const (
	CategoryHarassment = "Harassment/Bullying"
	CategoryFalseInfo  = "False/Misleading Information"
	CategoryViolence   = "Violence/Graphic Imagery"
	CategorySpam       = "Spam"
	CategoryOther      = "Other"
)

// DisinfoNotApplicable is recorded when the false-information branch was
// not taken.
const DisinfoNotApplicable = "N/A"

var categoryPrompt = menu.New(
	"Please tell us why you are reporting this message:",
	menu.Option{Emoji: "1️⃣", Label: "Harassment/Bullying"},
	menu.Option{Emoji: "2️⃣", Label: "False or Misleading Information"},
	menu.Option{Emoji: "3️⃣", Label: "Violence/Graphic Imagery"},
	menu.Option{Emoji: "4️⃣", Label: "Spam"},
	menu.Option{Emoji: "5️⃣", Label: "Other Harmful Content"},
)

// categoryByEmoji maps a category prompt reaction to the recorded category.
var categoryByEmoji = map[string]string{
	"1️⃣": CategoryHarassment,
	"2️⃣": CategoryFalseInfo,
	"3️⃣": CategoryViolence,
	"4️⃣": CategorySpam,
	"5️⃣": CategoryOther,
}

// subcategoryPrompts holds the disjoint level-two option sets per category.
// The lettered emoji ranges are disjoint across categories so a stale
// reaction on an old prompt can never select into the wrong set.
var subcategoryPrompts = map[string]*menu.Prompt{
	CategoryHarassment: menu.New(
		"Please select the type of Harassment/Bullying:",
		menu.Option{Emoji: "🇦", Label: "Bullying"},
		menu.Option{Emoji: "🇧", Label: "Sexual Harassment"},
		menu.Option{Emoji: "🇨", Label: "Threat"},
		menu.Option{Emoji: "🇩", Label: "Cyberstalking"},
		menu.Option{Emoji: "🇪", Label: "Hate Speech"},
	),
	CategoryFalseInfo: menu.New(
		"Please select the type of False/Misleading Information:",
		menu.Option{Emoji: "🇫", Label: "Public Health"},
		menu.Option{Emoji: "🇬", Label: "Elections"},
		menu.Option{Emoji: "🇭", Label: "Politics"},
		menu.Option{Emoji: "🇮", Label: "Fake News/Other"},
	),
	CategoryViolence: menu.New(
		"Please select the type of Violence/Graphic Imagery:",
		menu.Option{Emoji: "🇰", Label: "Terrorism"},
		menu.Option{Emoji: "🇱", Label: "Gore"},
		menu.Option{Emoji: "🇲", Label: "Self-Harm/Suicide"},
		menu.Option{Emoji: "🇳", Label: "Sexually Explicit"},
	),
	CategorySpam: menu.New(
		"Please select the type of Spam:",
		menu.Option{Emoji: "🇴", Label: "Impersonation"},
		menu.Option{Emoji: "🇵", Label: "Fraud/Phishing"},
		menu.Option{Emoji: "🇶", Label: "Solicitation"},
	),
	CategoryOther: menu.New(
		"Please select the closest category to Other:",
		menu.Option{Emoji: "🇷", Label: "Harm to Minors"},
		menu.Option{Emoji: "🇸", Label: "Copyright Violation"},
		menu.Option{Emoji: "🇹", Label: "Animal Cruelty"},
		menu.Option{Emoji: "🇺", Label: "Dangerous Organizations"},
	),
}

var disinfoPrompt = menu.New(
	"Please choose the option that best describes the type of false information you are reporting:",
	menu.Option{Emoji: "⬅️", Label: "Purposefully falsified information for obvious political, financial, or other gains."},
	menu.Option{Emoji: "➡️", Label: "False information due to suspected hacking, or unintentional false information"},
)

var detailsPrompt = menu.New(
	"Would you like to provide more details on how the content violates the community guidelines?",
	menu.Option{Emoji: "✅", Label: "Yes"},
	menu.Option{Emoji: "❌", Label: "No"},
)

var blockPrompt = menu.New(
	"Would you like to block this user?",
	menu.Option{Emoji: "🚫", Label: "Yes"},
	menu.Option{Emoji: "⭕", Label: "No"},
)

const (
	replyIntro       = "Thank you for starting the reporting process. Say `cancel` at any point to cancel."
	replyAskLink     = "Please copy paste the link to the message you want to report. You can obtain this link by right-clicking the message and clicking `Copy Message Link`."
	replyBadLink     = "I'm sorry, I couldn't read that link. Please try again or say `cancel` to cancel."
	replyGoneMessage = "It seems this message was deleted or never existed. Please try again or say `cancel` to cancel."
	replyAskDetails  = "Please provide more details on how the content violates the community guidelines."
	replyBlocked     = "The user has been blocked."
	replyCancelled   = "Report cancelled."
	replyFinalAck    = "We appreciate you taking the time to help us uphold the community guidelines. " +
		"Our team will take the appropriate action, which may result in the content or account removal."
)

// HelpText is the usage reply for the help keyword, sent by the driver.
const HelpText = "Use the `report` command to begin the reporting process.\n" +
	"Use the `cancel` command to cancel the report process.\n"
