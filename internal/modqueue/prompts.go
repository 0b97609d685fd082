package modqueue

import (
	"fmt"

	"modbot/backend/internal/menu"
)

var modCategoryPrompt = menu.New(
	"Does the above message fall into any of the following categories?",
	menu.Option{Emoji: "🔴", Label: "Harassment/Bullying"},
	menu.Option{Emoji: "🟠", Label: "False or Misleading Information"},
	menu.Option{Emoji: "🟡", Label: "Violence/Graphic Imagery"},
	menu.Option{Emoji: "🟢", Label: "Spam"},
	menu.Option{Emoji: "🔵", Label: "Other Harmful Content"},
)

func falseConfirmPrompt(content string) *menu.Prompt {
	return menu.New(
		fmt.Sprintf("Does the message %q contain false or misleading information?", content),
		menu.Option{Emoji: "✅", Label: "Yes"},
		menu.Option{Emoji: "❌", Label: "No"},
	)
}

func intentPrompt(content string) *menu.Prompt {
	return menu.New(
		fmt.Sprintf("Is the message %q:", content),
		menu.Option{Emoji: "⬅️", Label: "Fabricated Content / Disinformation"},
		menu.Option{Emoji: "➡️", Label: "Satire / Parody"},
	)
}

func severityPrompt(content string) *menu.Prompt {
	return menu.New(
		fmt.Sprintf("Please rate the harm of the message %q:", content),
		menu.Option{Emoji: "1️⃣", Label: "(Immediate Harm)"},
		menu.Option{Emoji: "2️⃣", Label: "(Moderate Harm)"},
		menu.Option{Emoji: "3️⃣", Label: "(Low Harm)"},
	)
}

const (
	ackHarassment = "Thank you! We have tagged this message and will inform the Hate & Harassment Team."
	ackViolence   = "Thank you! We have tagged this message and will inform the Violence/Graphic Imagery Team."
	ackSpam       = "Thank you! We have tagged this message and will inform the Spam Team."
	ackOther      = "Thank you! We have tagged this message and will inform the Multidisciplinary Team."
	ackNoFalse    = "Thank you!"
	ackDeferred   = "Thank you! We will take action if the issue becomes more serious."
	ackTakenDown  = "Thank you! We have taken down the message."
	ackFlagged    = "Thank you! We have flagged the message."

	banNotice = "The author of the message has been banned because they have exceeded " +
		"the threshold of allowed points for reports against them."
)
