// Package menu renders multi-choice prompts as reaction-taggable messages
// and maps incoming reaction emoji back to logical options. It is stateless;
// which prompt a reaction belongs to is decided by the owning flow.
package menu

import "strings"

// Option is one selectable choice on a prompt.
type Option struct {
	Emoji string
	Label string
}

// Prompt is a logical multi-choice question.
type Prompt struct {
	Text    string
	Options []Option
}

// New builds a prompt from alternating emoji/label pairs.
func New(text string, options ...Option) *Prompt {
	return &Prompt{Text: text, Options: options}
}

// Render produces the message body: the question followed by one line per
// option, "<emoji> <label>".
func (p *Prompt) Render() string {
	var b strings.Builder
	b.WriteString(p.Text)
	for _, opt := range p.Options {
		b.WriteString("\n")
		b.WriteString(opt.Emoji)
		b.WriteString(" ")
		b.WriteString(opt.Label)
	}
	return b.String()
}

// Emojis returns the reaction set to attach to the posted prompt, in order.
func (p *Prompt) Emojis() []string {
	out := make([]string, len(p.Options))
	for i, opt := range p.Options {
		out[i] = opt.Emoji
	}
	return out
}

// Find maps a reaction emoji to its option. A miss means the reaction does
// not belong to this prompt and the caller treats it as a no-op.
func (p *Prompt) Find(emoji string) (Option, bool) {
	for _, opt := range p.Options {
		if opt.Emoji == emoji {
			return opt, true
		}
	}
	return Option{}, false
}
