package summarizer

import (
	"fmt"
	"strings"

	"gita/internal/domain"
)

const (
	defaultGreeting = "Namaste! I am here to help you find wisdom from the Bhagavad Gita. Ask me any question about life, duty, karma, dharma or spirituality, and I will guide you to relevant verses."
	defaultIntro    = "Based on the teachings of the Bhagavad Gita, here are some relevant verses that may help answer your question:"
	defaultClosing  = "These teachings guide us on the path of righteousness and self-realization. Select any verse above to read it in full."
	defaultFallback = "I couldn't find a verse that directly addresses your question. The Bhagavad Gita speaks of dharma (duty), karma (action) and the path to self-realization. Try rephrasing your question, or browse the chapters to find wisdom that resonates with you."
)

// ResponseComposer writes the chat reply for a ranked verse list.
type ResponseComposer struct {
	Intro    string
	Closing  string
	Fallback string
	Welcome  string
}

// NewResponseComposer creates a composer with the stock wording.
func NewResponseComposer() *ResponseComposer {
	return &ResponseComposer{
		Intro:    defaultIntro,
		Closing:  defaultClosing,
		Fallback: defaultFallback,
		Welcome:  defaultGreeting,
	}
}

// Compose lists the verses in ranked order, one numbered item each with its
// chapter context. An empty list yields the fallback text.
func (c *ResponseComposer) Compose(results []domain.ScoredResult) string {
	if len(results) == 0 {
		return c.Fallback
	}
	var b strings.Builder
	b.WriteString(c.Intro)
	b.WriteString("\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. Chapter %d: %s\n", i+1, r.Chapter.Number, r.Chapter.NameMeaning)
		fmt.Fprintf(&b, "   Verse %d: %s\n\n", r.Verse.Number, r.Verse.Meaning)
	}
	b.WriteString(c.Closing)
	return b.String()
}

// Greeting is the first message of a chat.
func (c *ResponseComposer) Greeting() string { return c.Welcome }
