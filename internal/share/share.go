// Package share formats a verse for sharing and puts it on the clipboard.
package share

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"gita/internal/domain"
)

const signature = "— Bhagavad Gita"

// Text renders a verse as a plain-text block.
func Text(ch *domain.Chapter, v *domain.Verse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - Verse %d\n\n", ch.Name, v.Number)
	b.WriteString(v.Text)
	b.WriteString("\n\n")
	b.WriteString(v.Transliteration)
	b.WriteString("\n")
	if v.HasHindi() {
		b.WriteString("\n")
		b.WriteString(v.Hindi())
		b.WriteString("\n")
	}
	b.WriteString(v.Meaning)
	b.WriteString("\n\n")
	b.WriteString(signature)
	return b.String()
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
