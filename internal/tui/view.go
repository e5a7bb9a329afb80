package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	guideStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

const progressWidth = 20

// View renders the layout: tabs, body, input and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Bhagavad Gita")
	tabs := m.renderTabs()
	body := resultBoxStyle.Render(m.viewport.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	var input string
	if m.screen == screenVerse {
		input = queryBoxStyle.Render(dimStyle.Render("esc back · ←/→ previous/next · ctrl+y copy"))
	} else {
		input = queryBoxStyle.Render(m.input.View())
	}
	return header + "\n" + tabs + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderTabs() string {
	names := []string{"Search", "Ask"}
	out := make([]string, len(names))
	for i, n := range names {
		if mode(i) == m.mode {
			out[i] = activeTabStyle.Render(n)
		} else {
			out[i] = tabStyle.Render(n)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) renderBody() string {
	switch {
	case m.screen == screenVerse:
		return m.renderVerse()
	case m.mode == modeAsk:
		return m.renderChat()
	default:
		return m.renderSearch()
	}
}

func (m Model) renderSearch() string {
	if !m.search.Active {
		return dimStyle.Render("Type to search chapter names, summaries and verses.")
	}
	if len(m.search.Results) == 0 {
		return "No verses found."
	}
	var b strings.Builder
	for i, r := range m.search.Results {
		line := fmt.Sprintf("Chapter %d: %s (%s)", r.Chapter.Number, r.Chapter.NameMeaning, r.Chapter.Name)
		b.WriteString(m.item(i, line))
		b.WriteString("\n")
		if r.Verse != nil {
			fmt.Fprintf(&b, "    Verse %d: %s\n", r.Verse.VerseNumber, dimStyle.Render(r.Verse.Text))
		}
	}
	return b.String()
}

func (m Model) renderChat() string {
	wrap := lipgloss.NewStyle().Width(max(20, m.viewport.Width-4))
	var b strings.Builder
	for _, msg := range m.messages {
		if msg.Role == roleUser {
			b.WriteString(userStyle.Render("You"))
		} else {
			b.WriteString(guideStyle.Render("Gita"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Text))
		b.WriteString("\n\n")
	}
	if m.pending != "" {
		b.WriteString(dimStyle.Render("Searching the verses..."))
		b.WriteString("\n")
	}
	if len(m.refs) > 0 {
		b.WriteString(dimStyle.Render("Open a verse:"))
		b.WriteString("\n")
		for i, ref := range m.refs {
			b.WriteString(m.item(i, fmt.Sprintf("Chapter %d, Verse %d", ref.Chapter, ref.Verse)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderVerse() string {
	ch, v := m.chapter, m.verse
	if ch == nil || v == nil {
		return "No verse selected."
	}
	wrap := lipgloss.NewStyle().Width(max(20, m.viewport.Width-4))
	pct := ch.Progress(v.Number)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Chapter %d: %s", ch.Number, ch.NameMeaning)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(ch.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Verse %d (%d of %d)  %s %.0f%%\n\n", v.Number, ch.VerseIndex(v.Number)+1, ch.VersesCount, progressBar(pct), pct)
	b.WriteString(wrap.Render(v.Text))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Italic(true).Render(wrap.Render(v.Transliteration)))
	b.WriteString("\n\n")
	if v.HasHindi() {
		b.WriteString(dimStyle.Render("Hindi"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(v.Hindi()))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("Meaning"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(highlightBestSentence(v.Meaning, m.lastQuery)))
	return b.String()
}

func (m Model) item(i int, line string) string {
	if i == m.cursor {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func progressBar(pct float64) string {
	filled := int(pct / 100 * progressWidth)
	filled = min(max(filled, 0), progressWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", progressWidth-filled) + "]"
}

// highlightBestSentence emphasizes the sentence sharing the most words with
// the query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(trimAll(sentences), " ")
	}
	bestIdx, bestScore := 0, -1
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx && bestScore > 0 {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func trimAll(ss []string) []string {
	for i := range ss {
		ss[i] = strings.TrimSpace(ss[i])
	}
	return ss
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
