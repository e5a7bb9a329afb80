package search

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultThemes maps common life-question themes to the words a verse may
// use for them. Never mutated.
var defaultThemes = map[string][]string{
	"stress":     {"stress", "anxiety", "worry", "fear", "trouble", "difficulty", "sorrow", "grief"},
	"duty":       {"duty", "dharma", "responsibility", "obligation", "work", "action", "karma"},
	"happiness":  {"happiness", "joy", "peace", "bliss", "contentment", "satisfaction", "sukha"},
	"suffering":  {"suffering", "pain", "sorrow", "grief", "distress", "misery", "duhkha"},
	"death":      {"death", "mortal", "immortal", "soul", "atman", "eternal", "perish"},
	"attachment": {"attachment", "desire", "greed", "lust", "craving", "possess", "detachment"},
	"karma":      {"karma", "action", "deed", "work", "duty", "fruit", "result", "consequence"},
	"meditation": {"meditation", "yoga", "dhyana", "contemplation", "mind", "concentration"},
	"self":       {"self", "soul", "atman", "consciousness", "spirit", "inner", "true nature"},
	"god":        {"god", "krishna", "lord", "divine", "supreme", "brahman", "absolute"},
	"wisdom":     {"wisdom", "knowledge", "understanding", "realization", "enlightenment", "jnana"},
	"devotion":   {"devotion", "bhakti", "worship", "prayer", "faith", "love", "surrender"},
	"ego":        {"ego", "pride", "arrogance", "selfish", "selfless", "humility", "modesty"},
	"anger":      {"anger", "wrath", "rage", "fury", "calm", "patience", "forgiveness"},
	"fear":       {"fear", "afraid", "coward", "courage", "brave", "fearless", "anxiety"},
}

// Keywords is an immutable theme -> synonyms table used for query expansion.
type Keywords struct {
	themes map[string][]string
	keys   []string
}

// DefaultKeywords returns the built-in expansion table.
func DefaultKeywords() *Keywords { return NewKeywords(defaultThemes) }

// NewKeywords copies themes into a new table. Synonyms are lower-cased and
// empty entries dropped.
func NewKeywords(themes map[string][]string) *Keywords {
	k := &Keywords{themes: make(map[string][]string, len(themes))}
	for key, syns := range themes {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		cp := make([]string, 0, len(syns))
		for _, s := range syns {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				cp = append(cp, s)
			}
		}
		if len(cp) == 0 {
			continue
		}
		if _, dup := k.themes[key]; !dup {
			k.keys = append(k.keys, key)
		}
		k.themes[key] = append(k.themes[key], cp...)
	}
	sort.Strings(k.keys)
	return k
}

// LoadKeywords reads a YAML mapping of theme -> synonym list.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords %s: %w", path, err)
	}
	var themes map[string][]string
	if err := yaml.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	k := NewKeywords(themes)
	if len(k.keys) == 0 {
		return nil, fmt.Errorf("keywords %s: no themes defined", path)
	}
	return k, nil
}

// Themes returns the theme keys in sorted order.
func (k *Keywords) Themes() []string {
	return append([]string(nil), k.keys...)
}

// Synonyms returns a copy of the synonym list for theme.
func (k *Keywords) Synonyms(theme string) []string {
	return append([]string(nil), k.themes[theme]...)
}

// expand returns the original tokens followed by every synonym of every
// theme that one of the tokens touches. A token touches a theme when it
// contains, or is contained in, any of the theme's synonyms.
func (k *Keywords) expand(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, t := range tokens {
		add(t)
	}
	for _, t := range tokens {
		for _, key := range k.keys {
			syns := k.themes[key]
			if !touches(t, syns) {
				continue
			}
			for _, s := range syns {
				add(s)
			}
		}
	}
	return out
}

func touches(token string, synonyms []string) bool {
	for _, s := range synonyms {
		if strings.Contains(token, s) || strings.Contains(s, token) {
			return true
		}
	}
	return false
}
