package domain

// Hindi returns the secondary meaning, or "" when absent.
func (v Verse) Hindi() string {
	if v.HindiMeaning == nil {
		return ""
	}
	return *v.HindiMeaning
}

// HasHindi reports whether a non-empty secondary meaning is present.
func (v Verse) HasHindi() bool { return v.Hindi() != "" }

// Ref returns the navigation pair for v.
func (v Verse) Ref() VerseRef { return VerseRef{Chapter: v.ChapterNumber, Verse: v.Number} }

// Verse looks up a verse by its number.
func (c *Chapter) Verse(number int) (*Verse, bool) {
	i := c.VerseIndex(number)
	if i < 0 {
		return nil, false
	}
	return &c.Verses[i], true
}

// VerseIndex returns the position of the verse numbered number, or -1.
func (c *Chapter) VerseIndex(number int) int {
	for i := range c.Verses {
		if c.Verses[i].Number == number {
			return i
		}
	}
	return -1
}

// Progress returns how far into the chapter the given verse is, in percent.
func (c *Chapter) Progress(number int) float64 {
	i := c.VerseIndex(number)
	if i < 0 || c.VersesCount <= 0 {
		return 0
	}
	return float64(i+1) / float64(c.VersesCount) * 100
}

// Ref returns the navigation pair for a literal result.
func (r LiteralResult) Ref() VerseRef {
	ref := VerseRef{Chapter: r.Chapter.Number}
	if r.Verse != nil {
		ref.Verse = r.Verse.VerseNumber
	}
	return ref
}

// Refs returns the navigation pairs of the ranked verses, in order.
func (a Answer) Refs() []VerseRef {
	refs := make([]VerseRef, 0, len(a.Results))
	for _, r := range a.Results {
		refs = append(refs, VerseRef{Chapter: r.Chapter.Number, Verse: r.Verse.Number})
	}
	return refs
}
