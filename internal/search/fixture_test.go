package search

import (
	"fmt"

	"gita/internal/domain"
)

func strPtr(s string) *string { return &s }

func chapter(number int, name, meaning, summary string, verses ...domain.Verse) domain.Chapter {
	for i := range verses {
		verses[i].ChapterNumber = number
	}
	return domain.Chapter{
		ID:          number,
		Number:      number,
		Name:        name,
		NameMeaning: meaning,
		Summary:     summary,
		VersesCount: len(verses),
		Verses:      verses,
	}
}

func verse(number int, text, meaning string) domain.Verse {
	return domain.Verse{Number: number, Text: text, Transliteration: fmt.Sprintf("verse %d", number), Meaning: meaning}
}

func testCorpus() []domain.Chapter {
	v47 := verse(47, "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन", "You have control over action alone, never over its results.")
	v47.Transliteration = "karmany evadhikaras te ma phaleshu kadachana"
	v47.HindiMeaning = strPtr("तेरा कर्म करने में ही अधिकार है")

	v20 := verse(20, "न जायते म्रियते वा कदाचिन्", "The soul is never born and never dies; it is eternal.")
	v20.Transliteration = "na jayate mriyate va kadachin"

	return []domain.Chapter{
		chapter(1, "अर्जुनविषादयोग", "Arjuna's Dilemma", "Arjuna is overcome with grief on the battlefield.",
			verse(1, "धर्मक्षेत्रे कुरुक्षेत्रे समवेता युयुत्सवः", "On the field of dharma, what did my sons and the sons of Pandu do?"),
			verse(28, "दृष्ट्वेमं स्वजनं कृष्ण", "Seeing my own kinsmen, O Krishna, my limbs give way."),
		),
		chapter(2, "सांख्ययोग", "Transcendental Knowledge", "",
			v20,
			v47,
		),
		chapter(3, "कर्मयोग", "The Path of Selfless Service", "Work done as sacrifice frees one from bondage.",
			verse(8, "नियतं कुरु कर्म त्वं", "Perform your prescribed duty, for action is better than inaction."),
			verse(19, "तस्मादसक्तः सततं", "Therefore, without attachment, always perform the work that has to be done."),
		),
	}
}
