package tutor

import "strings"

var hebrewLetters = map[rune]string{
	'ا': "א", 'ب': "ב", 'ت': "ת", 'ث': "ת'", 'ج': "ג", 'ح': "ח", 'خ': "כ'",
	'د': "ד", 'ذ': "ד'", 'ر': "ר", 'ز': "ז", 'س': "ס", 'ش': "ש", 'ص': "צ",
	'ض': "צ'", 'ط': "ט", 'ظ': "ט'", 'ع': "ע", 'غ': "ע'", 'ف': "פ", 'ق': "ק",
	'ك': "כ", 'ل': "ל", 'م': "מ", 'ن': "נ", 'ه': "ה", 'و': "ו", 'ي': "י",
	'ء': "'", 'ئ': "'", 'ى': "י", 'ة': "ה",
}

var latinLetters = map[rune]string{
	'ا': "a", 'ب': "b", 'ت': "t", 'ث': "th", 'ج': "j", 'ح': "h", 'خ': "kh",
	'د': "d", 'ذ': "dh", 'ر': "r", 'ز': "z", 'س': "s", 'ش': "sh", 'ص': "s",
	'ض': "d", 'ط': "t", 'ظ': "th", 'ع': "a'", 'غ': "gh", 'ف': "f", 'ق': "q",
	'ك': "k", 'ل': "l", 'م': "m", 'ن': "n", 'ه': "h", 'و': "w", 'ي': "y",
	'ء': "'", 'ئ': "i", 'ى': "a", 'ة': "h",
}

// TransliterateHebrew writes Arabic letters with their Hebrew counterparts.
// Runes without a mapping are kept.
func TransliterateHebrew(text string) string {
	return transliterate(text, hebrewLetters)
}

// TransliterateEnglish writes Arabic letters in Latin script.
// Runes without a mapping are kept.
func TransliterateEnglish(text string) string {
	return transliterate(text, latinLetters)
}

func transliterate(text string, table map[rune]string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if s, ok := table[r]; ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
