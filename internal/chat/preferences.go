package chat

import "fmt"

// Language selects the greeting and the rendering of answers.
type Language string

const (
	LanguageDefault Language = "default"
	LanguageArabic  Language = "arabic"
	LanguageHebrew  Language = "transliteration-hebrew"
	LanguageEnglish Language = "transliteration-english"
)

// Preferences is the record captured once per session.
type Preferences struct {
	Name     string `validate:"required"`
	Level    string `validate:"required"`
	Week     string `validate:"required"`
	Gender   string `validate:"required"`
	Language string `validate:"required"`
}

// Option is a selectable value with its display label.
type Option struct {
	Label string
	Value string
}

// Levels lists the proficiency levels materials are organised by.
var Levels = []string{"beginner", "intermediate", "advanced", "expert"}

// Genders lists the accepted gender values.
var Genders = []string{"male", "female"}

// Languages lists the answer languages in display order.
var Languages = []Option{
	{Label: "English", Value: string(LanguageDefault)},
	{Label: "Arabic", Value: string(LanguageArabic)},
	{Label: "Transliteration (Hebrew)", Value: string(LanguageHebrew)},
	{Label: "Transliteration (English)", Value: string(LanguageEnglish)},
}

// WeeksPerLevel is the number of weekly lessons per level.
const WeeksPerLevel = 10

// Weeks returns the week identifiers week01 through weekNN.
func Weeks(n int) []string {
	weeks := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		weeks = append(weeks, WeekID(i))
	}
	return weeks
}

// WeekID formats a week number the way materials are keyed.
func WeekID(n int) string {
	return fmt.Sprintf("week%02d", n)
}

// WelcomeMessage returns the greeting for language, addressed to name.
func WelcomeMessage(language Language, name string) string {
	switch language {
	case LanguageArabic:
		return fmt.Sprintf("مرحبًا %s! كيف بقدر اساعدك اليوم؟", name)
	case LanguageHebrew:
		return fmt.Sprintf("מרחבא %s! כיף בקדר אסאעדכ אליום?", name)
	case LanguageEnglish:
		return fmt.Sprintf("Marhaba %s! Kaif bakdar asadak alyom?", name)
	default:
		return fmt.Sprintf("Hello %s! How can I help you today?", name)
	}
}
