package layouts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const appName = "Askboard"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + appName
	}
	return appName
}

// TitleFromPath derives a page title from a route, e.g. "/dashboard/profile"
// becomes "Dashboard Profile".
func TitleFromPath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	// A Caser keeps state and must not be shared between goroutines.
	titleCaser := cases.Title(language.English)
	words := make([]string, 0, len(segments))
	for _, s := range segments {
		words = append(words, titleCaser.String(strings.ReplaceAll(s, "-", " ")))
	}
	return strings.Join(words, " ")
}
