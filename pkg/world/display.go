package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// DisplayName turns a snake_case identifier into a human-readable name,
// e.g. "forest_wolf" becomes "Forest Wolf".
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
