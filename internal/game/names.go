package game

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayName turns a catalog key such as "lazy_ghost" into "Lazy Ghost".
func displayName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

func money(amount int) string {
	return "$" + humanize.Comma(int64(amount))
}
