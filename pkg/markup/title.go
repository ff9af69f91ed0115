package markup

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// DisplayTitle derives a human-readable title from a file name:
// "meeting-notes.txt" becomes "Meeting Notes". Names without separators or
// extension pass through title-cased.
func DisplayTitle(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return fileName
	}
	return titleCaser.String(base)
}
