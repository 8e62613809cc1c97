// Package naming derives download filenames from book metadata.
package naming

import (
	"strings"

	"springer_downloader/internal/models"
)

var titleReplacer = strings.NewReplacer(
	" ", "_",
	",", "_",
	`\`, "-",
	"/", "-",
)

// LastName returns the lowercased last word of an author display name, with apostrophes replaced by "_".
func LastName(author string) string {
	author = strings.TrimSpace(strings.ReplaceAll(author, "\u00a0", " "))
	if i := strings.LastIndex(author, " "); i >= 0 {
		author = author[i+1:]
	}
	return strings.ReplaceAll(strings.ToLower(author), "'", "_")
}

// NormalizeTitle lowercases a title and makes it filename-safe.
func NormalizeTitle(title string) string {
	return titleReplacer.Replace(strings.ToLower(title))
}

// Filename builds "{lastname}-{title}.{ext}". Same input, same output.
func Filename(author, title string, format models.Format) string {
	return LastName(author) + "-" + NormalizeTitle(title) + "." + string(format)
}
