package domain

import (
	"regexp"
	"strings"
)

var (
	titleSuffixRgx = regexp.MustCompile(`(?i)\s*\((film|movie|\d{4})\)$`)
	whitespaceRgx  = regexp.MustCompile(`\s+`)

	leadingArticles = []string{"The ", "A ", "An "}

	titleVariations = []func(string) string{
		func(s string) string { return strings.ReplaceAll(s, " & ", " and ") },
		func(s string) string { return strings.ReplaceAll(s, " and ", " & ") },
		func(s string) string { return strings.ReplaceAll(s, "'", "") },
		func(s string) string { return strings.ReplaceAll(s, `"`, "") },
		func(s string) string { return strings.ReplaceAll(s, ":", "") },
		func(s string) string { return strings.ReplaceAll(s, "!", "") },
		func(s string) string { return strings.ReplaceAll(s, "?", "") },
	}
)

// CleanTitle strips disambiguation suffixes such as "(film)" or "(1999)" and a
// leading article, producing a looser search term.
func CleanTitle(title string) string {
	cleaned := strings.TrimSpace(title)
	cleaned = titleSuffixRgx.ReplaceAllString(cleaned, "")

	for _, article := range leadingArticles {
		if strings.HasPrefix(cleaned, article) {
			cleaned = strings.TrimPrefix(cleaned, article)
			break
		}
	}

	return strings.TrimSpace(cleaned)
}

// SearchTitles lists the search terms to try for a title, most specific first and
// without repeats.
func SearchTitles(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	seen := map[string]bool{}
	var candidates []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		candidates = append(candidates, s)
	}

	add(title)
	add(CleanTitle(title))

	for _, vary := range titleVariations {
		add(vary(title))
	}

	return candidates
}

// NormalizeTitle folds a title for duplicate detection: lower case, no leading
// "the " or trailing ", the", single spaces.
func NormalizeTitle(title string) string {
	n := strings.ToLower(strings.TrimSpace(title))
	n = whitespaceRgx.ReplaceAllString(n, " ")
	n = strings.TrimPrefix(n, "the ")
	n = strings.TrimSuffix(n, ", the")

	return strings.TrimSpace(n)
}
