package recipe

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// fallbackSlug is used for titles without any ASCII letters or digits.
	fallbackSlug = "recept"

	maxSlugLength = 80
)

// slugReplacer runs before normalization. It spells out the ampersand the
// Dutch way, drops apostrophes so "oma's" stays one word, and expands
// letters NFKD leaves alone.
var slugReplacer = strings.NewReplacer(
	"&", " en ",
	"'", "", "’", "",
	"ß", "ss",
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"ł", "l", "Ł", "l",
	"đ", "d", "Đ", "d",
	"þ", "th", "Þ", "th",
)

// Slugify converts a recipe title to a URL-safe slug.
// "Pasta Pesto & Broccoli" -> "pasta-pesto-en-broccoli".
// "Crème brûlée" -> "creme-brulee".
func Slugify(title string) string {
	s := norm.NFKD.String(slugReplacer.Replace(title))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r = unicode.ToLower(r)
		case unicode.Is(unicode.Mn, r):
			// Accent split off by NFKD.
			continue
		default:
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return truncateSlug(b.String())
}

// truncateSlug cuts long slugs back to the last whole word that fits.
func truncateSlug(s string) string {
	if len(s) <= maxSlugLength {
		return s
	}
	if s[maxSlugLength] == '-' {
		return s[:maxSlugLength]
	}
	s = s[:maxSlugLength]
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}
