package convert

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"k8s.io/apimachinery/pkg/util/validation"
)

// letters that do not decompose into a base letter plus marks.
var transliterations = map[rune]string{
	'ø': "o", 'Ø': "o",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'ß': "ss",
	'đ': "d", 'Đ': "d",
	'ð': "d", 'Ð': "d",
	'ł': "l", 'Ł': "l",
	'þ': "th", 'Þ': "th",
	'ı': "i",
}

// Slugify lowercases s, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single '-'. Leading and trailing
// separators are dropped. "Platform Team" becomes "platform-team".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false

	write := func(part string) {
		if pending && b.Len() > 0 {
			b.WriteByte('-')
		}
		pending = false
		b.WriteString(part)
	}

	for _, r := range folded {
		if tr, ok := transliterations[r]; ok {
			write(tr)
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			write(string(r))
			continue
		}
		pending = true
	}

	return b.String()
}

// ResourceName returns the object name for a group display name.
func ResourceName(displayName string) (string, error) {
	name := Slugify(displayName)
	if name == "" {
		return "", fmt.Errorf("%w: %q has no letters or digits", ErrInvalidResourceName, displayName)
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidResourceName, strings.Join(errs, "; "))
	}
	return name, nil
}
