package scoring

import "strings"

// punctuationBlocklist is the set of characters stripped from answers before
// comparison: . , / # ! $ % ^ & * ; : { } = - _ ` ~ ( )
const punctuationBlocklist = ".,/#!$%^&*;:{}=-_`~()"

// Normalize canonicalizes a string for answer comparison: trims surrounding
// whitespace, removes the punctuation blocklist, collapses any whitespace run
// to a single space and lowercases the result. Pure and idempotent.
//
// Applied uniformly to learner responses and stored answer keys at every
// free-text comparison site.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(punctuationBlocklist, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
