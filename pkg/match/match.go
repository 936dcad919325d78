/*
Package match implements the heuristic query matching used for career lookups.

Matching is a fixed, ordered chain of named strategies rather than a ranked
scorer: a candidate either matches or it doesn't, and callers keep their own
ordering. The strategies are deliberately forgiving about case, punctuation
and simple English suffixes so that voice transcripts like "nurses" still hit
"Registered Nurse".
*/
package match

import (
	"strings"
	"unicode"
)

// Strategy identifies one of the ordered matching heuristics.
type Strategy string

const (
	// StrategyNone means no strategy accepted the query.
	StrategyNone Strategy = ""
	// StrategySubstring accepts when the normalized title+code contains the query.
	StrategySubstring Strategy = "substring"
	// StrategyStem accepts when the stemmed title and query are equal or one
	// contains the other.
	StrategyStem Strategy = "stem"
	// StrategyWordPrefix accepts when a title word and the query share a prefix
	// relation in either direction.
	StrategyWordPrefix Strategy = "word-prefix"
)

// Normalize lowercases s, strips every character outside [a-z0-9] and
// whitespace, and trims the result. It is total and idempotent; empty input
// yields an empty string.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Stem normalizes s and strips at most one trailing suffix, checking "ing",
// "es" and "s" in that order. The "es" rule only fires after a sibilant
// cluster (classes, boxes, churches); a plain plural like "nurses" falls
// through to the "s" rule and keeps its final "e". Only one suffix is ever
// removed, so "nursing" stems to "nurs", not "nurse". This is a cheap
// heuristic, not a linguistic stemmer, and it accepts false positives
// ("bus" becomes "bu").
func Stem(s string) string {
	w := Normalize(s)
	if strings.HasSuffix(w, "ing") {
		return strings.TrimSuffix(w, "ing")
	}
	if hasSibilantES(w) {
		return strings.TrimSuffix(w, "es")
	}
	if strings.HasSuffix(w, "s") {
		return strings.TrimSuffix(w, "s")
	}
	return w
}

func hasSibilantES(w string) bool {
	for _, suffix := range []string{"sses", "xes", "zes", "ches", "shes"} {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}

// StemsRelated reports whether two stems are equal or one contains the other
// as a substring. Empty stems never relate.
func StemsRelated(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// WordPrefix reports whether any whitespace-delimited word of title
// (lowercased, punctuation kept) starts with the normalized query, or the
// normalized query starts with that word.
func WordPrefix(normQuery, title string) bool {
	if normQuery == "" {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if strings.HasPrefix(w, normQuery) || strings.HasPrefix(normQuery, w) {
			return true
		}
	}
	return false
}

// Match evaluates the strategies in their fixed order against a candidate
// title and classification code and returns the first one that accepts.
// Matching is case and punctuation insensitive and intentionally asymmetric:
// a very short query can match many titles through the word-prefix rule.
func Match(query, title, code string) (Strategy, bool) {
	nq := Normalize(query)
	if nq == "" {
		return StrategyNone, false
	}
	if strings.Contains(Normalize(title+" "+code), nq) {
		return StrategySubstring, true
	}
	if StemsRelated(Stem(title), Stem(query)) {
		return StrategyStem, true
	}
	if WordPrefix(nq, title) {
		return StrategyWordPrefix, true
	}
	return StrategyNone, false
}

// Matches reports whether any strategy accepts the query for the candidate.
func Matches(query, title, code string) bool {
	_, ok := Match(query, title, code)
	return ok
}
