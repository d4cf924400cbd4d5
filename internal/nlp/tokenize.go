package nlp

import (
	"strings"
	"unicode"
)

// rawToken keeps the original casing so the tagger can spot proper nouns.
type rawToken struct {
	text  string
	punct bool
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// split breaks text into word tokens and single-rune punctuation tokens.
// A '.' or ',' between two digits stays inside the number ("1.5").
func split(text string) []rawToken {
	rs := []rune(text)
	var (
		out []rawToken
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, rawToken{text: cur.String()})
			cur.Reset()
		}
	}
	for i, r := range rs {
		switch {
		case isWordRune(r):
			cur.WriteRune(r)
		case (r == '.' || r == ',') && i > 0 && i+1 < len(rs) && unicode.IsDigit(rs[i-1]) && unicode.IsDigit(rs[i+1]):
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			out = append(out, rawToken{text: string(r), punct: true})
		}
	}
	flush()
	return out
}

// Tokenize lowercases text and splits it into word and punctuation tokens.
func Tokenize(text string) []string {
	raw := split(text)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		out = append(out, strings.ToLower(t.text))
	}
	return out
}

// terms returns the vocabulary terms used by Similarity: lowercase runs of
// letters, digits or underscores at least two characters long.
func terms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r) && r != '_'
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
