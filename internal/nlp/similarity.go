package nlp

import "math"

// Vector is a term-frequency bag of words.
type Vector map[string]int

// Vectorize counts the terms of text.
func Vectorize(text string) Vector {
	v := make(Vector)
	for _, t := range terms(text) {
		v[t]++
	}
	return v
}

// Cosine returns the cosine similarity of two vectors, 0 when either is
// empty.
func Cosine(a, b Vector) float64 {
	var dot, na, nb float64
	for term, ca := range a {
		na += float64(ca * ca)
		if cb, ok := b[term]; ok {
			dot += float64(ca * cb)
		}
	}
	for _, cb := range b {
		nb += float64(cb * cb)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return math.Min(1, dot/(math.Sqrt(na)*math.Sqrt(nb)))
}

// Similarity compares two texts by cosine similarity of their term
// frequencies over the union of both vocabularies. The vocabulary is built
// for each call; nothing is shared between calls.
func Similarity(a, b string) float64 {
	return Cosine(Vectorize(a), Vectorize(b))
}
