package nlp

import (
	"sort"
	"strings"
)

var stopwords = func() map[string]bool {
	m := make(map[string]bool)
	for _, w := range strings.Fields(`a al algo algunas algunos ante antes como con contra cual cuando de del desde
		donde durante e el ella ellas ellos en entre era es esa esas ese eso esos esta estas este esto estos
		está están estoy fue ha han hasta hay la las le les lo los me mi mis mucho muy más nada ni no nos
		o os otra otro para pero poco por porque que qué se sea ser si sin sobre son su sus sí también
		te tengo tiene tu tus tú un una uno unos unas y ya yo él cómo mí`) {
		m[w] = true
	}
	return m
}()

// IsStopword reports whether a lowercase token carries no topical content.
func IsStopword(token string) bool {
	return stopwords[token]
}

// Keywords returns up to n alphabetic, non-stopword tokens of text ordered
// by descending frequency; ties keep their first-seen order.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, t := range Tokenize(text) {
		if !isAlpha(t) || stopwords[t] {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
