// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import snowballeng "github.com/kljensen/snowball/english"

// extraStopWords covers contractions, web fragments and filler words that
// word clouds conventionally drop but the snowball list does not.
var extraStopWords = toSet(
	"also", "aren't", "can't", "cannot", "com", "could", "couldn't", "didn't",
	"doesn't", "don't", "else", "ever", "get", "hadn't", "hasn't", "haven't",
	"he'd", "he'll", "he's", "hence", "here's", "how's", "however", "http",
	"i'd", "i'll", "i'm", "i've", "isn't", "it's", "k", "let's", "like",
	"mustn't", "otherwise", "ought", "r", "shall", "shan't", "she'd", "she'll",
	"she's", "shouldn't", "since", "that's", "there's", "therefore", "they'd",
	"they'll", "they're", "they've", "wasn't", "we'd", "we'll", "we're", "we've",
	"weren't", "what's", "when's", "where's", "who's", "why's", "won't", "would",
	"wouldn't", "www", "you'd", "you'll", "you're", "you've",
)

// IsStopWord reports whether the lowercase word is an English stopword.
func IsStopWord(word string) bool {
	if snowballeng.IsStopWord(word) {
		return true
	}
	_, ok := extraStopWords[word]
	return ok
}

// StopSet returns a stopword predicate over a fixed word list.
func StopSet(words ...string) func(string) bool {
	set := toSet(words...)
	return func(word string) bool {
		_, ok := set[word]
		return ok
	}
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
