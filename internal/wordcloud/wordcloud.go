// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordcloud turns a text corpus into weighted terms for a word
// cloud: tokens are filtered, folded onto their English stem, counted and
// assigned a font size proportional to frequency.
package wordcloud

import (
	"iter"
	"sort"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Defaults for Options.
const (
	DefaultMaxWords    = 200
	DefaultMinFontSize = 10
	DefaultMaxFontSize = 100
)

// Options controls term selection and sizing.
type Options struct {
	MaxWords    int
	MinFontSize int
	MaxFontSize int

	// Stopwords is called with the lowercase token. Nil selects IsStopWord.
	Stopwords func(string) bool
}

func (o Options) withDefaults() Options {
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = max(DefaultMaxFontSize, o.MinFontSize)
	}
	if o.Stopwords == nil {
		o.Stopwords = IsStopWord
	}
	return o
}

// Term is one word of the cloud.
type Term struct {
	Text     string `json:"text"`
	Count    int    `json:"count"`
	FontSize int    `json:"font_size"`
}

// group collects every surface form that folds onto one stem.
type group struct {
	count int
	forms map[string]int
	best  string
	order int
}

// Generate returns at most opts.MaxWords terms ordered by descending count.
// Each term is displayed in its most frequent surface form; ties between
// terms keep first-occurrence order.
func Generate(corpus string, opts Options) []Term {
	opts = opts.withDefaults()

	groups := make(map[string]*group)
	var ordered []*group
	for token := range FilterStopWords(Tokenize(corpus), opts.Stopwords) {
		key := snowballeng.Stem(strings.ToLower(token), false)
		g, ok := groups[key]
		if !ok {
			g = &group{forms: make(map[string]int), order: len(ordered)}
			groups[key] = g
			ordered = append(ordered, g)
		}
		g.count++
		g.forms[token]++
		if g.best == "" || g.forms[token] > g.forms[g.best] {
			g.best = token
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].count > ordered[j].count })
	if len(ordered) > opts.MaxWords {
		ordered = ordered[:opts.MaxWords]
	}
	if len(ordered) == 0 {
		return nil
	}

	hi, lo := ordered[0].count, ordered[len(ordered)-1].count
	terms := make([]Term, len(ordered))
	for i, g := range ordered {
		terms[i] = Term{Text: g.best, Count: g.count, FontSize: fontSize(g.count, lo, hi, opts)}
	}
	return terms
}

// fontSize scales count linearly from [lo, hi] onto the font range.
func fontSize(count, lo, hi int, opts Options) int {
	if hi == lo {
		return opts.MaxFontSize
	}
	span := float64(opts.MaxFontSize - opts.MinFontSize)
	return opts.MinFontSize + int(span*float64(count-lo)/float64(hi-lo)+0.5)
}

// Tokenize yields words of at least two characters made of letters, digits
// and inner apostrophes. A trailing "'s" is dropped and pure numbers are skipped.
func Tokenize(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		emit := func(end int) bool {
			word := strings.Trim(content[start:end], "'")
			word = strings.TrimSuffix(word, "'s")
			start = -1
			if len([]rune(word)) < 2 || isNumber(word) {
				return true
			}
			return yield(word)
		}
		for i, r := range content {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 && !emit(i) {
				return
			}
		}
		if start >= 0 {
			emit(len(content))
		}
	}
}

// FilterStopWords drops tokens whose lowercase form isStop accepts.
func FilterStopWords(seq iter.Seq[string], isStop func(string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if isStop(strings.ToLower(token)) {
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
