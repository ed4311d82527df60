// Package search ranks depicts candidates for a free-text lookup term.
//
// The store narrows candidates with a substring match on label and alt
// labels; this package orders them. Scoring is Jaccard similarity between the
// case-folded token set of the query and that of each name of a candidate:
// score = |Q ∩ N| / |Q ∪ N|, keeping the best name. Ties are broken by usage
// count (descending) and then by item id (ascending), so output is
// deterministic.
//
// A Ranker holds no mutable state and is safe for concurrent use.
package search

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Candidate is one depicts item offered for ranking.
type Candidate struct {
	ID        int64
	Label     string
	AltLabels []string
	Count     int
}

// Result is a ranked candidate. Match is the name (label or alt label) that
// produced Score.
type Result struct {
	ID    int64
	Label string
	Match string
	Score float64
	Count int
}

// Ranker orders candidates against a query.
type Ranker interface {
	Rank(query string, cands []Candidate, k int) []Result
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	minScore  float64
	keepZero  bool
}

func defaultConfig() config {
	return config{keepZero: true}
}

// WithStopwords drops the given words from both query and names.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMinScore discards candidates scoring below s. Setting a positive
// minimum also drops zero-score candidates.
func WithMinScore(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.minScore = s
			c.keepZero = false
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type ranker struct {
	cfg config
}

// NewRanker returns a Ranker configured by opts.
func NewRanker(opts ...Option) Ranker {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &ranker{cfg: cfg}
}

// Rank scores every candidate and returns up to k results, best first.
// k <= 0 returns all of them. Candidates whose names share no token with
// the query are kept with score 0 (they still matched as substrings) unless
// a minimum score is configured.
func (r *ranker) Rank(query string, cands []Candidate, k int) []Result {
	if len(cands) == 0 || strings.TrimSpace(query) == "" {
		return nil
	}
	qTokens := tokenize(query, r.cfg.stopwords)

	out := make([]Result, 0, len(cands))
	for _, c := range cands {
		best, match := 0.0, c.Label
		for _, name := range append([]string{c.Label}, c.AltLabels...) {
			if s := jaccard(qTokens, tokenize(name, r.cfg.stopwords)); s > best {
				best, match = s, name
			}
		}
		if best == 0 && !r.cfg.keepZero {
			continue
		}
		if best < r.cfg.minScore {
			continue
		}
		out = append(out, Result{ID: c.ID, Label: c.Label, Match: match, Score: best, Count: c.Count})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].ID < out[b].ID
	})

	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// fold applies Unicode case folding. A Caser keeps state, so one is created
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(fold(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	over := overlap(a, b)
	if over == 0 {
		return 0
	}
	return float64(over) / float64(len(a)+len(b)-over)
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
