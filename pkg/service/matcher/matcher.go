package matcher

import (
	"sort"
	"strings"

	"github.com/civic-lab/sevadesk/pkg/domain/interfaces"
	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultLimit is the default maximum shortlist size
const DefaultLimit = 5

// Weights holds the per-field scoring weights. Title carries the
// highest weight; the substring bonus applies when the whole
// normalized question appears inside a record title.
type Weights struct {
	Title               int `toml:"title"`
	Description         int `toml:"description"`
	Process             int `toml:"process"`
	TitleSubstringBonus int `toml:"title_substring_bonus"`
}

// DefaultWeights returns the built-in scoring weights
func DefaultWeights() Weights {
	return Weights{
		Title:               3,
		Description:         1,
		Process:             1,
		TitleSubstringBonus: 5,
	}
}

// Validate checks the weights are usable for ranking
func (w Weights) Validate() error {
	if w.Title < 1 {
		return goerr.New("title weight must be at least 1", goerr.V("title", w.Title))
	}
	if w.Description < 0 || w.Process < 0 || w.TitleSubstringBonus < 0 {
		return goerr.New("weights must not be negative",
			goerr.V("description", w.Description),
			goerr.V("process", w.Process),
			goerr.V("title_substring_bonus", w.TitleSubstringBonus),
		)
	}
	if w.Title < w.Description || w.Title < w.Process {
		return goerr.New("title weight must be the highest field weight",
			goerr.V("title", w.Title),
			goerr.V("description", w.Description),
			goerr.V("process", w.Process),
		)
	}
	return nil
}

// Matcher scores catalog records against a free-text question and
// returns a bounded shortlist. It holds no mutable state, so a single
// instance is safe for concurrent use.
type Matcher struct {
	weights Weights
	limit   int
}

// Option is a functional option for Matcher configuration
type Option func(*Matcher)

// WithWeights overrides the scoring weights
func WithWeights(w Weights) Option {
	return func(m *Matcher) {
		m.weights = w
	}
}

// WithLimit overrides the maximum shortlist size
func WithLimit(limit int) Option {
	return func(m *Matcher) {
		if limit > 0 {
			m.limit = limit
		}
	}
}

// New creates a Matcher with the given options
func New(opts ...Option) *Matcher {
	m := &Matcher{
		weights: DefaultWeights(),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Limit returns the configured maximum shortlist size
func (m *Matcher) Limit() int {
	return m.limit
}

// Match ranks catalog records by textual relevance to the question.
// Zero-score records are excluded; ties keep catalog load order.
// An empty result is a valid outcome that callers must handle as
// "no matching service found".
func (m *Matcher) Match(question string, c interfaces.Catalog) model.MatchResult {
	tokens := Tokenize(question)
	normalized := normalize(question)

	var result model.MatchResult
	for record := range c.All() {
		score := m.score(record, tokens, normalized)
		if score > 0 {
			result = append(result, model.Match{Record: record, Score: score})
		}
	}

	// Stable sort keeps catalog order for equal scores, so identical
	// inputs always produce identical output.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	if len(result) > m.limit {
		result = result[:m.limit]
	}

	return result
}

func (m *Matcher) score(record *model.ServiceRecord, tokens []string, normalizedQuestion string) int {
	titleTokens := tokenSet(record.Title)
	descTokens := tokenSet(record.Description)
	processTokens := tokenSet(record.Process)

	score := 0
	for _, token := range tokens {
		if titleTokens[token] {
			score += m.weights.Title
		}
		if descTokens[token] {
			score += m.weights.Description
		}
		if processTokens[token] {
			score += m.weights.Process
		}
	}

	if normalizedQuestion != "" && strings.Contains(normalize(record.Title), normalizedQuestion) {
		score += m.weights.TitleSubstringBonus
	}

	return score
}

// stopwords are discarded from questions before scoring. The set is
// intentionally small: question filler and function words only.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"i": true, "me": true, "my": true, "we": true, "you": true, "your": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true,
	"can": true, "could": true, "will": true, "would": true, "should": true,
	"how": true, "what": true, "when": true, "where": true, "which": true, "who": true, "why": true,
	"to": true, "for": true, "of": true, "in": true, "on": true, "at": true,
	"and": true, "or": true, "it": true, "this": true, "that": true,
	"from": true, "by": true, "with": true, "about": true,
	"need": true, "want": true, "get": true, "please": true,
}

// Tokenize lowercases the text, strips punctuation, splits into
// tokens, and drops stopwords and duplicates. Token order follows
// first appearance.
func Tokenize(text string) []string {
	fields := strings.Fields(normalize(text))

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if stopwords[field] || seen[field] {
			continue
		}
		seen[field] = true
		tokens = append(tokens, field)
	}
	return tokens
}

// tokenSet tokenizes record text without stopword filtering: record
// fields are matched against already-filtered question tokens.
func tokenSet(text string) map[string]bool {
	fields := strings.Fields(normalize(text))
	set := make(map[string]bool, len(fields))
	for _, field := range fields {
		set[field] = true
	}
	return set
}

// normalize lowercases text, replaces punctuation with spaces, and
// collapses whitespace runs
func normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r > 127:
			// Keep non-ASCII letters so localized titles still match
			sb.WriteRune(r)
		default:
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
