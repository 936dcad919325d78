package career

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/shawnasapp/careerserve/pkg/match"
)

var (
	// ErrNoData means the store failed to load or is empty; every lookup
	// degrades to this rather than failing the process.
	ErrNoData = errors.New("no career data available")
	// ErrNotFound means the store is loaded but no record matched the key.
	ErrNotFound = errors.New("career not found")
)

// Options carries the search tuning knobs from config.
type Options struct {
	// DefaultLimit is used when the caller does not request a limit.
	DefaultLimit int
	// MaxLimit is the hard cap requested limits are clamped to.
	MaxLimit int
	// MinQuery treats shorter queries as empty. The original behavior is 1;
	// raising it suppresses the degenerate single-letter matches of the
	// word-prefix rule.
	MinQuery int
}

func (o Options) withDefaults() Options {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 12
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 100
	}
	if o.MinQuery <= 0 {
		o.MinQuery = 1
	}
	return o
}

// Store is the immutable prepopulated career store. It is safe for
// concurrent readers because nothing mutates it after NewStore returns.
type Store struct {
	records []Record
	words   *patricia.Trie
	opts    Options
}

// resolveHeuristics maps a few common spoken keywords straight to ONET
// codes, ahead of any prepop matching.
var resolveHeuristics = map[string]string{
	"teacher":  "25-0000.00",
	"nurse":    "29-1141.00",
	"engineer": "17-0000.00",
	"doctor":   "29-1069.00",
}

// NewStore builds a store over the given records, preserving their order,
// and indexes title words for the word-prefix match rule. Records without a
// usable title have already been dropped by the loader; derived match
// fields are computed here, once.
func NewStore(records []Record, opts Options) *Store {
	s := &Store{
		records: records,
		words:   patricia.NewTrie(),
		opts:    opts.withDefaults(),
	}
	for i := range s.records {
		rec := &s.records[i]
		rec.stemTitle = match.Stem(rec.Keyword)
		rec.normHay = match.Normalize(rec.Keyword + " " + rec.OnetCode)
		s.indexWords(rec.Keyword, i)
	}
	return s
}

// indexWords adds every lowercased whitespace-split word of the match key to
// the trie, keyed to the record index. Punctuation is kept, mirroring the
// word-prefix rule.
func (s *Store) indexWords(keyword string, idx int) {
	for _, w := range strings.Fields(strings.ToLower(keyword)) {
		prefix := patricia.Prefix(w)
		if item := s.words.Get(prefix); item != nil {
			s.words.Set(prefix, append(item.([]int), idx))
			continue
		}
		s.words.Set(prefix, []int{idx})
	}
}

// Empty reports whether the store has no records.
func (s *Store) Empty() bool {
	return s == nil || len(s.records) == 0
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// All returns the loaded records in store order. Callers must not mutate
// the returned slice.
func (s *Store) All() []Record {
	if s == nil {
		return nil
	}
	return s.records
}

// EffectiveLimit resolves a raw limit parameter: empty or unparsable falls
// back to the default, anything else is clamped into [1, MaxLimit].
func (s *Store) EffectiveLimit(requested string) int {
	limit := s.opts.DefaultLimit
	if requested != "" {
		if parsed, err := strconv.Atoi(requested); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		return 1
	}
	if limit > s.opts.MaxLimit {
		return s.opts.MaxLimit
	}
	return limit
}

// Search filters the store through the match strategies, preserving store
// order among matches (no relevance ranking; results come back in raw file
// order, a known limitation carried over deliberately), and truncates to
// limit. An empty or whitespace-only query returns no results, not an
// error. Limits below 1 or above MaxLimit are clamped silently.
func (s *Store) Search(query string, limit int) []Summary {
	if s.Empty() {
		return []Summary{}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}

	nq := match.Normalize(query)
	if nq == "" || len(nq) < s.opts.MinQuery {
		return []Summary{}
	}
	qStem := match.Stem(query)
	wordHits := s.wordPrefixHits(nq)

	results := []Summary{}
	for i := range s.records {
		rec := &s.records[i]
		if strings.Contains(rec.normHay, nq) ||
			match.StemsRelated(rec.stemTitle, qStem) ||
			wordHits[i] {
			results = append(results, rec.Summary())
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// wordPrefixHits collects record indexes accepted by the word-prefix rule:
// indexed words the query is a prefix of (trie subtree) and indexed words
// that are a prefix of the query (trie prefix walk).
func (s *Store) wordPrefixHits(normQuery string) map[int]bool {
	hits := make(map[int]bool)
	visit := func(prefix patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			hits[idx] = true
		}
		return nil
	}
	if err := s.words.VisitSubtree(patricia.Prefix(normQuery), visit); err != nil {
		log.Errorf("word index subtree walk failed: %v", err)
	}
	if err := s.words.VisitPrefixes(patricia.Prefix(normQuery), visit); err != nil {
		log.Errorf("word index prefix walk failed: %v", err)
	}
	return hits
}

// Lookup resolves a single record by opaque key (ONET code, title or
// keyword). Exact key equality is checked across the whole store before
// falling back to the first record whose title or keyword contains the key
// as a substring, in store order.
func (s *Store) Lookup(key string) (Record, error) {
	if s.Empty() {
		return Record{}, ErrNoData
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return Record{}, ErrNotFound
	}
	for i := range s.records {
		if strings.ToLower(s.records[i].Key) == k {
			return s.records[i], nil
		}
	}
	for i := range s.records {
		rec := &s.records[i]
		if strings.Contains(strings.ToLower(rec.Title), k) ||
			strings.Contains(strings.ToLower(rec.Keyword), k) {
			return *rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// LookupCode resolves a record by exact (case-insensitive) ONET code only.
func (s *Store) LookupCode(code string) (Record, error) {
	if s.Empty() {
		return Record{}, ErrNoData
	}
	c := strings.ToLower(strings.TrimSpace(code))
	if c == "" {
		return Record{}, ErrNotFound
	}
	for i := range s.records {
		if s.records[i].OnetCode != "" && strings.ToLower(s.records[i].OnetCode) == c {
			return s.records[i], nil
		}
	}
	return Record{}, ErrNotFound
}

// Salary resolves a record by key and returns its median wage alongside the
// full record. Median stays null when the wage is unknown.
func (s *Store) Salary(key string) (SalaryInfo, error) {
	rec, err := s.Lookup(key)
	if err != nil {
		return SalaryInfo{}, err
	}
	return SalaryInfo{Median: rec.MedianWage, Raw: rec}, nil
}

// Suggestion is one entry of a Resolve response.
type Suggestion struct {
	Onet   *string `json:"onet"`
	Title  *string `json:"title"`
	Source string  `json:"source"`
}

// Resolution is the Resolve response envelope.
type Resolution struct {
	Suggestions []Suggestion `json:"suggestions"`
	Query       string       `json:"query"`
	Source      string       `json:"source"`
}

const maxResolveSuggestions = 6

// Resolve maps a spoken keyword to ONET suggestions: the fixed heuristic
// table wins, then up to six prepop matches, then an empty envelope.
func (s *Store) Resolve(keyword string) Resolution {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if code, ok := resolveHeuristics[k]; ok {
		c := code
		return Resolution{
			Suggestions: []Suggestion{{Onet: &c, Title: nil, Source: "heuristic"}},
			Query:       k,
			Source:      "heuristic",
		}
	}

	if !s.Empty() && k != "" {
		suggestions := []Suggestion{}
		for i := range s.records {
			rec := &s.records[i]
			if !strings.Contains(strings.ToLower(rec.Title), k) &&
				!strings.Contains(strings.ToLower(rec.Keyword), k) {
				continue
			}
			sg := Suggestion{Source: "prepop"}
			if rec.OnetCode != "" {
				code := rec.OnetCode
				sg.Onet = &code
			}
			title := rec.Title
			sg.Title = &title
			suggestions = append(suggestions, sg)
			if len(suggestions) >= maxResolveSuggestions {
				break
			}
		}
		if len(suggestions) > 0 {
			return Resolution{Suggestions: suggestions, Query: k, Source: "prepop"}
		}
	}

	return Resolution{Suggestions: []Suggestion{}, Query: k, Source: "none"}
}
