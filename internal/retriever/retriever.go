package retriever

import (
	"math"
	"sort"
	"strings"

	"github.com/robelasefa/mafirestaurant/internal/kb"
)

const (
	defaultTopK = 6
	// exactPhraseMinLen guards the whole-query substring bonus against
	// trivially short queries.
	exactPhraseMinLen = 4
)

// SearchResult is one scored document, ephemeral per query.
type SearchResult struct {
	ID      string  `json:"id"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// Weights are the tunable scoring constants. The defaults were chosen to
// satisfy the intended rankings rather than derived analytically.
type Weights struct {
	// SynonymTerm scales term hits introduced only via synonym expansion;
	// directly asked terms carry weight 1.
	SynonymTerm float64
	// SectionRaw is the flat bonus when the section label contains a raw
	// query term; SectionSynonym applies for synonym-only terms.
	SectionRaw     float64
	SectionSynonym float64
	// Bigram rewards a verbatim two-token phrase match in the doc text.
	Bigram float64
	// ExactPhrase rewards the full normalized query appearing verbatim.
	ExactPhrase float64
	// Fallback is the constant score assigned to default documents when
	// the query has no usable tokens.
	Fallback float64
}

func DefaultWeights() Weights {
	return Weights{
		SynonymTerm:    0.6,
		SectionRaw:     4,
		SectionSynonym: 2,
		Bigram:         5,
		ExactPhrase:    8,
		Fallback:       0.1,
	}
}

// defaultFallbackSections are the "always useful" sections returned for
// queries that tokenize to nothing.
var defaultFallbackSections = []string{"Hours", "Location", "Reservations", "Meeting Halls", "Menu"}

type indexedDoc struct {
	kb.Doc
	normText    string
	normSection string
	tokens      []string
}

// Index is the read-only retrieval state: the indexed corpus plus its IDF
// table. Built once at startup; every query is a pure read over it, so
// concurrent searches need no locking.
type Index struct {
	docs     []indexedDoc
	idf      map[string]float64
	total    int
	weights  Weights
	fallback map[string]struct{}
}

type Option func(*Index)

// WithWeights overrides the scoring constants.
func WithWeights(w Weights) Option {
	return func(ix *Index) {
		ix.weights = w
	}
}

// WithFallbackSections overrides the sections served for empty queries.
func WithFallbackSections(sections []string) Option {
	return func(ix *Index) {
		ix.fallback = sectionSet(sections)
	}
}

// New builds an immutable index over the corpus: normalized text and
// tokens per document, then the IDF table.
func New(docs []kb.Doc, opts ...Option) *Index {
	ix := &Index{
		weights:  DefaultWeights(),
		fallback: sectionSet(defaultFallbackSections),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}
	ix.rebuild(docs)
	return ix
}

func (ix *Index) rebuild(docs []kb.Doc) {
	ix.docs = make([]indexedDoc, 0, len(docs))
	for _, doc := range docs {
		ix.docs = append(ix.docs, indexedDoc{
			Doc:         doc,
			normText:    Normalize(doc.Text),
			normSection: Normalize(doc.Section),
			tokens:      Tokenize(doc.Text),
		})
	}
	ix.total = len(ix.docs)
	ix.idf = make(map[string]float64)
	for _, doc := range ix.docs {
		for _, token := range doc.tokens {
			if _, done := ix.idf[token]; done {
				continue
			}
			df := 0
			for _, other := range ix.docs {
				if strings.Contains(other.normText, token) {
					df++
				}
			}
			ix.idf[token] = idfWeight(ix.total, df)
		}
	}
}

// Size reports the corpus size.
func (ix *Index) Size() int {
	return ix.total
}

// Search scores every document against the query and returns up to topK
// results ordered by descending score. Queries with no surviving tokens
// get the fixed fallback set. Never fails; an empty corpus yields an
// empty list.
func (ix *Index) Search(query string, topK int) []SearchResult {
	if topK <= 0 {
		topK = defaultTopK
	}
	terms := Tokenize(query)
	if len(terms) == 0 {
		return ix.fallbackResults(topK)
	}
	raw := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		raw[term] = struct{}{}
	}
	expanded := expandTerms(terms)
	// Sorted term order keeps floating-point accumulation identical across
	// calls for the same query.
	expandedList := make([]string, 0, len(expanded))
	for term := range expanded {
		expandedList = append(expandedList, term)
	}
	sort.Strings(expandedList)
	bigrams := queryBigrams(terms)
	normQuery := Normalize(query)

	results := make([]SearchResult, 0, len(ix.docs))
	for _, doc := range ix.docs {
		var score float64
		for _, term := range expandedList {
			_, direct := raw[term]
			if n := strings.Count(doc.normText, term); n > 0 {
				weight := ix.weights.SynonymTerm
				if direct {
					weight = 1
				}
				score += float64(n) * ix.termIDF(term) * weight
			}
			if strings.Contains(doc.normSection, term) {
				if direct {
					score += ix.weights.SectionRaw
				} else {
					score += ix.weights.SectionSynonym
				}
			}
		}
		for _, bigram := range bigrams {
			if strings.Contains(doc.normText, bigram) {
				score += ix.weights.Bigram
			}
		}
		if len(normQuery) > exactPhraseMinLen && strings.Contains(doc.normText, normQuery) {
			score += ix.weights.ExactPhrase
		}
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{ID: doc.ID, Section: doc.Section, Text: doc.Text, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// fallbackResults returns the default documents in corpus order with a
// small constant score signaling "default", not "matched".
func (ix *Index) fallbackResults(topK int) []SearchResult {
	results := make([]SearchResult, 0, topK)
	for _, doc := range ix.docs {
		if _, ok := ix.fallback[doc.Section]; !ok {
			continue
		}
		results = append(results, SearchResult{ID: doc.ID, Section: doc.Section, Text: doc.Text, Score: ix.weights.Fallback})
		if len(results) >= topK {
			break
		}
	}
	return results
}

// termIDF looks up the IDF weight; terms never seen as a corpus token are
// scored with the zero-document-frequency instantiation of the formula.
func (ix *Index) termIDF(term string) float64 {
	if weight, ok := ix.idf[term]; ok {
		return weight
	}
	return idfWeight(ix.total, 0)
}

func idfWeight(total, df int) float64 {
	return math.Log((float64(total)+1)/(float64(df)+1)) + 1
}

func queryBigrams(terms []string) []string {
	if len(terms) < 2 {
		return nil
	}
	bigrams := make([]string, 0, len(terms)-1)
	for i := 0; i+1 < len(terms); i++ {
		bigrams = append(bigrams, terms[i]+" "+terms[i+1])
	}
	return bigrams
}

func sectionSet(sections []string) map[string]struct{} {
	set := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		set[section] = struct{}{}
	}
	return set
}
