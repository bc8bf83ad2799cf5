package items

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

const textAnalyzer = "item_text"

// SearchIndex is an in-memory full-text index over item names and
// descriptions.
type SearchIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	// unicode words, lowercased, no stemming or stop words: prefix queries
	// must see the terms as typed.
	err := indexMapping.AddCustomAnalyzer(textAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicodetok.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = textAnalyzer

	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = textAnalyzer
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = textAnalyzer
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}

func NewSearchIndex() (*SearchIndex, error) {
	m, err := buildIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("build index mapping: %w", err)
	}
	index, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Index adds or replaces the document for item.
func (s *SearchIndex) Index(item Item) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := map[string]interface{}{
		"name":        item.Name,
		"description": item.Description,
	}
	if err := s.index.Index(item.ID, doc); err != nil {
		return fmt.Errorf("index item %s: %w", item.ID, err)
	}
	return nil
}

func (s *SearchIndex) Delete(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.index.Delete(id); err != nil {
		return fmt.Errorf("unindex item %s: %w", id, err)
	}
	return nil
}

// Search returns the ids of the items whose name or description contain a
// word starting with every word of q. An empty q matches nothing; callers
// treat it as "no text filter".
func (s *SearchIndex) Search(ctx context.Context, q string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sq := buildSearchQuery(q)
	if sq == nil {
		return map[string]bool{}, nil
	}

	count, err := s.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return map[string]bool{}, nil
	}

	req := bleve.NewSearchRequestOptions(sq, int(count), 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make(map[string]bool, len(res.Hits))
	for _, h := range res.Hits {
		hits[h.ID] = true
	}
	return hits, nil
}

func queryTerms(q string) []string {
	return strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// buildSearchQuery ANDs one clause per word; each clause is a prefix match
// on name OR description.
func buildSearchQuery(q string) query.Query {
	terms := queryTerms(q)
	if len(terms) == 0 {
		return nil
	}

	clauses := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		name := bleve.NewPrefixQuery(term)
		name.SetField("name")
		desc := bleve.NewPrefixQuery(term)
		desc.SetField("description")
		clauses = append(clauses, bleve.NewDisjunctionQuery(name, desc))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return bleve.NewConjunctionQuery(clauses...)
}
