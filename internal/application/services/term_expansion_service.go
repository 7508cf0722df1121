package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// defaultMedicineSynonyms maps brand and regional names onto catalog names.
var defaultMedicineSynonyms = map[string][]string{
	"acetaminophen": {"paracetamol"},
	"tylenol":       {"paracetamol"},
	"crocin":        {"paracetamol"},
	"calpol":        {"paracetamol"},
	"amoxil":        {"amoxicillin"},
	"mox":           {"amoxicillin"},
	"zestril":       {"lisinopril"},
	"prinivil":      {"lisinopril"},
	"glucophage":    {"metformin"},
	"glycomet":      {"metformin"},
	"lipitor":       {"atorvastatin"},
	"atorva":        {"atorvastatin"},
	"fever":         {"paracetamol"},
	"cholesterol":   {"atorvastatin"},
	"diabetes":      {"metformin"},
}

// TermExpansionService expands search terms into the catalog names they
// stand for.
type TermExpansionService struct {
	terms map[string][]string
	mu    sync.RWMutex
}

// NewTermExpansionService creates a service seeded with the built-in synonym
// table.
func NewTermExpansionService() *TermExpansionService {
	s := &TermExpansionService{terms: make(map[string][]string, len(defaultMedicineSynonyms))}
	s.merge(defaultMedicineSynonyms)
	return s
}

// LoadFile merges a JSON object of term -> synonyms over the current table.
func (s *TermExpansionService) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read synonyms file: %w", err)
	}

	var mappings map[string][]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return fmt.Errorf("failed to parse synonyms file: %w", err)
	}
	s.merge(mappings)
	return nil
}

func (s *TermExpansionService) merge(mappings map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range mappings {
		key := strings.ToLower(strings.TrimSpace(k))
		for _, syn := range v {
			s.terms[key] = append(s.terms[key], strings.ToLower(strings.TrimSpace(syn)))
		}
	}
}

// Expand returns the lower-cased query terms followed by their synonyms,
// without duplicates.
func (s *TermExpansionService) Expand(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}
	}

	var expanded []string
	seen := make(map[string]bool)
	add := func(term string) {
		if term != "" && !seen[term] {
			expanded = append(expanded, term)
			seen[term] = true
		}
	}

	for _, term := range strings.Fields(query) {
		add(term)
		for _, syn := range s.terms[term] {
			add(syn)
		}
	}
	return expanded
}

// Synonyms returns only the expansions of query, excluding the query terms.
func (s *TermExpansionService) Synonyms(query string) []string {
	terms := strings.Fields(strings.ToLower(query))
	original := make(map[string]bool, len(terms))
	for _, t := range terms {
		original[t] = true
	}

	var out []string
	for _, t := range s.Expand(query) {
		if !original[t] {
			out = append(out, t)
		}
	}
	return out
}
