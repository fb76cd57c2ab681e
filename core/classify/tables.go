package classify

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// KeywordTable maps a label to per-language keyword lists.
type KeywordTable map[string]map[string][]string

type keywordTables struct {
	Intents    KeywordTable        `yaml:"intents"`
	Categories KeywordTable        `yaml:"categories"`
	Negations  map[string][]string `yaml:"negations"`
}

// compiledTables holds the parsed keyword data plus precompiled
// word-boundary patterns for non-Korean keywords. Korean has no word
// boundary concept, so its keywords are matched by substring instead.
type compiledTables struct {
	intents    KeywordTable
	categories KeywordTable
	negations  []string
	patterns   map[string]*regexp.Regexp
}

func loadTables() (*compiledTables, error) {
	var raw keywordTables
	if err := yaml.Unmarshal(keywordsYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse keyword tables: %w", err)
	}
	if len(raw.Intents) == 0 || len(raw.Categories) == 0 {
		return nil, fmt.Errorf("keyword tables missing intents or categories")
	}

	ct := &compiledTables{
		intents:    raw.Intents,
		categories: raw.Categories,
		patterns:   make(map[string]*regexp.Regexp),
	}

	for lang, words := range raw.Negations {
		_ = lang
		ct.negations = append(ct.negations, words...)
	}

	for _, table := range []KeywordTable{raw.Intents, raw.Categories} {
		for _, langs := range table {
			for _, kw := range langs["en"] {
				if _, ok := ct.patterns[kw]; ok {
					continue
				}
				pat, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
				if err != nil {
					return nil, fmt.Errorf("compile keyword %q: %w", kw, err)
				}
				ct.patterns[kw] = pat
			}
		}
	}

	return ct, nil
}

// matchKeyword returns the first occurrence of kw in text, or -1.
// Korean keywords match by substring; everything else uses the
// precompiled word-boundary pattern.
func (ct *compiledTables) matchKeyword(text, kw string, korean bool) int {
	if korean {
		return strings.Index(text, kw)
	}
	pat, ok := ct.patterns[kw]
	if !ok {
		return strings.Index(strings.ToLower(text), strings.ToLower(kw))
	}
	loc := pat.FindStringIndex(text)
	if loc == nil {
		return -1
	}
	return loc[0]
}
