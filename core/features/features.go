// Package features derives structural features from raw prompt text.
// Extraction is pure and deterministic; a FeatureSet is recomputed per
// analysis and never persisted on its own.
package features

import (
	"regexp"
	"strings"
	"unicode"
)

// Language is the detected language hint for a prompt.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
	LanguageMixed   Language = "mixed"
)

// Complexity buckets a prompt by structural effort.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// FeatureSet holds the structural features of a single prompt.
type FeatureSet struct {
	Length             int        `json:"length"`
	WordCount          int        `json:"word_count"`
	HasCodeBlock       bool       `json:"has_code_block"`
	HasURL             bool       `json:"has_url"`
	HasFilePath        bool       `json:"has_file_path"`
	HasQuestionMark    bool       `json:"has_question_mark"`
	HasExclamationMark bool       `json:"has_exclamation_mark"`
	Language           Language   `json:"language"`
	Complexity         Complexity `json:"complexity"`
}

var (
	urlPattern = regexp.MustCompile(`https?://[^\s]+`)

	// Relative or absolute paths with a recognizable extension, e.g.
	// src/main.go, ./config.yaml, /etc/hosts is excluded (no extension
	// requirement would over-match prose).
	filePathPattern = regexp.MustCompile(`(?:^|[\s"'\x60(])(?:\.{0,2}/)?[\w$@-]+(?:/[\w.$@-]+)*\.[A-Za-z]{1,6}(?:$|[\s"'\x60):,])`)
)

// Extract computes the FeatureSet for text.
func Extract(text string) FeatureSet {
	runes := []rune(text)
	words := strings.Fields(text)

	fs := FeatureSet{
		Length:             len(runes),
		WordCount:          len(words),
		HasCodeBlock:       strings.Contains(text, "```"),
		HasURL:             urlPattern.MatchString(text),
		HasFilePath:        filePathPattern.MatchString(text),
		HasQuestionMark:    strings.ContainsRune(text, '?'),
		HasExclamationMark: strings.ContainsRune(text, '!'),
	}

	fs.Language = detectLanguage(runes)
	fs.Complexity = bucketComplexity(text, fs)
	return fs
}

func detectLanguage(runes []rune) Language {
	var hangul, latin int
	for _, r := range runes {
		switch {
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.IsLetter(r) && r < 0x2000:
			latin++
		}
	}

	switch {
	case hangul > 0 && latin > 0:
		return LanguageMixed
	case hangul > 0:
		return LanguageKorean
	default:
		return LanguageEnglish
	}
}

func bucketComplexity(text string, fs FeatureSet) Complexity {
	score := 0
	if fs.WordCount > 30 {
		score++
	}
	if fs.WordCount > 80 {
		score++
	}
	if fs.HasCodeBlock {
		score++
	}
	if strings.Count(text, "\n") >= 4 {
		score++
	}
	if fs.HasFilePath || fs.HasURL {
		score++
	}

	switch {
	case score >= 3:
		return ComplexityComplex
	case score >= 1:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}
