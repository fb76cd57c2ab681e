package classify

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dgraph-io/ristretto"

	"github.com/philokalos/promptlens/core/features"
)

const (
	// Tuned against labeled examples; treat as the contract rather
	// than deriving from first principles.
	confidenceConstant = 0.1
	confidenceCap      = 0.95
	maxGapBonus        = 0.2

	// Fixed low-evidence confidences per inference path, used when no
	// keyword matched at all.
	fallbackQuestionConfidence    = 0.6
	fallbackInstructionConfidence = 0.5
	fallbackCommandConfidence     = 0.4
	fallbackCategoryConfidence    = 0.3

	// Top two categories closer than this fraction of the top score
	// flag the prompt as multi-intent.
	multiIntentGapRatio = 0.15

	maxSecondaryCategories = 2

	cacheNumCounters = 1e4
	cacheMaxCost     = 4096
	cacheBufferItems = 64
)

// Classifier scores prompts against the embedded keyword tables.
// Classification itself is pure; results are memoized in a small
// admission-controlled cache keyed by text hash.
type Classifier struct {
	tables *compiledTables
	cache  *ristretto.Cache
}

// New builds a Classifier from the embedded keyword tables.
func New() (*Classifier, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cacheNumCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Classifier{tables: tables, cache: cache}, nil
}

// Close releases the result cache.
func (c *Classifier) Close() {
	c.cache.Close()
}

// Classify assigns an intent and task category to text.
func (c *Classifier) Classify(text string) Result {
	key := cacheKey(text)
	if cached, ok := c.cache.Get(key); ok {
		if result, ok := cached.(Result); ok {
			return result
		}
	}

	result := c.classify(text)
	c.cache.Set(key, result, 1)
	return result
}

func (c *Classifier) classify(text string) Result {
	fs := features.Extract(text)

	intentScores := c.tables.scoreLabels(text, c.tables.intents)
	categoryScores := applyDisambiguation(c.tables.scoreLabels(text, c.tables.categories))

	result := Result{Features: fs}
	result.Intent, result.IntentConfidence = c.resolveIntent(intentScores, fs)
	result.TaskCategory, result.CategoryConfidence, result.MultiLabel = c.resolveCategory(categoryScores)

	intentRanked := rankLabels(intentScores)
	categoryRanked := rankLabels(categoryScores)
	result.MatchedKeywords = matchedKeywords(append(intentRanked, categoryRanked...))

	return result
}

func (c *Classifier) resolveIntent(scores map[string]*labelScore, fs features.FeatureSet) (Intent, float64) {
	ranked := rankLabels(scores)

	if len(ranked) == 0 || ranked[0].score == 0 {
		return inferIntentFromFeatures(fs)
	}

	top := ranked[0]
	var second float64
	if len(ranked) > 1 {
		second = ranked[1].score
	}

	intent := Intent(top.label)
	if len(ranked) > 1 && top.score == ranked[1].score && !fs.HasQuestionMark {
		// Equal evidence without a question mark reads as a command.
		if top.label == string(IntentCommand) || ranked[1].label == string(IntentCommand) {
			intent = IntentCommand
		}
	}

	return intent, confidenceFor(top.score, second, totalScore(scores))
}

// inferIntentFromFeatures is the zero-evidence fallback: no keyword
// matched, so infer from structure and report a fixed low confidence
// distinct per path.
func inferIntentFromFeatures(fs features.FeatureSet) (Intent, float64) {
	switch {
	case fs.HasQuestionMark:
		return IntentQuestion, fallbackQuestionConfidence
	case fs.Complexity == features.ComplexityComplex:
		return IntentInstruction, fallbackInstructionConfidence
	default:
		return IntentCommand, fallbackCommandConfidence
	}
}

func (c *Classifier) resolveCategory(scores map[string]*labelScore) (Category, float64, *MultiLabel) {
	ranked := rankLabels(scores)

	if len(ranked) == 0 || ranked[0].score == 0 {
		return CategoryUnknown, fallbackCategoryConfidence, nil
	}

	top := ranked[0]
	var second float64
	if len(ranked) > 1 {
		second = ranked[1].score
	}
	total := totalScore(scores)

	ml := &MultiLabel{
		Primary:       Category(top.label),
		IsMultiIntent: len(ranked) > 1 && (top.score-second) < multiIntentGapRatio*top.score,
	}
	for _, ls := range ranked[1:] {
		if ls.score <= 0 || len(ml.Secondary) >= maxSecondaryCategories {
			break
		}
		ml.Secondary = append(ml.Secondary, CategoryScore{
			Category:   Category(ls.label),
			Confidence: confidenceFor(ls.score, 0, total),
		})
	}

	return Category(top.label), confidenceFor(top.score, second, total), ml
}

// confidenceFor combines the score ratio with a margin bonus:
// min(top/total + gapBonus + constant, cap).
func confidenceFor(top, second, total float64) float64 {
	if total <= 0 || top <= 0 {
		return 0
	}

	ratio := top / total
	gap := (top - second) / top * 0.3
	if gap > maxGapBonus {
		gap = maxGapBonus
	}
	if gap < 0 {
		gap = 0
	}

	conf := ratio + gap + confidenceConstant
	if conf > confidenceCap {
		conf = confidenceCap
	}
	return conf
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
