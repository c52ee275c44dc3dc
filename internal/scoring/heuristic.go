// Package scoring rates color descriptions locally: lexicon heuristics per axis
// and the fixed-weight aggregation into an overall score.
package scoring

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

const (
	MinScore = 0.0
	MaxScore = 5.0

	// noColorWordCap bounds accuracy when the text names no color at all
	noColorWordCap = 1.5
)

// HeuristicScorer is the local, deterministic scorer. It has no state and does no I/O.
type HeuristicScorer struct{}

// NewHeuristicScorer returns the local scorer
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score returns the three axis scores for description against target, each rounded to one decimal.
// An empty or whitespace-only description scores zero on every axis.
func (h *HeuristicScorer) Score(description string, target model.ColorTarget) model.AxisScores {
	text := NormalizeDescription(description)
	if text == "" {
		return model.AxisScores{}
	}
	f := analyze(text)
	return model.AxisScores{
		Funny:    Round1(funnyScore(f)),
		Accurate: Round1(accuracyScore(f, target)),
		Popular:  Round1(popularityScore(f)),
	}
}

// Evaluate scores and aggregates in one step
func (h *HeuristicScorer) Evaluate(description string, target model.ColorTarget) model.ScoreResult {
	return Aggregate(h.Score(description, target))
}

// NormalizeDescription applies NFKC and trims surrounding whitespace
func NormalizeDescription(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// features are the text properties every axis reads
type features struct {
	lower    string
	words    []string // whitespace separated, as typed
	tokens   []string // letter/digit runs
	tokenSet map[string]bool

	genericMatches int
	popMatches     int
	emotionMatches int
	convMatches    int
}

func analyze(text string) features {
	lower := strings.ToLower(text)
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}

	f := features{
		lower:    lower,
		words:    strings.Fields(lower),
		tokens:   tokens,
		tokenSet: set,
	}

	for _, re := range genericPhrases {
		f.genericMatches += len(re.FindAllStringIndex(lower, -1))
	}
	f.popMatches = distinctContained(tokens, popCultureRefs)
	for word := range set {
		if emotionalWords[word] {
			f.emotionMatches++
		}
	}
	for _, re := range conversationalPatterns {
		if re.MatchString(lower) {
			f.convMatches++
		}
	}
	return f
}

// distinctContained counts keywords found inside at least one token
func distinctContained(tokens []string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		for _, t := range tokens {
			if strings.Contains(t, kw) {
				n++
				break
			}
		}
	}
	return n
}

func (f features) hasAny(set map[string]bool) bool {
	for word := range set {
		if f.tokenSet[word] {
			return true
		}
	}
	return false
}

func (f features) countIn(set map[string]bool) int {
	n := 0
	for _, t := range f.tokens {
		if set[t] {
			n++
		}
	}
	return n
}

func capped(count int, each, ceiling float64) float64 {
	return math.Min(float64(count)*each, ceiling)
}

func funnyScore(f features) float64 {
	n := len(f.words)
	score := 0.0

	switch {
	case n >= 12:
		score += 1.5
	case n >= 8:
		score += 1.0
	case n >= 5:
		score += 0.5
	}

	humor := 0
	for _, keywords := range humorPatterns {
		humor += distinctContained(f.tokens, keywords)
	}
	score += capped(humor, 0.6, 2.5)
	score += capped(f.popMatches, 0.8, 1.5)
	score += capped(f.convMatches, 0.4, 1.0)
	if comparisonMarker.MatchString(f.lower) {
		score += 0.7
	}
	score += capped(f.emotionMatches, 0.5, 1.0)
	score -= 0.8 * float64(f.genericMatches)
	if n > 3 && f.genericMatches == 0 {
		score += 0.5
	}
	score += capped(strings.Count(f.lower, "!"), 0.3, 0.6)

	return Clamp(score)
}

// accuracyScore credits each target color on its own; a gradient averages the two,
// so naming only one of its colors scores below naming both.
func accuracyScore(f features, target model.ColorTarget) float64 {
	hexes := target.Hexes()
	total := 0.0
	for _, hex := range hexes {
		total += colorAccuracy(f, hex)
	}
	return Clamp(total / float64(len(hexes)))
}

func colorAccuracy(f features, hex string) float64 {
	rgb, parsed := colorspace.HexToRGB(hex)
	dominant := colorspace.Gray
	var hsl model.HSL
	if parsed {
		hsl = colorspace.RGBToHSL(rgb)
		dominant = colorspace.Classify(hsl)
	}

	score, found := bestFamilyCredit(f, dominant)

	if parsed {
		brightness := colorspace.Brightness(rgb)
		if brightness > 180 && f.hasAny(lightnessDescriptors) {
			score += 1
		}
		if brightness < 80 && f.hasAny(darknessDescriptors) {
			score += 1
		}
		if hsl.S > 70 && f.hasAny(vividDescriptors) {
			score += 0.5
		}
		if hsl.S < 30 && f.hasAny(mutedDescriptors) {
			score += 0.5
		}
	}

	if !found {
		score = math.Min(score, noColorWordCap)
	}
	return Clamp(score)
}

// bestFamilyCredit returns the highest credit any color word in the text earns against dominant
func bestFamilyCredit(f features, dominant colorspace.Family) (credit float64, found bool) {
	for _, t := range f.tokens {
		family, token, ok := lookupColorToken(t)
		if !ok {
			continue
		}
		found = true

		var c float64
		switch {
		case family == dominant:
			c = 3.5
			if len(token) > 5 {
				c += 0.5
			}
		case colorspace.IsClose(dominant, family):
			c = 2.0
		default:
			c = 0.5
		}
		if c > credit {
			credit = c
		}
	}
	return credit, found
}

// lookupColorToken resolves a word, plural or "-ish" form to its lexicon token
func lookupColorToken(word string) (colorspace.Family, string, bool) {
	if fam, ok := tokenFamily[word]; ok {
		return fam, word, true
	}
	if base, ok := strings.CutSuffix(word, "ish"); ok && len(base) > 1 {
		candidates := []string{base, base + "e"}
		if n := len(base); n > 2 && base[n-1] == base[n-2] {
			candidates = append(candidates, base[:n-1])
		}
		for _, c := range candidates {
			if fam, ok := tokenFamily[c]; ok {
				return fam, c, true
			}
		}
	}
	if base, ok := strings.CutSuffix(word, "s"); ok && len(base) > 2 {
		if fam, ok := tokenFamily[base]; ok {
			return fam, base, true
		}
	}
	return "", "", false
}

func popularityScore(f features) float64 {
	n := len(f.words)
	score := 3.0

	score -= 0.7 * float64(f.genericMatches)

	switch {
	case n < 2:
		score -= 2.0
	case n < 4:
		score -= 1.0
	case n >= 5 && n <= 10:
		score += 1.5
	case n <= 12:
		score += 0.8
	case n > 20:
		score -= 1.5
	case n >= 15:
		score -= 0.8
	}

	creative := 0
	for _, w := range f.words {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) })
		if len([]rune(w)) > 6 && !genericWords[w] {
			creative++
		}
	}
	switch {
	case creative > 4:
		score -= 0.3
	case creative >= 1:
		score += 0.8
	}

	score += capped(f.popMatches, 0.6, 1.2)
	score += capped(f.emotionMatches, 0.4, 1.0)
	score += capped(f.convMatches, 0.5, 1.0)
	if f.hasAny(specificityAdverbs) {
		score += 0.5
	}
	score -= 0.4 * float64(f.countIn(vaguenessWords))
	if strings.Contains(f.lower, "?") {
		score += 0.4
	}

	return Clamp(score)
}
