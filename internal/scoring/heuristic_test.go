package scoring

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

const saturatedBlue = "#3B82F6"

func TestScore_EmptyDescription(t *testing.T) {
	h := NewHeuristicScorer()
	for _, desc := range []string{"", "   ", "\t\n ", " "} {
		assert.Equal(t, model.AxisScores{}, h.Score(desc, model.Single(saturatedBlue)), "%q", desc)
		assert.Equal(t, model.ScoreResult{}, h.Evaluate(desc, model.Single(saturatedBlue)), "%q", desc)
	}
}

func TestScore_NoColorWordIsCapped(t *testing.T) {
	got := NewHeuristicScorer().Score("sad robot tears", model.Single(saturatedBlue))

	assert.LessOrEqual(t, got.Accurate, 1.5)
	assert.Equal(t, 0.0, got.Accurate)
	assert.Equal(t, 1.6, got.Funny)
	assert.Equal(t, 2.8, got.Popular)
}

func TestScore_SingleCommonWord(t *testing.T) {
	got := NewHeuristicScorer().Evaluate("blue", model.Single(saturatedBlue))

	assert.Equal(t, 3.5, got.Accurate)
	assert.Equal(t, 0.0, got.Funny)
	assert.Equal(t, 1.0, got.Popular)
	assert.Equal(t, 1.7, got.Overall)
}

func TestAccuracyTiers(t *testing.T) {
	tests := []struct {
		name string
		desc string
		hex  string
		want float64
	}{
		{"exact family", "blue", saturatedBlue, 3.5},
		{"exact family long token", "cobalt", saturatedBlue, 4.0},
		{"plural form", "blues", saturatedBlue, 3.5},
		{"ish form", "bluish", saturatedBlue, 3.5},
		{"close family", "purple", saturatedBlue, 2.0},
		{"wrong family", "yellow", saturatedBlue, 0.5},
		{"best match wins", "yellow or maybe blue", saturatedBlue, 3.5},
		{"light bonus", "pale yellow", "#FFFF99", 5.0},
		{"dark bonus", "deep navy", "#1E2A5A", 4.5},
		{"vivid bonus", "vibrant blue", saturatedBlue, 4.0},
		{"muted bonus", "dusty brown", "#6B5A49", 4.0},
		{"descriptor without color word", "very pale and faded like old paper", "#F0E6D2", 1.0},
		{"unparseable color degrades to gray", "silver", "#nope", 4.0},
		{"substring is not a color word", "flashy rosemary", saturatedBlue, 0.0},
	}

	h := NewHeuristicScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Score(tt.desc, model.Single(tt.hex))
			assert.Equal(t, tt.want, got.Accurate)
		})
	}
}

func TestAccuracy_NoColorWordNeverExceedsCap(t *testing.T) {
	h := NewHeuristicScorer()
	descs := []string{
		"deep intense vivid vibrant saturated",
		"pale light bright muted dusty faded",
		"bold rich dark dull desaturated",
	}
	for _, desc := range descs {
		for _, hex := range []string{"#000080", "#F8F8F5", "#101010", "#FF00FF", "#FFFFE0"} {
			assert.LessOrEqual(t, h.Score(desc, model.Single(hex)).Accurate, 1.5, "%s on %s", desc, hex)
		}
	}
}

func TestAccuracy_DualTargetRewardsBothColors(t *testing.T) {
	h := NewHeuristicScorer()
	target := model.Dual("#FF0000", "#0000FF")

	one := h.Score("red", target).Accurate
	both := h.Score("red fading into blue", target).Accurate

	assert.Equal(t, 2.0, one)
	assert.Equal(t, 3.5, both)
	assert.Less(t, one, both)

	// either color alone scores the same way
	assert.Equal(t, one, h.Score("blue", target).Accurate)
}

func TestFunnyScore(t *testing.T) {
	h := NewHeuristicScorer()

	loud := h.Score("my grumpy robot uncle spilled spicy ketchup soup everywhere and it looks like a cosmic disaster!!", model.Single("#C0392B"))
	assert.Equal(t, 5.0, loud.Funny)

	generic := h.Score("nice pretty color", model.Single(saturatedBlue))
	assert.Equal(t, 0.0, generic.Funny)
	assert.Equal(t, 0.6, generic.Popular)

	// four plain words, no generic phrase: only the flat bonus
	plain := h.Score("aaa bbb ccc ddd", model.Single(saturatedBlue))
	assert.Equal(t, 0.5, plain.Funny)
}

func TestPopularityWordCountTiers(t *testing.T) {
	tests := []struct {
		words int
		want  float64
	}{
		{1, 1.0},
		{2, 2.0},
		{3, 2.0},
		{4, 3.8},
		{5, 4.5},
		{10, 4.5},
		{11, 3.8},
		{12, 3.8},
		{13, 3.0},
		{14, 3.0},
		{15, 2.2},
		{20, 2.2},
		{21, 1.5},
		{40, 1.5},
	}

	h := NewHeuristicScorer()
	for _, tt := range tests {
		desc := strings.TrimSpace(strings.Repeat("zzz ", tt.words))
		got := h.Score(desc, model.Single(saturatedBlue))
		assert.Equal(t, tt.want, got.Popular, "%d words", tt.words)
	}
}

func TestPopularityModifiers(t *testing.T) {
	h := NewHeuristicScorer()
	target := model.Single(saturatedBlue)

	assert.Equal(t, 2.4, h.Score("maybe somewhat teal?", target).Popular)
	assert.Equal(t, 4.6, h.Score("shimmering glistening luminous iridescent", target).Popular)
	assert.Equal(t, 4.2, h.Score("shimmering glistening luminous iridescent twinkling", target).Popular)
	assert.Equal(t, 3.3, h.Score("precisely teal", target).Popular)
}

func TestScore_AxesAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1337))
	vocab := []string{"blue", "nice", "robot", "shrek", "like", "kind", "of", "sad", "!!!", "?",
		"pale", "deep", "maybe", "exactly", "crimson", "extraordinarily", "a", "the", "looks"}
	gen := colorspace.NewGenerator(rng)
	h := NewHeuristicScorer()

	for i := 0; i < 300; i++ {
		var sb strings.Builder
		length := rng.IntN(10_000)
		for sb.Len() < length {
			if rng.IntN(4) == 0 {
				sb.WriteRune(rune(rng.IntN(0x3000)))
			} else {
				sb.WriteString(vocab[rng.IntN(len(vocab))])
			}
			sb.WriteByte(' ')
		}

		target := model.Single(gen.RandomColor())
		if i%2 == 0 {
			a, b := gen.DualColorPair(colorspace.DefaultMinDistance)
			target = model.Dual(a, b)
		}

		res := h.Evaluate(sb.String(), target)
		for _, v := range []float64{res.Funny, res.Accurate, res.Popular, res.Overall} {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 5.0)
			require.Equal(t, Round1(v), v)
		}
		require.True(t, Valid(res))
	}
}

func TestLookupColorToken(t *testing.T) {
	tests := []struct {
		word   string
		family colorspace.Family
		token  string
		ok     bool
	}{
		{"teal", colorspace.Blue, "teal", true},
		{"reddish", colorspace.Red, "red", true},
		{"greenish", colorspace.Green, "green", true},
		{"bluish", colorspace.Blue, "blue", true},
		{"greys", colorspace.Gray, "grey", true},
		{"robot", "", "", false},
		{"is", "", "", false},
	}
	for _, tt := range tests {
		fam, tok, ok := lookupColorToken(tt.word)
		assert.Equal(t, tt.ok, ok, tt.word)
		assert.Equal(t, tt.family, fam, tt.word)
		assert.Equal(t, tt.token, tok, tt.word)
	}
}

func TestLexiconTokensBelongToOneFamily(t *testing.T) {
	seen := map[string]colorspace.Family{}
	for fam, tokens := range familyTokens {
		for _, tok := range tokens {
			prev, dup := seen[tok]
			assert.False(t, dup, "%q in both %s and %s", tok, prev, fam)
			seen[tok] = fam
		}
	}
}
