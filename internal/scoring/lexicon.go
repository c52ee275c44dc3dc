package scoring

import (
	"regexp"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
)

// Lexicon tables are built once at init and never mutated.

// familyTokens maps each color family to the words that name it. A token belongs to one family only.
var familyTokens = map[colorspace.Family][]string{
	colorspace.Red:    {"red", "crimson", "scarlet", "cherry", "ruby", "maroon", "burgundy", "vermilion", "blood", "brick"},
	colorspace.Pink:   {"pink", "rose", "blush", "fuchsia", "salmon", "flamingo", "bubblegum"},
	colorspace.Orange: {"orange", "tangerine", "peach", "coral", "apricot", "rust", "pumpkin"},
	colorspace.Yellow: {"yellow", "gold", "golden", "amber", "lemon", "canary", "butter", "sunflower", "mustard"},
	colorspace.Green:  {"green", "emerald", "jade", "lime", "olive", "mint", "forest", "sage", "chartreuse", "moss"},
	colorspace.Blue:   {"blue", "navy", "azure", "cyan", "turquoise", "teal", "indigo", "cobalt", "sapphire", "cerulean", "sky"},
	colorspace.Purple: {"purple", "violet", "magenta", "plum", "lavender", "orchid", "lilac", "mauve", "grape"},
	colorspace.Brown:  {"brown", "tan", "beige", "mocha", "chocolate", "coffee", "caramel", "chestnut", "khaki", "taupe"},
	colorspace.Gray:   {"gray", "grey", "silver", "charcoal", "ash", "slate", "gunmetal", "smoke"},
	colorspace.Black:  {"black", "onyx", "ebony", "coal", "midnight", "jet", "obsidian"},
	colorspace.White:  {"white", "cream", "ivory", "pearl", "snow", "vanilla", "alabaster", "chalk"},
}

// tokenFamily is the reverse index of familyTokens
var tokenFamily = func() map[string]colorspace.Family {
	idx := make(map[string]colorspace.Family)
	for family, tokens := range familyTokens {
		for _, tok := range tokens {
			idx[tok] = family
		}
	}
	return idx
}()

// humorPatterns groups humor keywords by category. A word matches when it contains the keyword.
var humorPatterns = map[string][]string{
	"absurd":       {"robot", "alien", "zombie", "unicorn", "dinosaur", "ninja", "pirate", "wizard", "goblin", "potato", "llama", "penguin"},
	"food":         {"soup", "cheese", "pickle", "ketchup", "burrito", "spaghetti", "toast", "nacho", "smoothie", "pudding", "jelly"},
	"exaggeration": {"extremely", "ultra", "mega", "insanely", "ridiculously", "aggressively", "violently", "suspiciously"},
	"personality":  {"funky", "groovy", "sassy", "wild", "crazy", "wacky", "zesty", "spicy", "fierce", "dramatic", "moody", "rebellious", "grumpy", "smug"},
	"cosmic":       {"cosmic", "electric", "magical", "dreamy", "enchanted", "mysterious"},
}

var popCultureRefs = []string{
	"barbie", "shrek", "minecraft", "pokemon", "pikachu", "hulk", "grinch", "yoda", "simpsons",
	"spongebob", "batman", "elmo", "kermit", "smurf", "avatar", "minion", "mario", "sonic",
	"tiktok", "instagram", "netflix", "starbucks", "ikea", "lego",
}

var emotionalWords = wordSet(
	"happy", "sad", "angry", "lonely", "joy", "joyful", "calm", "nostalgic", "anxious",
	"melancholy", "cozy", "cheerful", "gloomy", "love", "hate", "heartbreak", "tears",
	"excited", "peaceful", "furious", "hopeful", "scared",
)

// genericPhrases are overused descriptions, matched on word boundaries
var genericPhrases = compileWords(
	"nice", "pretty", "good", "okay", "normal", "regular", "standard", "basic",
	"simple", "plain", "boring", "ugly", "bad", "weird", "just a color",
)

var genericWords = wordSet(
	"nice", "pretty", "good", "okay", "normal", "regular", "standard", "basic",
	"simple", "plain", "boring", "ugly", "bad", "weird",
)

var conversationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bkind of\b`),
	regexp.MustCompile(`\bsort of\b`),
	regexp.MustCompile(`\blooks like\b`),
	regexp.MustCompile(`\bfeels like\b`),
	regexp.MustCompile(`\bmakes\b(?:\s+\S+){0,3}?\s+feel\b`),
	regexp.MustCompile(`\byou know\b`),
	regexp.MustCompile(`\bi mean\b`),
	regexp.MustCompile(`\bbasically\b`),
	regexp.MustCompile(`\bwhen you\b`),
}

var comparisonMarker = regexp.MustCompile(`\b(?:like|as if|reminds me)\b`)

var (
	lightnessDescriptors = wordSet("light", "bright", "pale", "pastel", "washed", "faded")
	darknessDescriptors  = wordSet("dark", "deep", "rich", "intense", "bold", "vivid")
	vividDescriptors     = wordSet("vibrant", "saturated", "vivid")
	mutedDescriptors     = wordSet("muted", "dull", "dusty", "grayish", "desaturated")
	specificityAdverbs   = wordSet("exactly", "precisely", "specifically", "distinctly", "particularly")
	vaguenessWords       = wordSet("somewhat", "maybe", "possibly", "unclear", "undefined")
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func compileWords(phrases ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(phrases))
	for i, p := range phrases {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
	}
	return out
}
