package transaction

import (
	"regexp"
	"sort"
	"strings"
)

// Entity extraction is a deliberate rule-based scan, not a statistical NER
// model. The transcriptions are Early New High German with erratic spelling;
// a heuristic pass with a modest false positive/negative rate is good enough
// for search and relatedness scoring, and the Entities type is a stable
// contract a proper NER pipeline could be swapped in behind.

// Entities holds the extracted mentions from one text, each list
// deduplicated and in first-occurrence order.
type Entities struct {
	People      []string
	Places      []string
	Commodities []string
}

// personPattern matches sequences of two or more capitalized tokens,
// optionally joined by a nobility or origin particle ("Martin Öder von
// Aitenpach").
var personPattern = regexp.MustCompile(`\p{Lu}\p{L}+(?:\s+(?:von|vom|zu|zum|zur|de)\s+\p{Lu}\p{L}+|\s+\p{Lu}\p{L}+)+`)

// placePattern matches a capitalized token governed by a directional or
// locative preposition ("von Aitenpach", "gen Vilshofen").
var placePattern = regexp.MustCompile(`(?:\b|^)(?:[Vv]on|[Vv]om|[Zz]u|[Zz]um|[Zz]ur|[Ii]n|[Aa]us|[Bb]ei|[Nn]ach|[Gg]en)\s+(\p{Lu}\p{L}+)`)

// stopwords are calendar and formulaic words that the capitalization
// heuristics would otherwise mistake for names: German day and month names,
// the Latin month genitives the scribes used, and bookkeeping formulae.
var stopwords = map[string]bool{
	"montag": true, "dienstag": true, "mittwoch": true, "donnerstag": true,
	"freitag": true, "samstag": true, "sonntag": true,

	"januar": true, "februar": true, "märz": true, "april": true,
	"mai": true, "juni": true, "juli": true, "august": true,
	"september": true, "oktober": true, "november": true, "dezember": true,

	"januarii": true, "februarii": true, "martii": true, "aprilis": true,
	"maii": true, "junii": true, "julii": true, "augusti": true,
	"septembris": true, "octobris": true, "novembris": true, "decembris": true,

	"item": true, "anno": true, "summa": true, "idem": true, "dito": true,
}

// particles join name parts and are never themselves name tokens.
var particles = map[string]bool{
	"von": true, "vom": true, "zu": true, "zum": true, "zur": true, "de": true,
}

// gazetteer lists settlements around the abbey known from the books. Matched
// as case-insensitive substrings, independent of any preposition.
var gazetteer = []string{
	"Aldersbach",
	"Aitenpach",
	"Vilshofen",
	"Passau",
	"Osterhofen",
	"Pleinting",
	"Landau",
	"Straubing",
	"Regensburg",
	"Ortenburg",
}

// commodityVocabulary lists the trade goods that recur in the books, in
// their most common transcription spellings. Matched as case-insensitive
// substrings since the scribes inflect freely.
var commodityVocabulary = []string{
	"waitz", "weizen",
	"korn", "traid",
	"gersten",
	"habern", "hafer",
	"wein", "pier", "bier",
	"salz", "schmalz",
	"kes", "käse",
	"holz", "wachs", "hopfen",
	"schaf", "ochsen", "ross", "rind",
}

// ExtractEntities scans a free-text description and returns the candidate
// person, place, and commodity mentions.
func ExtractEntities(text string) Entities {
	return Entities{
		People:      extractPeople(text),
		Places:      extractPlaces(text),
		Commodities: extractCommodities(text),
	}
}

// mention pairs a candidate with its first position in the text, so results
// can be emitted in occurrence order after deduplication.
type mention struct {
	value string
	index int
}

func extractPeople(text string) []string {
	var found []mention
	for _, loc := range personPattern.FindAllStringIndex(text, -1) {
		candidate := text[loc[0]:loc[1]]
		if isStoppedName(candidate) {
			continue
		}
		found = append(found, mention{value: candidate, index: loc[0]})
	}
	return dedupe(found)
}

// isStoppedName rejects a candidate name when any of its tokens (particles
// aside) is a calendar or formulaic word.
func isStoppedName(candidate string) bool {
	for _, token := range strings.Fields(candidate) {
		lower := strings.ToLower(token)
		if particles[lower] {
			continue
		}
		if stopwords[lower] {
			return true
		}
	}
	return false
}

func extractPlaces(text string) []string {
	var found []mention

	for _, m := range placePattern.FindAllStringSubmatchIndex(text, -1) {
		// Submatch 1 is the place token.
		candidate := text[m[2]:m[3]]
		if stopwords[strings.ToLower(candidate)] {
			continue
		}
		found = append(found, mention{value: candidate, index: m[2]})
	}

	lower := strings.ToLower(text)
	for _, place := range gazetteer {
		if idx := strings.Index(lower, strings.ToLower(place)); idx >= 0 {
			found = append(found, mention{value: place, index: idx})
		}
	}

	return dedupe(found)
}

func extractCommodities(text string) []string {
	lower := strings.ToLower(text)

	var found []mention
	for _, term := range commodityVocabulary {
		if idx := strings.Index(lower, term); idx >= 0 {
			found = append(found, mention{value: term, index: idx})
		}
	}
	return dedupe(found)
}

// dedupe sorts mentions by first occurrence and removes case-insensitive
// duplicates, keeping the first spelling seen.
func dedupe(mentions []mention) []string {
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].index < mentions[j].index
	})

	seen := make(map[string]bool, len(mentions))
	var out []string
	for _, m := range mentions {
		key := strings.ToLower(m.value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m.value)
	}
	return out
}
