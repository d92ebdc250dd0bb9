// ABOUTME: Key-term extraction from free text with part-of-speech tagging
// ABOUTME: Finds people, organizations, dates, and noun/verb/adjective terms
package analytics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/harperreed/salescrm/models"
	"github.com/jdkato/prose/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Entities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
}

type Terms struct {
	Nouns      []string `json:"nouns"`
	Verbs      []string `json:"verbs"`
	Adjectives []string `json:"adjectives"`
}

type KeyInsights struct {
	Entities  Entities `json:"entities"`
	Terms     Terms    `json:"terms"`
	WordCount int      `json:"wordCount"`
}

const (
	monthPattern   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	weekdayPattern = `(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)`
)

var datePatterns = regexp.MustCompile(`(?i)\b(?:` +
	`\d{4}-\d{2}-\d{2}` +
	`|\d{1,2}/\d{1,2}/\d{2,4}` +
	`|` + monthPattern + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?` +
	`|\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthPattern + `(?:,?\s+\d{4})?` +
	`|` + monthPattern + `\s+\d{4}` +
	`|(?:next|last|this)\s+(?:week|month|quarter|year|` + weekdayPattern + `)` +
	`|q[1-4](?:\s+\d{4})?` +
	`|today|tomorrow|yesterday|tonight` +
	`|` + weekdayPattern +
	`)\b`)

var orgSuffixes = []string{
	"inc", "corp", "corporation", "co", "company", "ltd", "llc", "llp", "plc", "gmbh",
	"group", "systems", "solutions", "industries", "technologies", "tech", "labs",
	"partners", "bank", "university", "institute", "associates", "holdings", "enterprises",
	"consulting", "ventures", "innovations", "international",
}

var honorifics = []string{"mr", "mrs", "ms", "miss", "dr", "prof", "sir"}

var stopWords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "of", "to", "in", "on", "at", "by",
	"for", "with", "from", "about", "as", "into", "over", "after", "before", "up", "down",
	"is", "am", "are", "was", "were", "be", "been", "being", "has", "have", "had", "do",
	"does", "did", "will", "would", "can", "could", "should", "may", "might", "must", "shall",
	"i", "we", "you", "he", "she", "it", "they", "me", "us", "him", "her", "them", "my",
	"our", "your", "his", "its", "their", "this", "that", "these", "those", "there", "here",
	"what", "which", "who", "whom", "when", "where", "why", "how", "all", "any", "each",
	"some", "no", "not", "so", "than", "too", "very", "just", "also", "only", "own", "same",
	"such", "both", "few", "more", "most", "other", "again", "once", "please", "let",
}

// ExtractInsights pulls named entities and part-of-speech terms out of
// text. Results keep first-seen order and drop duplicates.
func ExtractInsights(text string) (*KeyInsights, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	result := &KeyInsights{
		Entities: Entities{People: []string{}, Organizations: []string{}, Dates: []string{}},
		Terms:    Terms{Nouns: []string{}, Verbs: []string{}, Adjectives: []string{}},
		// Whitespace-delimited count, so "follow-up" is one word.
		WordCount: len(strings.Fields(text)),
	}

	lower := cases.Lower(language.English)
	claimed := make(map[string]bool)
	claim := func(words []string) {
		for _, w := range words {
			claimed[lower.String(w)] = true
		}
	}

	for _, match := range datePatterns.FindAllString(text, -1) {
		result.Entities.Dates = appendUnique(result.Entities.Dates, match)
		claim(strings.Fields(match))
	}

	tokens := doc.Tokens()
	for _, run := range properNounRuns(tokens, claimed) {
		words := run.words
		switch {
		case isOrganization(words):
			result.Entities.Organizations = appendUnique(result.Entities.Organizations, strings.Join(words, " "))
		case run.titled:
			result.Entities.People = appendUnique(result.Entities.People, strings.Join(words, " "))
		case !run.sentenceStart && len(words) >= 2 && len(words) <= 3:
			result.Entities.People = appendUnique(result.Entities.People, strings.Join(words, " "))
		default:
			continue
		}
		claim(words)
	}

	// The entity model also catches names at the start of a sentence.
	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" {
			continue
		}
		words := strings.Fields(ent.Text)
		if hasHonorific(words) {
			words = words[1:]
		}
		if len(words) == 0 || isOrganization(words) || claimedAny(claimed, words) {
			continue
		}
		result.Entities.People = appendUnique(result.Entities.People, strings.Join(words, " "))
		claim(words)
	}

	for _, tok := range tokens {
		w := lower.String(tok.Text)
		if !isWord(w) || claimed[w] || slices.Contains(stopWords, w) {
			continue
		}
		switch {
		case strings.HasPrefix(tok.Tag, "NNP"):
		case strings.HasPrefix(tok.Tag, "NN"):
			if len([]rune(w)) > 2 {
				result.Terms.Nouns = appendUnique(result.Terms.Nouns, w)
			}
		case strings.HasPrefix(tok.Tag, "VB"):
			result.Terms.Verbs = appendUnique(result.Terms.Verbs, w)
		case strings.HasPrefix(tok.Tag, "JJ"):
			result.Terms.Adjectives = appendUnique(result.Terms.Adjectives, w)
		}
	}

	return result, nil
}

type nounRun struct {
	words         []string
	sentenceStart bool
	// titled is set when the run follows an honorific split off as its own token.
	titled bool
}

// properNounRuns groups consecutive capitalized proper-noun tokens. Tokens
// already claimed as dates break a run.
func properNounRuns(tokens []prose.Token, claimed map[string]bool) []nounRun {
	var runs []nounRun
	var current nounRun
	atStart := true
	afterTitle := false

	flush := func() {
		if len(current.words) > 0 {
			runs = append(runs, current)
		}
		current = nounRun{}
	}

	for _, tok := range tokens {
		proper := strings.HasPrefix(tok.Tag, "NNP") && isCapitalized(tok.Text) && !claimed[strings.ToLower(tok.Text)]
		switch {
		case proper:
			if len(current.words) == 0 {
				current.sentenceStart = atStart && !afterTitle
				current.titled = afterTitle
			}
			current.words = append(current.words, tok.Text)
		case tok.Text == "&" && len(current.words) > 0:
			current.words = append(current.words, tok.Text)
		default:
			flush()
		}

		switch {
		case hasHonorific([]string{tok.Text}) && len(current.words) <= 1:
			// A title starts no run of its own; it marks the run that follows.
			afterTitle = true
			if len(current.words) == 1 {
				current = nounRun{}
			}
		case tok.Text == "." && afterTitle:
		default:
			afterTitle = false
		}
		atStart = tok.Tag == "." || tok.Text == "." || tok.Text == "!" || tok.Text == "?"
	}
	flush()
	return runs
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

func isOrganization(phrase []string) bool {
	last := strings.TrimSuffix(strings.ToLower(phrase[len(phrase)-1]), ".")
	if slices.Contains(orgSuffixes, last) {
		return true
	}
	return len(phrase) == 1 && isAcronym(phrase[0])
}

func hasHonorific(phrase []string) bool {
	return len(phrase) > 0 && slices.Contains(honorifics, strings.TrimSuffix(strings.ToLower(phrase[0]), "."))
}

func claimedAny(claimed map[string]bool, words []string) bool {
	for _, w := range words {
		if claimed[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

func isWord(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
