// ABOUTME: Lexicon-based sentiment scoring of activity descriptions
// ABOUTME: Scores each text with negation handling and aggregates per customer
package analytics

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/harperreed/salescrm/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextSentiment is the score of one analyzed text.
type TextSentiment struct {
	Text        string  `json:"text"`
	Score       int     `json:"score"`
	Comparative float64 `json:"comparative"`
	Sentiment   string  `json:"sentiment"`
}

type SentimentReport struct {
	CustomerID       int64           `json:"customerId"`
	Sentiments       []TextSentiment `json:"sentiments"`
	AverageScore     float64         `json:"averageScore"`
	OverallSentiment string          `json:"overallSentiment"`
	TotalAnalyzed    int             `json:"totalAnalyzed"`
}

// apostrophes folds typographic quotes so "don’t" matches "don't".
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'")

// tokenize lowercases text and splits it into words, keeping apostrophes.
// Casers are stateful, so each call builds its own.
func tokenize(text string) []string {
	text = apostrophes.Replace(text)
	return strings.FieldsFunc(cases.Lower(language.English).String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func label(score int) string {
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// ScoreText scores one text. A word preceded by a negator has its
// valence flipped.
func ScoreText(text string) TextSentiment {
	tokens := tokenize(text)
	score := 0
	for i, tok := range tokens {
		v, ok := lexicon[strings.Trim(tok, "'")]
		if !ok {
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			v = -v
		}
		score += v
	}

	result := TextSentiment{Text: text, Score: score, Sentiment: label(score)}
	if len(tokens) > 0 {
		result.Comparative = float64(score) / float64(len(tokens))
	}
	return result
}

// Sentiment scores every non-empty activity description of the customer.
func (s *Service) Sentiment(ctx context.Context, customerID int64) (*SentimentReport, error) {
	if _, err := s.store.Customers.Get(ctx, customerID); err != nil {
		return nil, err
	}

	activities, err := s.store.Activities.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	texts := make([]string, 0, len(activities))
	for _, a := range activities {
		if strings.TrimSpace(a.Description) != "" {
			texts = append(texts, a.Description)
		}
	}

	report := AnalyzeTexts(texts)
	report.CustomerID = customerID
	return report, nil
}

// AnalyzeTexts scores each text and aggregates the results.
func AnalyzeTexts(texts []string) *SentimentReport {
	report := &SentimentReport{
		Sentiments:       make([]TextSentiment, 0, len(texts)),
		OverallSentiment: models.SentimentNeutral,
	}

	total := 0
	for _, text := range texts {
		r := ScoreText(text)
		report.Sentiments = append(report.Sentiments, r)
		total += r.Score
	}

	report.TotalAnalyzed = len(report.Sentiments)
	if report.TotalAnalyzed > 0 {
		report.AverageScore = float64(total) / float64(report.TotalAnalyzed)
	}
	report.OverallSentiment = label(total)
	return report
}
