// ABOUTME: Tests for key-term extraction from free text
// ABOUTME: Checks entity detection, tagged terms, dates, and validation of empty input
package analytics

import (
	"testing"

	"github.com/harperreed/salescrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInsightsRequiresText(t *testing.T) {
	_, err := ExtractInsights("   ")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Text is required", verr.Message)
}

func TestExtractInsights(t *testing.T) {
	text := "Met with John Smith from Acme Corp on December 5. He wants a quick proposal by next week."

	got, err := ExtractInsights(text)
	require.NoError(t, err)

	assert.Contains(t, got.Entities.People, "John Smith")
	assert.Equal(t, []string{"Acme Corp"}, got.Entities.Organizations)
	assert.Equal(t, []string{"December 5", "next week"}, got.Entities.Dates)
	assert.NotContains(t, got.Entities.People, "Acme Corp")
	assert.Contains(t, got.Terms.Verbs, "wants")
	assert.Contains(t, got.Terms.Adjectives, "quick")
	assert.Contains(t, got.Terms.Nouns, "proposal")
	assert.NotContains(t, got.Terms.Nouns, "john")
	assert.NotContains(t, got.Terms.Adjectives, "next", "date words are not terms")
	assert.Equal(t, 18, got.WordCount)
}

func TestExtractInsightsFindsUnlistedNames(t *testing.T) {
	got, err := ExtractInsights("Had a call with Olivia Chen and Raj Patel from Contoso Ltd on Friday about renewal pricing.")
	require.NoError(t, err)

	assert.Contains(t, got.Entities.People, "Olivia Chen")
	assert.Contains(t, got.Entities.People, "Raj Patel")
	assert.Contains(t, got.Entities.Organizations, "Contoso Ltd")
	assert.NotContains(t, got.Entities.People, "Contoso Ltd")
	assert.Equal(t, []string{"Friday"}, got.Entities.Dates)
	assert.Contains(t, got.Terms.Nouns, "call")
}

func TestExtractInsightsHonorificAndAcronym(t *testing.T) {
	got, err := ExtractInsights("IBM called. We will meet Dr. Rivera Lopez on 2025-12-01.")
	require.NoError(t, err)

	assert.Contains(t, got.Entities.Organizations, "IBM")
	assert.Equal(t, []string{"2025-12-01"}, got.Entities.Dates)
	assert.Contains(t, got.Terms.Verbs, "called")
	assert.Contains(t, got.Entities.People, "Rivera Lopez", "the title is dropped")
	assert.NotContains(t, got.Entities.People, "Dr. Rivera Lopez")
}
