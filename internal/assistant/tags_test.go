package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/shoplab/internal/domain"
)

var testCatalog = []domain.Product{
	{ID: "p1", Name: "AA Batteries", Price: 599, Category: "Electronics", Description: "4-pack"},
	{ID: "p2", Name: "Torch", Price: 1250, Category: "Electronics", Description: "LED torch"},
}

func TestParseRecommendations_NoTags(t *testing.T) {
	recs, cleaned := ParseRecommendations("  Just some plain text.  ", testCatalog)

	assert.Empty(t, recs)
	assert.Equal(t, "Just some plain text.", cleaned)
}

func TestParseRecommendations_SingleTag(t *testing.T) {
	recs, cleaned := ParseRecommendations("These should work. [RECOMMEND:p1:Good fit]", testCatalog)

	require.Len(t, recs, 1)
	assert.Equal(t, domain.ProductRecommendation{ProductID: "p1", Reason: "Good fit"}, recs[0])
	assert.Equal(t, "These should work.", cleaned)
}

func TestParseRecommendations_UnknownIDStrippedButDropped(t *testing.T) {
	recs, cleaned := ParseRecommendations("Try this. [RECOMMEND:nope:Great]", testCatalog)

	assert.Empty(t, recs)
	assert.Equal(t, "Try this.", cleaned)
}

func TestParseRecommendations_OrderAndDuplicatesPreserved(t *testing.T) {
	text := "[RECOMMEND:p2:Bright] and also [RECOMMEND:p1:Cheap] plus [RECOMMEND:p1:Reliable]"
	recs, _ := ParseRecommendations(text, testCatalog)

	require.Len(t, recs, 3)
	assert.Equal(t, "p2", recs[0].ProductID)
	assert.Equal(t, "p1", recs[1].ProductID)
	assert.Equal(t, "p1", recs[2].ProductID)
	assert.Equal(t, "Cheap", recs[1].Reason)
	assert.Equal(t, "Reliable", recs[2].Reason)
}

func TestParseRecommendations_TrimsIDAndReason(t *testing.T) {
	recs, _ := ParseRecommendations("[RECOMMEND: p1 : lasts long ]", testCatalog)

	require.Len(t, recs, 1)
	assert.Equal(t, "p1", recs[0].ProductID)
	assert.Equal(t, "lasts long", recs[0].Reason)
}

func TestParseRecommendations_MalformedTagLeftInText(t *testing.T) {
	text := "Broken [RECOMMEND:p1:no closing bracket"
	recs, cleaned := ParseRecommendations(text, testCatalog)

	assert.Empty(t, recs)
	assert.Equal(t, text, cleaned)
}

func TestParseRecommendations_TotalOnAdversarialInput(t *testing.T) {
	inputs := []string{
		"",
		"]]]][[[[",
		"[RECOMMEND::]",
		"[RECOMMEND:]",
		strings.Repeat("[RECOMMEND:p1:x]", 1000),
		"[RECOMMEND:p1:a] trailing [RECOMMEND",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			ParseRecommendations(in, testCatalog)
		})
	}
}

func TestParseRecommendations_EmptyCatalog(t *testing.T) {
	recs, cleaned := ParseRecommendations("[RECOMMEND:p1:Good]", nil)

	assert.Empty(t, recs)
	assert.Equal(t, "", cleaned)
}

func TestParseRecommendations_EndToEndScenario(t *testing.T) {
	catalog := []domain.Product{
		{ID: "bat-001", Name: "AA Batteries", Price: 599, Category: "Electronics", Description: "4-pack"},
	}
	recs, cleaned := ParseRecommendations(
		"These work great for remotes. [RECOMMEND:bat-001:Long-lasting]", catalog)

	require.Len(t, recs, 1)
	assert.Equal(t, domain.ProductRecommendation{ProductID: "bat-001", Reason: "Long-lasting"}, recs[0])
	assert.Equal(t, "These work great for remotes.", cleaned)
}
