// Package assistant turns raw model output into structured shopping
// recommendations and builds the catalog-aware system prompt.
package assistant

import (
	"regexp"
	"strings"

	"github.com/set-night/shoplab/internal/domain"
)

// recommendTag matches [RECOMMEND:<id>:<reason>] where the id contains no
// ':' or ']' and the reason contains no ']'. Malformed tags (unbalanced
// brackets) never match and stay in the text untouched.
var recommendTag = regexp.MustCompile(`\[RECOMMEND:([^:\]]+):([^\]]+)\]`)

// ParseRecommendations extracts recommendation tags from a model reply.
// It returns the recommendations in tag order and the reply text with every
// well-formed tag removed and surrounding whitespace trimmed.
//
// Tags referencing ids outside the catalog are stripped from the text but
// produce no recommendation; duplicate tags for the same product are kept as
// separate entries. The function is total: any input yields a result.
func ParseRecommendations(text string, catalog []domain.Product) ([]domain.ProductRecommendation, string) {
	known := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		known[p.ID] = struct{}{}
	}

	var recs []domain.ProductRecommendation
	for _, match := range recommendTag.FindAllStringSubmatch(text, -1) {
		productID := strings.TrimSpace(match[1])
		reason := strings.TrimSpace(match[2])
		if _, ok := known[productID]; ok {
			recs = append(recs, domain.ProductRecommendation{
				ProductID: productID,
				Reason:    reason,
			})
		}
	}

	cleaned := strings.TrimSpace(recommendTag.ReplaceAllString(text, ""))
	return recs, cleaned
}
