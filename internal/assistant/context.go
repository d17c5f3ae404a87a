package assistant

import (
	"fmt"
	"strings"

	"github.com/set-night/shoplab/internal/domain"
)

const recommendationInstructions = `IMPORTANT INSTRUCTIONS FOR RECOMMENDATIONS:
- When you want to recommend a product, include a tag in your response: [RECOMMEND:product_id:brief reason]
- The tag will be converted into a product card showing the name and price to the customer.
- DO NOT repeat the product name, ID, or price in your text - the card will display this information.
- Just write a natural conversational response explaining why the product might suit their needs.
- You can recommend multiple products by including multiple [RECOMMEND:...] tags.

Example response:
"Based on what you've told me, I think these would work really well for your TV remote - they're known for lasting a long time in low-drain devices. [RECOMMEND:bat-001:Long-lasting for remotes]"

The customer will see your text plus a product card. Do NOT write things like "I recommend the Duracell AA Batteries (4-pack) priced at £5.99" - just use the tag and write naturally about why the product suits their needs.`

// BuildCatalogContext renders the product catalog and the tag protocol
// instructions into a system prompt fragment. It is deterministic in the
// catalog content and rebuilt on every turn.
func BuildCatalogContext(stage *domain.StageConfig) string {
	var b strings.Builder
	b.WriteString("AVAILABLE PRODUCTS:\n")
	for _, p := range stage.ProductCatalog {
		fmt.Fprintf(&b, "- ID: %s | %s | %s | %s | %s\n",
			p.ID, p.Name, domain.FormatPrice(p.Price), p.Category, p.Description)
	}
	b.WriteString("\n")
	b.WriteString(recommendationInstructions)
	return b.String()
}

// BuildSystemPrompt appends the catalog context to the assistant's
// configured free-text prompt.
func BuildSystemPrompt(stage *domain.StageConfig) string {
	return stage.AssistantConfig.SystemPrompt + "\n\n" + BuildCatalogContext(stage)
}
