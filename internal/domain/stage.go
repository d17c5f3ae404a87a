package domain

// APIType identifies the LLM provider an assistant config targets.
type APIType string

const (
	APITypeGemini APIType = "gemini"
	APITypeOpenAI APIType = "openai"
	APITypeClaude APIType = "claude"
	APITypeOllama APIType = "ollama"
)

// Valid reports whether the value is one of the supported providers.
func (t APIType) Valid() bool {
	switch t {
	case APITypeGemini, APITypeOpenAI, APITypeClaude, APITypeOllama:
		return true
	}
	return false
}

// Product is a single catalog entry. Immutable once imported.
// Price is in the minor currency unit (pence).
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
}

// ShoppingListItem is a human-readable shopping goal. It is not linked to
// any catalog product; fulfillment is decided by name matching against the
// basket (see IsListItemFulfilled).
type ShoppingListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AssistantConfig describes the model the participant talks to.
// Immutable for the lifetime of a session.
type AssistantConfig struct {
	APIType      APIType `json:"apiType"`
	ModelName    string  `json:"modelName"`
	SystemPrompt string  `json:"systemPrompt"`
	Temperature  float64 `json:"temperature"`
}

// StageKindAssistantShopping is the only stage kind this service serves.
// The surrounding platform has other stage kinds; requests against a stage
// of a different kind are treated as not found.
const StageKindAssistantShopping = "assistantShopping"

// StageConfig is the authored configuration of one shopping stage.
// Read-only to participants. A nil TimeLimitInMinutes disables the timer.
type StageConfig struct {
	ID                 string             `json:"id"`
	Kind               string             `json:"kind"`
	Name               string             `json:"name"`
	ShoppingList       []ShoppingListItem `json:"shoppingList"`
	ProductCatalog     []Product          `json:"productCatalog"`
	AssistantConfig    AssistantConfig    `json:"assistantConfig"`
	TimeLimitInMinutes *int               `json:"timeLimitInMinutes"`
}

// Product returns the catalog entry for id.
func (c *StageConfig) Product(id string) (Product, bool) {
	for _, p := range c.ProductCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// HasProduct reports whether id is in the catalog.
func (c *StageConfig) HasProduct(id string) bool {
	_, ok := c.Product(id)
	return ok
}
