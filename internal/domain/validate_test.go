package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStage() *StageConfig {
	limit := 10
	return &StageConfig{
		ID:   "stage-1",
		Kind: StageKindAssistantShopping,
		Name: "Shopping Task",
		ShoppingList: []ShoppingListItem{
			{ID: "item-1", Name: "Batteries", Description: "Any AA pack"},
		},
		ProductCatalog: []Product{
			{ID: "bat-001", Name: "AA Batteries", Price: 599, Category: "Electronics", Description: "4-pack"},
		},
		AssistantConfig: AssistantConfig{
			APIType:      APITypeGemini,
			ModelName:    "gemini-2.0-flash",
			SystemPrompt: "You are a helpful shopping assistant.",
			Temperature:  0.7,
		},
		TimeLimitInMinutes: &limit,
	}
}

func TestStageConfigValidate_OK(t *testing.T) {
	require.NoError(t, validStage().Validate())
}

func TestStageConfigValidate_NilTimeLimitMeansNoLimit(t *testing.T) {
	stage := validStage()
	stage.TimeLimitInMinutes = nil
	assert.NoError(t, stage.Validate())
}

func TestStageConfigValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StageConfig)
	}{
		{"empty stage id", func(c *StageConfig) { c.ID = "" }},
		{"wrong stage kind", func(c *StageConfig) { c.Kind = "survey" }},
		{"empty product id", func(c *StageConfig) { c.ProductCatalog[0].ID = "" }},
		{"product id with colon", func(c *StageConfig) { c.ProductCatalog[0].ID = "bat:001" }},
		{"product id with bracket", func(c *StageConfig) { c.ProductCatalog[0].ID = "bat]001" }},
		{"negative price", func(c *StageConfig) { c.ProductCatalog[0].Price = -1 }},
		{"duplicate product id", func(c *StageConfig) {
			c.ProductCatalog = append(c.ProductCatalog, c.ProductCatalog[0])
		}},
		{"empty list item id", func(c *StageConfig) { c.ShoppingList[0].ID = "" }},
		{"unknown api type", func(c *StageConfig) { c.AssistantConfig.APIType = "bard" }},
		{"empty model name", func(c *StageConfig) { c.AssistantConfig.ModelName = "" }},
		{"temperature below range", func(c *StageConfig) { c.AssistantConfig.Temperature = -0.1 }},
		{"temperature above range", func(c *StageConfig) { c.AssistantConfig.Temperature = 2.1 }},
		{"zero time limit", func(c *StageConfig) { zero := 0; c.TimeLimitInMinutes = &zero }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := validStage()
			tt.mutate(stage)
			err := stage.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAssistantConfigValidate_TemperatureBoundsInclusive(t *testing.T) {
	cfg := validStage().AssistantConfig
	cfg.Temperature = 0
	assert.NoError(t, cfg.Validate())
	cfg.Temperature = 2
	assert.NoError(t, cfg.Validate())
}
