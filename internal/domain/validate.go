package domain

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a stage config. It is called
// before any write; a failure must leave no side effects behind.
func (c *StageConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: stage id must not be empty", ErrInvalidInput)
	}
	if c.Kind != StageKindAssistantShopping {
		return fmt.Errorf("%w: unsupported stage kind %q", ErrInvalidInput, c.Kind)
	}

	seen := make(map[string]struct{}, len(c.ProductCatalog))
	for _, p := range c.ProductCatalog {
		if p.ID == "" {
			return fmt.Errorf("%w: product id must not be empty", ErrInvalidInput)
		}
		// Ids containing ':' or ']' would break the recommendation tag
		// grammar, so they are rejected at import time.
		if strings.ContainsAny(p.ID, ":]") {
			return fmt.Errorf("%w: product id %q must not contain ':' or ']'", ErrInvalidInput, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price < 0 {
			return fmt.Errorf("%w: product %q: price must be non-negative", ErrInvalidInput, p.ID)
		}
	}

	for _, item := range c.ShoppingList {
		if item.ID == "" {
			return fmt.Errorf("%w: shopping list item id must not be empty", ErrInvalidInput)
		}
	}

	if err := c.AssistantConfig.Validate(); err != nil {
		return err
	}

	if c.TimeLimitInMinutes != nil && *c.TimeLimitInMinutes < 1 {
		return fmt.Errorf("%w: time limit must be a positive number of minutes", ErrInvalidInput)
	}
	return nil
}

// Validate checks the assistant settings.
func (a *AssistantConfig) Validate() error {
	if !a.APIType.Valid() {
		return fmt.Errorf("%w: unknown api type %q", ErrInvalidInput, a.APIType)
	}
	if a.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidInput)
	}
	if a.Temperature < 0 || a.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2", ErrInvalidInput)
	}
	return nil
}
