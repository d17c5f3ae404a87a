package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BasketTotal sums catalog prices (in pence) for every product in the
// basket. Product ids missing from the catalog contribute zero; the basket
// invariant makes that case unreachable in practice, but a stale document
// must not break rendering.
func BasketTotal(basket []BasketItem, catalog []Product) int {
	total := 0
	for _, item := range basket {
		for _, p := range catalog {
			if p.ID == item.ProductID {
				total += p.Price
				break
			}
		}
	}
	return total
}

// FormatPrice renders a pence amount as a display string, e.g. "£5.99".
func FormatPrice(pence int) string {
	major := decimal.NewFromInt(int64(pence)).Div(decimal.NewFromInt(100))
	return "£" + major.StringFixed(2)
}

// IsProductInBasket reports whether productID is currently in the basket.
func IsProductInBasket(productID string, basket []BasketItem) bool {
	for _, item := range basket {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// IsListItemFulfilled reports whether any basket product's name contains the
// list item's name, case-insensitively. This is the presentation heuristic
// the participant UI uses to tick off the shopping list; it is deliberately
// loose and never feeds back into basket or chat state.
func IsListItemFulfilled(item ShoppingListItem, basket []BasketItem, catalog []Product) bool {
	want := strings.ToLower(item.Name)
	for _, basketItem := range basket {
		for _, p := range catalog {
			if p.ID == basketItem.ProductID && strings.Contains(strings.ToLower(p.Name), want) {
				return true
			}
		}
	}
	return false
}
