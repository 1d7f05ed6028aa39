package viewstate

import (
	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
)

// View is the visible part of a catalog. Empty marks the "nothing matches"
// state, which is not an error.
type View[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Empty bool `json:"empty"`
}

func newView[T catalog.Listing](items []T, c catalog.Criteria) View[T] {
	visible := catalog.Filter(items, c)
	return View[T]{Items: visible, Total: len(visible), Empty: len(visible) == 0}
}

// Marketplace is the state of the marketplace browser.
type Marketplace struct {
	Search         string
	Type           string
	Category       string
	AddProductOpen bool
}

// NewMarketplace returns the initial marketplace state: no search, all types
// and categories.
func NewMarketplace() Marketplace {
	return Marketplace{Type: catalog.All, Category: catalog.All}
}

// MarketplaceEvent is an input the marketplace reacts to.
type MarketplaceEvent interface{ marketplaceEvent() }

// SearchChanged replaces the search term.
type SearchChanged struct{ Term string }

// TypeSelected replaces the type filter.
type TypeSelected struct{ Type string }

// CategorySelected replaces the category filter.
type CategorySelected struct{ Category string }

// AddProductOpened opens the listing dialog.
type AddProductOpened struct{}

// AddProductClosed closes the listing dialog.
type AddProductClosed struct{}

func (SearchChanged) marketplaceEvent()    {}
func (TypeSelected) marketplaceEvent()     {}
func (CategorySelected) marketplaceEvent() {}
func (AddProductOpened) marketplaceEvent() {}
func (AddProductClosed) marketplaceEvent() {}

// ReduceMarketplace applies e to s.
func ReduceMarketplace(s Marketplace, e MarketplaceEvent) Marketplace {
	switch ev := e.(type) {
	case SearchChanged:
		s.Search = ev.Term
	case TypeSelected:
		s.Type = orAll(ev.Type)
	case CategorySelected:
		s.Category = orAll(ev.Category)
	case AddProductOpened:
		s.AddProductOpen = true
	case AddProductClosed:
		s.AddProductOpen = false
	}
	return s
}

// Criteria returns the filter the state describes.
func (s Marketplace) Criteria() catalog.Criteria {
	return catalog.Criteria{Search: s.Search, Type: s.Type, Category: s.Category}
}

// Visible filters products by the current state.
func (s Marketplace) Visible(products []models.Product) View[models.Product] {
	return newView(products, s.Criteria())
}

func orAll(v string) string {
	if v == "" {
		return catalog.All
	}
	return v
}
