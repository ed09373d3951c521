package estimate

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Category groups line items on the estimate sheet.
type Category string

const (
	CategoryPlanning       Category = "planning"
	CategoryProduction     Category = "production"
	CategoryPostProduction Category = "postProduction"
	CategoryAI             Category = "ai"
)

// Unit labels used by the built-in catalog.
const (
	UnitCase    = "건"
	UnitDay     = "일"
	UnitHalfDay = "반일"
)

const (
	aiItemName        = "AI생성"
	aiItemDescription = "AI가 생성한 예시 견적 항목"
)

var ErrItemNotFound = errors.New("estimate item not found")

// Valid reports whether c is one of the known item categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlanning, CategoryProduction, CategoryPostProduction, CategoryAI:
		return true
	}
	return false
}

// Label returns the display label printed on exported documents.
func (c Category) Label() string {
	switch c {
	case CategoryPlanning:
		return "기획"
	case CategoryProduction:
		return "제작"
	case CategoryPostProduction:
		return "후반제작"
	case CategoryAI:
		return "AI"
	}
	return string(c)
}

// Item is one line of an estimate.
type Item struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unit_price"`
	TotalPrice  float64  `json:"total_price"`
	IsDiscount  bool     `json:"is_discount"`
}

// Recompute sets TotalPrice to Quantity × UnitPrice.
func (it *Item) Recompute() {
	total := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice))
	it.TotalPrice = total.InexactFloat64()
}

// SetQuantity normalizes q for the item's unit and recomputes the total.
func (it *Item) SetQuantity(q float64) {
	it.Quantity = NormalizeQuantity(it.Unit, q)
	it.Recompute()
}

// SetUnitPrice replaces the unit price and recomputes the total.
func (it *Item) SetUnitPrice(p float64) {
	it.UnitPrice = p
	it.Recompute()
}

// Increment adds one whole unit, dropping any half step.
func (it *Item) Increment() {
	it.Quantity = math.Floor(it.Quantity) + 1
	it.Recompute()
}

// Decrement removes one whole unit. Quantities of 1 or less are left as is.
func (it *Item) Decrement() {
	if it.Quantity <= 1 {
		return
	}
	it.Quantity = math.Floor(it.Quantity) - 1
	it.Recompute()
}

// SetCategory switches the category. Moving an item into the AI category
// replaces its name and description with the AI preset.
func (it *Item) SetCategory(c Category) {
	it.Category = c
	if c == CategoryAI {
		it.Name = aiItemName
		it.Description = aiItemDescription
	}
}

// NormalizeQuantity applies the editor's quantity rules: day units move in
// half steps with a floor of 0.5, every other unit is a whole number >= 1.
func NormalizeQuantity(unit string, q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		q = 0
	}
	if unit == UnitDay {
		if q < 0.5 {
			return 0.5
		}
		return math.Round(q*2) / 2
	}
	if q < 1 {
		return 1
	}
	return math.Floor(q)
}

// IsHalfStep reports whether q is a multiple of 0.5.
func IsHalfStep(q float64) bool {
	return math.Mod(q*2, 1) == 0
}

// ValidQuantity reports whether q can be stored for unit as posted: whole
// numbers, or half steps for day units. Zero is allowed for optional rows.
func ValidQuantity(unit string, q float64) bool {
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return false
	}
	if unit == UnitDay {
		return IsHalfStep(q)
	}
	return q == math.Trunc(q)
}

// CloneItems returns a copy of items that shares no backing array.
func CloneItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// FindItem returns the index of the item with the given id.
func FindItem(items []Item, id string) (int, error) {
	for i := range items {
		if items[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrItemNotFound
}
