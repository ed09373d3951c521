package estimate

import (
	"strings"
	"time"
)

const (
	DefaultTaxRate  = 10.0
	DefaultValidity = 30 * 24 * time.Hour
)

// TaxPreset is a selectable VAT rate. Japan is kept at 11 to stay
// compatible with documents saved by earlier editor versions.
type TaxPreset struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

var taxPresets = []TaxPreset{
	{Code: "KR", Label: "한국 (10%)", Rate: 10},
	{Code: "US", Label: "미국 (0%)", Rate: 0},
	{Code: "JP", Label: "일본 (10%)", Rate: 11},
	{Code: "UK", Label: "영국 (20%)", Rate: 20},
}

// TaxPresets returns the rates offered by the editor.
func TaxPresets() []TaxPreset {
	out := make([]TaxPreset, len(taxPresets))
	copy(out, taxPresets)
	return out
}

// TaxLabel returns the display label for rate, falling back to "<rate>%".
func TaxLabel(rate float64) string {
	for _, p := range taxPresets {
		if p.Rate == rate {
			return p.Label
		}
	}
	return formatRate(rate) + "%"
}

// Draft is an unsaved estimate being edited.
type Draft struct {
	TemplateID string    `json:"template_id"`
	Title      string    `json:"title"`
	Items      []Item    `json:"items"`
	TaxRate    float64   `json:"tax_rate"`
	ValidUntil time.Time `json:"valid_until"`
	Totals     Totals    `json:"totals"`
}

// Recalculate refreshes the draft totals from its items and tax rate.
func (d *Draft) Recalculate() {
	d.Totals = Aggregate(d.Items, d.TaxRate)
}

// IsBlank reports whether id asks for an empty estimate.
func IsBlank(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || id == BlankTemplateID || id == "new"
}

// Instantiate starts a new draft from the template with the given id.
// The template items are copied, so edits to the draft never reach the catalog.
func Instantiate(templateID string, now time.Time) (Draft, error) {
	d := Draft{
		TemplateID: BlankTemplateID,
		Items:      []Item{},
		TaxRate:    DefaultTaxRate,
		ValidUntil: now.Add(DefaultValidity),
	}
	if !IsBlank(templateID) {
		t, err := FindTemplate(templateID)
		if err != nil {
			return Draft{}, err
		}
		d.TemplateID = t.ID
		d.Title = t.Name
		d.Items = t.Items
	}
	d.Recalculate()
	return d, nil
}

// ReplaceItems returns the item list a template selection produces. The
// result replaces whatever the estimate held before; nothing is merged.
func ReplaceItems(templateID string) ([]Item, string, error) {
	if IsBlank(templateID) {
		return []Item{}, "", nil
	}
	t, err := FindTemplate(templateID)
	if err != nil {
		return nil, "", err
	}
	return t.Items, t.Name, nil
}
