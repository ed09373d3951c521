package estimate

import (
	"errors"
	"testing"
	"time"
)

func TestCatalog_TotalsAreItemSums(t *testing.T) {
	want := map[string]float64{
		"budget-template":         2900000,
		"tvc-template":            7600000,
		"motion-template":         3000000,
		"corporate-template":      4900000,
		"sns-template":            1500000,
		"youtube-template":        1300000,
		"planning-template":       800000,
		"production-template":     2100000,
		"postproduction-template": 1100000,
	}
	templates := Catalog()
	if len(templates) != len(want) {
		t.Fatalf("catalog has %d templates, want %d", len(templates), len(want))
	}
	for _, tpl := range templates {
		if tpl.TotalAmount != want[tpl.ID] {
			t.Errorf("%s total = %v, want %v", tpl.ID, tpl.TotalAmount, want[tpl.ID])
		}
	}
}

func TestInstantiate_CopiesItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d, err := Instantiate("sns-template", now)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if d.Title != "SNS 광고/바이럴 영상" || len(d.Items) != 4 {
		t.Fatalf("unexpected draft %+v", d)
	}
	if d.TaxRate != DefaultTaxRate {
		t.Fatalf("tax rate = %v", d.TaxRate)
	}
	if !d.ValidUntil.Equal(now.AddDate(0, 0, 30)) {
		t.Fatalf("valid until = %v", d.ValidUntil)
	}
	if d.Totals.Subtotal != 1500000 || d.Totals.FinalAmount != 1650000 {
		t.Fatalf("totals = %+v", d.Totals)
	}

	d.Items[0].SetQuantity(5)
	again, _ := FindTemplate("sns-template")
	if again.Items[0].Quantity != 1 {
		t.Fatalf("editing a draft leaked into the catalog")
	}
}

func TestInstantiate_Blank(t *testing.T) {
	for _, id := range []string{"", "blank", "new"} {
		d, err := Instantiate(id, time.Now())
		if err != nil {
			t.Fatalf("Instantiate(%q): %v", id, err)
		}
		if d.Items == nil || len(d.Items) != 0 {
			t.Fatalf("Instantiate(%q) items = %v", id, d.Items)
		}
		if d.Totals.Subtotal != 0 {
			t.Fatalf("blank subtotal = %v", d.Totals.Subtotal)
		}
	}
}

func TestInstantiate_Unknown(t *testing.T) {
	if _, err := Instantiate("nope", time.Now()); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
}

func TestReplaceItems_NoMerge(t *testing.T) {
	d, _ := Instantiate("tvc-template", time.Now())
	d.Items = append(d.Items, Item{ID: "custom", TotalPrice: 1})

	items, title, err := ReplaceItems("youtube-template")
	if err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}
	d.Items = items
	if title != "유튜브 영상 제작" {
		t.Fatalf("title = %q", title)
	}
	if len(d.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(d.Items))
	}
	for _, it := range d.Items {
		if it.ID == "custom" || it.ID == "tvc-1" {
			t.Fatalf("item %q survived the replacement", it.ID)
		}
	}

	blank, _, err := ReplaceItems(BlankTemplateID)
	if err != nil || len(blank) != 0 {
		t.Fatalf("blank replacement = %v, %v", blank, err)
	}
}

func TestTaxLabel(t *testing.T) {
	if got := TaxLabel(11); got != "일본 (10%)" {
		t.Errorf("TaxLabel(11) = %q", got)
	}
	if got := TaxLabel(7.5); got != "7.5%" {
		t.Errorf("TaxLabel(7.5) = %q", got)
	}
}

func TestCompactTitle(t *testing.T) {
	if got := CompactTitle(" 유튜브 영상\t제작 "); got != "유튜브영상제작" {
		t.Errorf("CompactTitle = %q", got)
	}
}
