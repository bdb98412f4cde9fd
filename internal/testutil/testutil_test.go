package testutil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/legend-exp/detinfo/internal/record"
)

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))
}

func TestNewDetector(t *testing.T) {
	t.Parallel()

	d := NewDetector("V06643A").Mass(2286.2).FWHMQbb(2.54).Serial("20643A")
	doc := d.Object()

	name, _ := doc.Get("name")
	if name != "V06643A" {
		t.Errorf("name = %v, want V06643A", name)
	}

	prod, ok := doc.Object("production")
	if !ok {
		t.Fatal("expected production object")
	}
	if order, _ := prod.Get("order"); order != json.Number("6") {
		t.Errorf("order = %v, want 6", order)
	}
	if mass, _ := prod.Get("mass_in_g"); mass != json.Number("2286.2") {
		t.Errorf("mass_in_g = %v, want 2286.2", mass)
	}
	if d.Name() != "V06643A" {
		t.Errorf("Name() = %q", d.Name())
	}
}

func TestMetadataDir(t *testing.T) {
	t.Parallel()

	md := NewMetadataDir(t)
	md.Add(NewDetector("B00000A").Mass(496))
	md.AddRaw("B00000B", `{"name": "B00000B"}`)

	names, err := md.Store.Names()
	AssertNoError(t, err)
	if len(names) != 2 || names[0] != "B00000A" || names[1] != "B00000B" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestLegacy(t *testing.T) {
	t.Parallel()

	o := Legacy(t, "V10784A")
	if v, _ := o.Get("det_name"); v != "V10784A" {
		t.Errorf("det_name = %v", v)
	}
	prod, _ := o.Object("production")
	if v, _ := prod.Get("order"); v != json.Number("10") {
		t.Errorf("order = %v, want 10", v)
	}

	SetPath(o, nil, "characterization", "l200_site", "res", "qbb_in_keV")
	char, _ := o.Object("characterization")
	site, _ := char.Object("l200_site")
	res, _ := site.Object("res")
	if v, ok := res.Get("qbb_in_keV"); !ok || v != nil {
		t.Errorf("qbb_in_keV = %v (present %v), want null", v, ok)
	}

	if _, err := record.Parse([]byte(LegacyJSON)); err != nil {
		t.Fatalf("LegacyJSON does not parse: %v", err)
	}
}
