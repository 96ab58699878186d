package model

import "testing"

func TestGraphNodeID(t *testing.T) {
	got := GraphNodeID(EntityProperty, "123")
	if got != "Property:123" {
		t.Fatalf("GraphNodeID() = %q, want %q", got, "Property:123")
	}
}

func TestRelationshipKey(t *testing.T) {
	a := Relationship{FromID: "Property:1", ToID: "City:nyc_ny", Type: EdgeInCity}
	b := Relationship{FromID: "Property:1", ToID: "City:nyc_ny", Type: EdgeInCity, Undirected: true}
	if a.Key() != b.Key() {
		t.Fatalf("Key() should ignore Undirected/Weight: %+v != %+v", a.Key(), b.Key())
	}

	c := Relationship{FromID: "Property:1", ToID: "City:nyc_ny", Type: EdgeNear}
	if a.Key() == c.Key() {
		t.Fatalf("Key() should differ by Type")
	}
}

func TestEntityKindString(t *testing.T) {
	if EntityProperty.String() != "Property" {
		t.Fatalf("String() = %q, want %q", EntityProperty.String(), "Property")
	}
}

func TestCityAndCountyID(t *testing.T) {
	if got := CityID("Austin", "TX"); got != "Austin_TX" {
		t.Fatalf("CityID() = %q", got)
	}
	if got := CountyID("Travis", "TX"); got != "Travis_TX" {
		t.Fatalf("CountyID() = %q", got)
	}
}

func TestBucketForPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  PriceRangeBucket
	}{
		{100_000, PriceRangeUnder250k},
		{250_000, PriceRange250kTo500k},
		{500_000, PriceRange500kTo750k},
		{750_000, PriceRange750kTo1m},
		{1_000_000, PriceRange1mTo2m},
		{2_000_000, PriceRangeOver2m},
	}
	for _, c := range cases {
		if got := BucketForPrice(c.price); got != c.want {
			t.Errorf("BucketForPrice(%v) = %v, want %v", c.price, got, c.want)
		}
	}
}
