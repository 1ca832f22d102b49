package playerstats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    any
		want  string
		valid bool
	}{
		{in: "45.5%", want: "0.455", valid: true},
		{in: " 100% ", want: "1", valid: true},
		{in: "12.3", want: "12.3", valid: true},
		{in: float64(7.5), want: "7.5", valid: true},
		{in: "n/a"},
		{in: "%"},
		{in: nil},
		{in: true},
	}
	for _, tc := range cases {
		got := ParseValue(tc.in)
		if got.Valid != tc.valid {
			t.Fatalf("ParseValue(%v) valid=%v want %v", tc.in, got.Valid, tc.valid)
		}
		if tc.valid && !got.Decimal.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("ParseValue(%v) = %s want %s", tc.in, got.Decimal, tc.want)
		}
	}
}

func TestSelectColumns(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"doubleDoubles": float64(3),
		"tripleDoubles": "1",
		"pointsScored":  float64(20),
		"player":        map[string]any{"code": "P1"},
	}
	got := SelectColumns(EndpointMisc, raw)
	if len(got) != 2 {
		t.Fatalf("expected only misc columns, got %v", got)
	}
	if _, ok := got["pointsScored"]; ok {
		t.Fatalf("traditional column leaked into misc selection")
	}
}

func TestMergeAndDedupe(t *testing.T) {
	t.Parallel()

	age := 27
	alpha := Identity{PlayerCode: "P1", PlayerName: "Alpha", PlayerAge: &age, TeamCode: "MAD", TeamName: "Real Madrid"}
	beta := Identity{PlayerCode: "P2", PlayerName: "Beta", TeamCode: "BAR", TeamName: "Barcelona"}

	traditional := []Line{
		{Identity: alpha, Values: map[string]decimal.NullDecimal{"pointsScored": ParseValue("15.2")}},
	}
	misc := []Line{
		{Identity: alpha, Values: map[string]decimal.NullDecimal{"doubleDoubles": ParseValue("2")}},
		{Identity: beta, Values: map[string]decimal.NullDecimal{"doubleDoubles": ParseValue("1")}},
	}

	merged := Merge(2023, "RS", traditional, misc)
	if len(merged) != 2 {
		t.Fatalf("expected outer merge of 2 players, got %d", len(merged))
	}
	if merged[0].PlayerCode != "P1" || !merged[0].Value("pointsScored").Valid || !merged[0].Value("doubleDoubles").Valid {
		t.Fatalf("alpha must carry both endpoints: %+v", merged[0])
	}
	if merged[1].Value("pointsScored").Valid {
		t.Fatalf("beta has no traditional line, value must be null")
	}
	if merged[1].Season != 2023 || merged[1].Phase != "RS" {
		t.Fatalf("season and phase must be stamped: %+v", merged[1])
	}

	// same key under a different identity image keeps the later line
	alphaNewImage := alpha
	alphaNewImage.ImageURL = "alpha.png"
	again := Merge(2023, "RS", []Line{{Identity: alphaNewImage}})
	deduped := Dedupe(append(merged, again...))
	if len(deduped) != 2 {
		t.Fatalf("expected duplicates removed, got %d", len(deduped))
	}
	if deduped[0].ImageURL != "alpha.png" {
		t.Fatalf("expected the last duplicate to win, got %+v", deduped[0].Identity)
	}
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	want := []string{EndpointTraditional, EndpointMisc, EndpointScoring, EndpointAdvanced}
	got := Endpoints()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected endpoint order: %v", got)
		}
	}
	if ColumnsOf("unknown") != nil {
		t.Fatalf("unknown endpoint must have no columns")
	}
	if len(AllColumns()) != 37 {
		t.Fatalf("unexpected column count %d", len(AllColumns()))
	}
}
