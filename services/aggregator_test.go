package services

import (
	"math"
	"testing"

	"employee-stats/config"
	"employee-stats/models"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(NewNormalizer(config.DefaultRules()), newTestLogger())
}

func sampleEmployees() []models.EmployeeRecord {
	return []models.EmployeeRecord{
		{UID: "1", Classification: "HO", Division: "TECH - CLOUD", Site: "JAKARTA - HQ", Directorate: "IT", Grouping: "A"},
		{UID: "2", Classification: "Branch", Department: "SALES CABANG MEDAN", Site: "MEDAN", Directorate: "COMMERCIAL", Grouping: "B"},
		{UID: "3", Classification: "HO", Division: "TECH", Site: "JAKARTA", Directorate: "IT", Grouping: "A"},
		{UID: "4", Classification: "Contract", Site: "", Directorate: "IT"},
		{UID: "5", Classification: "Branch", Department: "SALES", Site: "MEDAN - KOTA", Directorate: "COMMERCIAL", Grouping: "B"},
		{UID: "6", Classification: "Branch", Department: "OPS", Site: "SURABAYA", Directorate: "OPERATIONS", Grouping: "C"},
	}
}

func TestAggregatorCountsInFirstSeenOrder(t *testing.T) {
	got := newTestAggregator().Generate(sampleEmployees())

	wantDept := []struct {
		label string
		count int
		pct   string
	}{
		{"TECH", 2, "33.33%"},
		{"SALES", 2, "33.33%"},
		{"Others", 1, "16.67%"},
		{"OPS", 1, "16.67%"},
	}
	dept := got[models.DimensionDepartment]
	if len(dept) != len(wantDept) {
		t.Fatalf("department entries: got %d, want %d (%+v)", len(dept), len(wantDept), dept)
	}
	for i, w := range wantDept {
		if dept[i].Label != w.label || dept[i].Count != w.count || dept[i].Percentage != w.pct {
			t.Errorf("department[%d]: got %+v, want %+v", i, dept[i], w)
		}
	}

	site := got[models.DimensionSite]
	wantSites := []string{"JAKARTA", "MEDAN", "Others", "SURABAYA"}
	if len(site) != len(wantSites) {
		t.Fatalf("site entries: got %+v", site)
	}
	for i, label := range wantSites {
		if site[i].Label != label {
			t.Errorf("site[%d]: got %q, want %q", i, site[i].Label, label)
		}
	}
	if site[0].Count != 2 || site[1].Count != 2 {
		t.Errorf("JAKARTA/MEDAN counts: got %d/%d, want 2/2", site[0].Count, site[1].Count)
	}

	if g := got[models.DimensionGrouping]; len(g) != 4 || g[2].Label != "Others" {
		t.Errorf("grouping: got %+v", g)
	}
}

func TestAggregatorPercentagesSumToHundred(t *testing.T) {
	got := newTestAggregator().Generate(sampleEmployees())

	for _, d := range models.Dimensions {
		dist := got[d]
		sum, count := 0.0, 0
		for _, e := range dist {
			sum += e.Percent
			count += e.Count
		}
		if count != len(sampleEmployees()) {
			t.Errorf("%s counts: got %d, want %d", d, count, len(sampleEmployees()))
		}
		if tol := 0.01 * float64(len(dist)); math.Abs(sum-100) > tol {
			t.Errorf("%s percent sum: got %.4f, want 100 ± %.2f", d, sum, tol)
		}
	}
}

func TestAggregatorEmptyInput(t *testing.T) {
	if got := newTestAggregator().Generate(nil); len(got) != 0 {
		t.Errorf("expected no distributions, got %+v", got)
	}
}

func TestAggregatorDoesNotMutateInput(t *testing.T) {
	records := sampleEmployees()
	newTestAggregator().Generate(records)
	if records[0].Site != "JAKARTA - HQ" {
		t.Errorf("input record was normalised in place: %q", records[0].Site)
	}
}
