package summary

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bft-labs/launchdash/internal/domain"
)

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := domain.NewDataset([]domain.LaunchRecord{
		{Site: "CCAFS LC-40", PayloadMass: 0, BoosterCategory: "v1.0", Outcome: 0},
		{Site: "CCAFS LC-40", PayloadMass: 500, BoosterCategory: "v1.0", Outcome: 1},
		{Site: "CCAFS LC-40", PayloadMass: 2500, BoosterCategory: "FT", Outcome: 1},
		{Site: "KSC LC-39A", PayloadMass: 9000, BoosterCategory: "FT", Outcome: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return ds
}

func TestCompute(t *testing.T) {
	got := Compute(testDataset(t), nil)

	want := Summary{
		Sites: []Row{
			{Site: "CCAFS LC-40", Launches: 3, Successes: 2, Failures: 1, SuccessRate: 2.0 / 3.0, MinPayload: 0, MeanPayload: 1000, MaxPayload: 2500},
			{Site: "KSC LC-39A", Launches: 1, Successes: 1, Failures: 0, SuccessRate: 1, MinPayload: 9000, MeanPayload: 9000, MaxPayload: 9000},
		},
		Total: Row{Site: domain.AllSites, Launches: 4, Successes: 3, Failures: 1, SuccessRate: 0.75, MinPayload: 0, MeanPayload: 3000, MaxPayload: 9000},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_SiteWithoutLaunches(t *testing.T) {
	got := Compute(testDataset(t), []domain.Site{"VAFB SLC-4E"})

	if len(got.Sites) != 1 {
		t.Fatalf("len(Sites) = %d, want 1", len(got.Sites))
	}
	r := got.Sites[0]
	if r.Launches != 0 || r.Successes != 0 || r.Failures != 0 {
		t.Errorf("counts = %d/%d/%d, want zeros", r.Launches, r.Successes, r.Failures)
	}
	if !math.IsNaN(r.SuccessRate) || !math.IsNaN(r.MeanPayload) {
		t.Errorf("rate/mean = %v/%v, want NaN", r.SuccessRate, r.MeanPayload)
	}
	if got.Total.Launches != 4 {
		t.Errorf("Total.Launches = %d, want 4", got.Total.Launches)
	}
}

func TestRender(t *testing.T) {
	s := Compute(testDataset(t), []domain.Site{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E"})

	tests := []struct {
		name     string
		mode     Mode
		contains []string
	}{
		{"ascii", ASCII, []string{"┌", "ccafs lc-40", "66.7%", "1000", "total", "75.0%"}},
		{"markdown", Markdown, []string{"| ccafs lc-40 |", "| vafb slc-4e |", "66.7%", "---"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := strings.ToLower(Render(s, tt.mode))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRender_MissingValues(t *testing.T) {
	s := Compute(testDataset(t), []domain.Site{"VAFB SLC-4E"})
	out := Render(s, Markdown)
	if !strings.Contains(out, "| - |") {
		t.Errorf("expected placeholder for missing statistics:\n%s", out)
	}
}
