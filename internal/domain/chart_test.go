package domain_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
)

// table builds a 12-house chart table where every house holds the same cell.
func table(cell string) []string {
	houses := make([]string, 12)
	for i := range houses {
		houses[i] = cell
	}
	return houses
}

func TestReshapeCharts_PairsLabelsWithTables(t *testing.T) {
	tables := [][]string{table("Sun"), table("Moon"), table("Mars")}
	set := domain.ReshapeCharts(tables, []int{1, 9, 10})

	want := []string{"D1", "D9", "D10"}
	if !reflect.DeepEqual(set.Labels(), want) {
		t.Fatalf("labels = %v, want %v", set.Labels(), want)
	}

	houses, ok := set.Houses("D9")
	if !ok {
		t.Fatal("D9 missing")
	}
	if len(houses) != 12 {
		t.Fatalf("D9 has %d houses, want 12", len(houses))
	}
	if !reflect.DeepEqual(houses[0], []string{"Moon"}) {
		t.Errorf("D9 house 0 = %v, want [Moon]", houses[0])
	}
}

func TestReshapeCharts_TruncatesToTables(t *testing.T) {
	tables := [][]string{table("Sun"), table("Moon")}
	set := domain.ReshapeCharts(tables, []int{1, 9, 10, 12})

	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2 (as many entries as tables)", set.Len())
	}
	if !reflect.DeepEqual(set.Labels(), []string{"D1", "D9"}) {
		t.Errorf("labels = %v, want [D1 D9]", set.Labels())
	}
}

func TestReshapeCharts_TruncatesToFactors(t *testing.T) {
	tables := [][]string{table("Sun"), table("Moon"), table("Mars")}
	set := domain.ReshapeCharts(tables, []int{1, 9})

	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2 (as many entries as factors)", set.Len())
	}
}

func TestReshapeCharts_SplitsAndCleansHouses(t *testing.T) {
	tables := [][]string{table("Lagna☉\n\nSun\n")}
	set := domain.ReshapeCharts(tables, []int{1})

	houses, _ := set.Houses("D1")
	want := []string{"Lagna", "Sun"}
	if !reflect.DeepEqual(houses[0], want) {
		t.Errorf("house = %v, want %v", houses[0], want)
	}
}

func TestReshapeCharts_BlankHouseIsEmptyList(t *testing.T) {
	tables := [][]string{table("\n  \n\n")}
	set := domain.ReshapeCharts(tables, []int{1})

	houses, _ := set.Houses("D1")
	if len(houses[0]) != 0 {
		t.Errorf("blank house = %v, want empty list", houses[0])
	}
	for _, name := range houses[0] {
		if name == "" {
			t.Error("blank house contains empty string")
		}
	}
}

func TestReshapeCharts_EmptyInputs(t *testing.T) {
	if set := domain.ReshapeCharts(nil, []int{1, 9}); set.Len() != 0 {
		t.Errorf("nil tables: len = %d, want 0", set.Len())
	}
	if set := domain.ReshapeCharts([][]string{table("Sun")}, nil); set.Len() != 0 {
		t.Errorf("nil factors: len = %d, want 0", set.Len())
	}
}

func TestChartSet_MarshalPreservesOrder(t *testing.T) {
	set := domain.NewChartSet()
	set.Add("D1", [][]string{{"Sun"}})
	set.Add("D10", [][]string{{"Moon"}})
	set.Add("D2", [][]string{{"Mars"}})

	out, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(out)
	i1, i10, i2 := strings.Index(s, `"D1"`), strings.Index(s, `"D10"`), strings.Index(s, `"D2"`)
	if i1 < 0 || i10 < 0 || i2 < 0 {
		t.Fatalf("missing labels in %s", s)
	}
	if !(i1 < i10 && i10 < i2) {
		t.Errorf("labels out of order in %s", s)
	}

	// Empty houses must serialize as [], not null.
	set.Add("D3", [][]string{{}})
	out, err = json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"D3":[[]]`) {
		t.Errorf("empty house not serialized as []: %s", out)
	}
}

func TestNormalizePlacements(t *testing.T) {
	raw := map[string]string{
		"Raasi-Sun☉":  "Capricorn\n",
		"Navamsa-Moon": "  Taurus ",
	}

	got := domain.NormalizePlacements(raw)
	want := map[string]string{
		"Raasi-Sun":    "Capricorn",
		"Navamsa-Moon": "Taurus",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizePlacements = %v, want %v", got, want)
	}
}
