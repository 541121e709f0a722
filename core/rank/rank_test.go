package rank

import (
	"testing"

	"newsdigest/core/domain"
)

func TestFilterRank(t *testing.T) {
	articles := []domain.Article{
		{Title: "High", Score: 9.0},
		{Title: "Low", Score: 4.0},
		{Title: "Mid", Score: 7.5},
	}

	out := FilterRank(articles, 6.0, nil)

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Score != 9.0 || out[1].Score != 7.5 {
		t.Errorf("order = [%v, %v], want [9.0, 7.5]", out[0].Score, out[1].Score)
	}
}

func TestFilterRank_ThresholdIsInclusive(t *testing.T) {
	articles := []domain.Article{
		{Title: "Exact", Score: 6.0},
		{Title: "Just under", Score: 5.999},
	}

	out := FilterRank(articles, 6.0, nil)

	if len(out) != 1 || out[0].Title != "Exact" {
		t.Errorf("got %v, want only the article scoring exactly at the threshold", out)
	}
}

func TestFilterRank_StableForEqualScores(t *testing.T) {
	articles := []domain.Article{
		{Title: "A", Score: 7.0},
		{Title: "B", Score: 8.0},
		{Title: "C", Score: 7.0},
		{Title: "D", Score: 7.0},
	}

	out := FilterRank(articles, 0, nil)

	want := []string{"B", "A", "C", "D"}
	for i, title := range want {
		if out[i].Title != title {
			t.Fatalf("out[%d] = %q, want %q (equal scores must keep fetch order)", i, out[i].Title, title)
		}
	}
}

func TestFilterRank_EmptyAndAllFiltered(t *testing.T) {
	if out := FilterRank(nil, 6.0, nil); len(out) != 0 {
		t.Errorf("nil input should yield empty output, got %v", out)
	}

	articles := []domain.Article{{Title: "A", Score: 1}, {Title: "B", Score: 2}}
	if out := FilterRank(articles, 6.0, nil); len(out) != 0 {
		t.Errorf("all below threshold should yield empty output, got %v", out)
	}
}

func TestFilterRank_DoesNotMutateInput(t *testing.T) {
	articles := []domain.Article{
		{Title: "Low", Score: 6.5},
		{Title: "High", Score: 9.0},
	}

	FilterRank(articles, 6.0, nil)

	if articles[0].Title != "Low" || articles[1].Title != "High" {
		t.Error("input slice order changed")
	}
}
