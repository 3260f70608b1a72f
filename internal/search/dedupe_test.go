package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amishk599/pipelines/internal/model"
)

func TestDedupeByName(t *testing.T) {
	in := []model.School{
		{Name: "X", Country: "first"},
		{Name: "X", Country: "second"},
		{Name: "Y"},
	}
	got := DedupeByName(in, func(s model.School) string { return s.Name })
	want := []model.School{{Name: "X", Country: "first"}, {Name: "Y"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DedupeByName mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupeByName_Empty(t *testing.T) {
	got := DedupeByName([]string(nil), func(s string) string { return s })
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
