package retriever

import "testing"

func TestSynonymGroupSymmetry(t *testing.T) {
	for _, group := range synonymGroups {
		for _, a := range group {
			expanded := expandTerms([]string{a})
			for _, b := range group {
				if _, ok := expanded[b]; !ok {
					t.Fatalf("expanding %q should include group member %q", a, b)
				}
			}
		}
	}
}

func TestExpandIncludesOriginalTokens(t *testing.T) {
	expanded := expandTerms([]string{"zanzibar", "book"})
	if _, ok := expanded["zanzibar"]; !ok {
		t.Fatalf("expected unknown token to survive expansion")
	}
	if _, ok := expanded["book"]; !ok {
		t.Fatalf("expected original token to survive expansion")
	}
	if _, ok := expanded["reserve"]; !ok {
		t.Fatalf("expected synonym of %q to be added", "book")
	}
}

func TestExpandEmptyInput(t *testing.T) {
	if expanded := expandTerms(nil); len(expanded) != 0 {
		t.Fatalf("expected empty expansion, got %v", expanded)
	}
}
