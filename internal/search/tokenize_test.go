package search

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"splits on non-alphanumeric", "oud-royale/parfum", []string{"oud", "royale", "parfum"}},
		{"drops stopwords", "The Oud and the Rose", []string{"oud", "rose"}},
		{"normalizes first", "Eau Fraîche", []string{"eau", "fraiche"}},
		{"keeps digits", "no 5 parfum", []string{"no", "5", "parfum"}},
		{"empty input", "", nil},
		{"only stopwords", "of the and", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenize_PreservesOrderAndDuplicates(t *testing.T) {
	got := Tokenize("rose rose of rose")
	want := []string{"rose", "rose", "rose"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}
