package util

import "testing"

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		expect string
	}{
		{name: "empty", items: nil, expect: ""},
		{name: "one item", items: []string{"apples"}, expect: " apples"},
		{name: "two items", items: []string{"apples", "oranges"}, expect: " apples and  oranges"},
		{name: "three items uses oxford comma", items: []string{"a", "b", "c"}, expect: " a,  b, and  c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := MakeTextList(tc.items, false)
			if actual != tc.expect {
				t.Errorf("MakeTextList(%v, false) = %q, want %q", tc.items, actual, tc.expect)
			}
		})
	}
}

func Test_ArticleFor(t *testing.T) {
	testCases := []struct {
		name     string
		s        string
		definite bool
		expect   string
	}{
		{name: "indefinite consonant lowercase", s: "cat", definite: false, expect: "a"},
		{name: "indefinite vowel lowercase", s: "apple", definite: false, expect: "an"},
		{name: "indefinite vowel capitalized", s: "Apple", definite: false, expect: "An"},
		{name: "definite lowercase", s: "cat", definite: true, expect: "the"},
		{name: "definite capitalized", s: "Cat", definite: true, expect: "The"},
		{name: "empty string", s: "", definite: false, expect: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := ArticleFor(tc.s, tc.definite)
			if actual != tc.expect {
				t.Errorf("ArticleFor(%q, %v) = %q, want %q", tc.s, tc.definite, actual, tc.expect)
			}
		})
	}
}

func Test_OrderedKeys_IsAlphabeticalAndStable(t *testing.T) {
	m := map[string]int{"banana": 1, "apple": 2, "cherry": 3}

	first := OrderedKeys(m)
	second := OrderedKeys(m)

	expect := []string{"apple", "banana", "cherry"}
	for i := range expect {
		if first[i] != expect[i] || second[i] != expect[i] {
			t.Fatalf("OrderedKeys(%v) = %v, want %v", m, first, expect)
		}
	}
}
