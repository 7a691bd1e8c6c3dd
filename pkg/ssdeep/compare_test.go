package ssdeep

import "testing"

func TestCompareValidHashes(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"48:abcdefg:abcdefg", "48:abcdefg:abcdefg", 100},
		{
			"192:A95DD4484A95DD4484A95DD4484:15d44d5d44d5d44d",
			"192:A95DD4484A95DD4484A95DD4484:15d44d5d44d5d44d",
			100,
		},
		{"48:abcdefg:abcdefg", "96:hijklmn:hijklmn", 0},
		{"48:abcdefgh:abcdefgh", "48:abcdefgi:abcdefgi", 88},
		{"96:ThisIsATestString1:ThisIsATestString1", "96:ThisIsATestString2:ThisIsATestString2", 96},
		{"48:abcdefg:abcdefg", "48:hijklmn:hijklmn", 0},
		{"6:abcdefg:abcdefg", "6:hijklmn:hijklmn", 0},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareMalformedHashes(t *testing.T) {
	cases := []struct{ a, b string }{
		{"3:h", "3:h:h"},
		{"3:h:h", "3:h"},
		{"abc:h:h", "3:h:h"},
		{"3:h:h", "abc:h:h"},
		{":h:h", "3:h:h"},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != -1 {
			t.Errorf("Compare(%q, %q) = %d, want -1", tc.a, tc.b, got)
		}
	}
}

func TestCompareIncompatibleBlockSizes(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"3:h:h", "5:v:v", 0},
		{"48:cJN6o:cJN6o", "128:HDEHDGAy2:HDEHDGAy2", 0},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareLongHashesUsesWagnerFischer(t *testing.T) {
	repeat := func(s string, n int) string {
		out := ""
		for i := 0; i < n; i++ {
			out += s
		}
		return out
	}
	part1 := repeat("abc", 22) // length 66
	part2 := repeat("abc", 21) + "add"

	longHash1 := "1536:" + part1 + ":" + part1
	longHash2 := "1536:" + part2 + ":" + part2

	if got := Compare(longHash1, longHash2); got != 99 {
		t.Errorf("Compare(long hashes) = %d, want 99", got)
	}
}

func TestHasCommonSubstringBitmaskNonPrefixMatch(t *testing.T) {
	// s1 and s2 share the 7-byte window "abbbbaa" starting at s1[1], not at
	// either string's start, so a matcher that only checks s1's leading
	// window would wrongly report no match.
	s1 := "aabbbbaaaabbab"
	s2 := "bbababbbbaabb"
	if !hasCommonSubstringBitmask(s1, s2) {
		t.Errorf("hasCommonSubstringBitmask(%q, %q) = false, want true", s1, s2)
	}
}

func TestCompareSharedSubstringNotAtPrefix(t *testing.T) {
	// ParseSignature collapses runs of four or more, so these blocks carry no
	// such runs. They share the 7-byte window "abbbaaa" (a[1:], b[4:]) while
	// neither block's leading window occurs in the other.
	a := "6:aabbbaaabbab:aabbbaaabbab"
	b := "6:bbababbbaaab:bbababbbaaab"
	if got := Compare(a, b); got == 0 {
		t.Errorf("Compare(%q, %q) = 0, want nonzero (shared 7-gram not anchored at prefix)", a, b)
	}
}

func TestCompareShortHashParts(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"3:abcdef:abcdef", "3:abcdefg:abcdefg", 0},
		{"3:abc:abc", "3:def:def", 0},
		{"48:short1:longenough1", "48:short2:longenough2", 93},
		{"3:abc:abc", "3:abc:abc", 100},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
