package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Sony", "sony"},
		{"spaces", "Galaxy Buds 3 Pro", "galaxy-buds-3-pro"},
		{"vietnamese diacritics", "Tai nghe chống ồn", "tai-nghe-chong-on"},
		{"d with stroke", "Tai nghe đỏ", "tai-nghe-do"},
		{"underscores and runs", "over__ear   studio", "over-ear-studio"},
		{"punctuation dropped", "Beats!", "beats"},
		{"leading trailing junk", "  --JBL Tune--  ", "jbl-tune"},
		{"no transliterable content", "!!! ***", ""},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Make(tc.in)
			if got != tc.want {
				t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMakeAlphabet(t *testing.T) {
	inputs := []string{"Sony WH-1000XM5", "Tai nghe thể thao đỉnh", "ÀÁÂÃÈÉÊ ối giời", "a_b__c d"}
	for _, in := range inputs {
		got := Make(in)
		if got == "" {
			t.Fatalf("Make(%q) unexpectedly empty", in)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") || strings.Contains(got, "--") {
			t.Fatalf("Make(%q) = %q has bad hyphenation", in, got)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Fatalf("Make(%q) = %q contains %q outside [a-z0-9-]", in, got, r)
			}
		}
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"beats": true, "beats-1": true}
	exists := func(s string) bool { return taken[s] }

	if got := Unique("sony", exists); got != "sony" {
		t.Fatalf("free candidate changed: %q", got)
	}
	// idempotent for an already-unique candidate
	if got := Unique("sony", exists); got != "sony" {
		t.Fatalf("second call changed result: %q", got)
	}
	if got := Unique("beats", exists); got != "beats-2" {
		t.Fatalf("Unique(beats) = %q, want beats-2", got)
	}
	if exists(Unique("beats", exists)) {
		t.Fatal("Unique returned a taken slug")
	}
}
