package format

import (
	"math"
	"strings"
	"testing"
	"testing/quick"
)

func TestSlugifyKnownTitles(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{
			title: "10 Essential Bridal Makeup Tips for Your Perfect Wedding Day",
			want:  "10-essential-bridal-makeup-tips-for-your-perfect-wedding-day",
		},
		{title: "  Glowing Skin: Prep & Prime  ", want: "glowing-skin-prep-and-prime"},
		{title: "already-a-slug", want: "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	property := func(title string) bool {
		once := Slugify(title)
		return Slugify(once) == once
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	property := func(title string) bool {
		return Slugify(title) == Slugify(title)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestFormatRinggit(t *testing.T) {
	got := FormatRinggit(1500)
	if !strings.Contains(got, "RM") || !strings.Contains(got, "1,500") {
		t.Fatalf("expected RM and 1,500 in %q", got)
	}

	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "RM0"},
		{amount: 350, want: "RM350"},
		{amount: 1250000, want: "RM1,250,000"},
		{amount: 88.5, want: "RM88.50"},
		{amount: -20, want: "-RM20"},
		{amount: -0.004, want: "RM0"},
		{amount: 1e20, want: "RM100,000,000,000,000,000,000"},
		{amount: math.Inf(1), want: "RM-"},
		{amount: math.Inf(-1), want: "RM-"},
		{amount: math.NaN(), want: "RM-"},
	}
	for _, tt := range tests {
		if got := FormatRinggit(tt.amount); got != tt.want {
			t.Fatalf("FormatRinggit(%v): expected %q, got %q", tt.amount, tt.want, got)
		}
	}
}
