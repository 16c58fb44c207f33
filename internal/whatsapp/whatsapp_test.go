package whatsapp

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"testing/quick"
)

func TestServiceLinkRoundTrip(t *testing.T) {
	property := func(name, price, category string) bool {
		link := ServiceLink(DefaultNumber, name, price, category)
		prefix := "https://wa.me/60122681879?text="
		if !strings.HasPrefix(link.URL, prefix) {
			return false
		}
		parsed, err := url.Parse(link.URL)
		if err != nil {
			return false
		}
		return parsed.Query().Get("text") == link.Message
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestServiceLinkEncodesSpacesAsPercent20(t *testing.T) {
	link := ServiceLink("+60 12-2681879", "Bridal Makeup", "RM1,500", "Bridal")
	if strings.Contains(link.URL, "+") {
		t.Fatalf("expected no literal plus in url, got %s", link.URL)
	}
	if !strings.Contains(link.URL, "Hi%20Mae%21") {
		t.Fatalf("expected encoded greeting, got %s", link.URL)
	}
	if !strings.Contains(link.Message, "Category: Bridal") {
		t.Fatalf("expected category line, got %q", link.Message)
	}

	noCategory := BuildServiceMessage("Party Glam", "RM350", "  ")
	if strings.Contains(noCategory, "Category:") {
		t.Fatalf("expected category line to be omitted, got %q", noCategory)
	}
}

func TestBuildURLFallsBackToDefaultNumber(t *testing.T) {
	got := BuildURL("", "hello")
	if got != "https://wa.me/60122681879?text=hello" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestCategoryMessageFraming(t *testing.T) {
	categories := append(Categories(), "", "unknown", "BRIDAL")
	for _, c := range categories {
		msg := CategoryMessage(c)
		if !strings.HasPrefix(msg, "Hi Mae!") || !strings.HasSuffix(msg, "Thank you!") {
			t.Fatalf("category %q produced %q", c, msg)
		}
	}

	property := func(category string) bool {
		msg := CategoryMessage(category)
		return strings.HasPrefix(msg, "Hi Mae!") && strings.HasSuffix(msg, "Thank you!")
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestServiceMessageFraming(t *testing.T) {
	property := func(name, price, category string) bool {
		msg := BuildServiceMessage(name, price, category)
		return strings.HasPrefix(msg, "Hi Mae!") && strings.HasSuffix(msg, "Thank you!")
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPhoneValidationAndFormatting(t *testing.T) {
	valid := []string{"+60 12-2681879", "60122681879", "+60-12-2681879", "+60122681879", "+60 11-2345 6789"}
	for _, s := range valid {
		if !ValidatePhone(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range valid[:4] {
		got, err := FormatPhone(s)
		if err != nil {
			t.Fatalf("FormatPhone(%q) returned error: %v", s, err)
		}
		if got != "+60122681879" {
			t.Fatalf("FormatPhone(%q): expected +60122681879, got %s", s, got)
		}
	}

	invalid := []string{"+65 12-2681879", "6012268", "+60 12-abcdefg", "", "0122681879", "+60 32-2681879"}
	for _, s := range invalid {
		if ValidatePhone(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
		if _, err := FormatPhone(s); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("expected ErrInvalidPhone for %q, got %v", s, err)
		}
	}
}

func TestEnquiryLink(t *testing.T) {
	link := EnquiryLink("", Enquiry{Name: "Aisyah", Category: "Bridal", Date: "2026-12-05", Note: "Two bridesmaids too"})
	if !strings.HasPrefix(link.Message, "Hi Mae! This is Aisyah.") {
		t.Fatalf("unexpected opening: %q", link.Message)
	}
	if !strings.HasSuffix(link.Message, "Thank you!") {
		t.Fatalf("unexpected closing: %q", link.Message)
	}
	if !strings.Contains(link.Message, "Date: 2026-12-05\n") {
		t.Fatalf("expected date line, got %q", link.Message)
	}

	parsed, err := url.Parse(link.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if got := parsed.Query().Get("text"); got != link.Message {
		t.Fatalf("round trip mismatch: %q", got)
	}

	bare := EnquiryLink("", Enquiry{})
	if bare.Message != "Hi Mae! "+generalMessage+"\nThank you!" {
		t.Fatalf("unexpected bare enquiry %q", bare.Message)
	}
}
