// Package whatsapp builds wa.me deep links with prefilled booking messages.
package whatsapp

import (
	"net/url"
	"strings"
)

// DefaultNumber is the studio's booking line.
const DefaultNumber = "60122681879"

const (
	greeting = "Hi Mae!"
	closing  = "Thank you!"
	baseURL  = "https://wa.me/"
)

// Link pairs the message with the deep link that prefills it.
type Link struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// BuildServiceMessage writes the booking enquiry for one service. Inputs are
// used verbatim.
func BuildServiceMessage(name, price, category string) string {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString(" I'm interested in your ")
	b.WriteString(name)
	b.WriteString(" service (")
	b.WriteString(price)
	b.WriteString(").\n")
	if strings.TrimSpace(category) != "" {
		b.WriteString("Category: ")
		b.WriteString(category)
		b.WriteString("\n")
	}
	b.WriteString("Could you share your availability and more details?\n")
	b.WriteString(closing)
	return b.String()
}

// ServiceLink builds the deep link for a service enquiry.
func ServiceLink(number, name, price, category string) Link {
	msg := BuildServiceMessage(name, price, category)
	return Link{Message: msg, URL: BuildURL(number, msg)}
}

// CategoryLink builds the deep link for a general enquiry about a category.
func CategoryLink(number, category string) Link {
	msg := CategoryMessage(category)
	return Link{Message: msg, URL: BuildURL(number, msg)}
}

// GeneralLink builds the deep link used by the floating contact button.
func GeneralLink(number string) Link {
	msg := greeting + " " + generalMessage + " " + closing
	return Link{Message: msg, URL: BuildURL(number, msg)}
}

// BuildURL returns https://wa.me/<number>?text=<message>. Spaces are encoded
// as %20 so the link survives apps that treat + literally.
func BuildURL(number, message string) string {
	n := digitsOnly(number)
	if n == "" {
		n = DefaultNumber
	}
	return baseURL + n + "?text=" + EncodeText(message)
}

// EncodeText percent-encodes a message for the text parameter.
func EncodeText(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

var categoryMessages = map[string]string{
	"bridal":     "I'm planning my wedding and would love to book a bridal makeup consultation. Could you share your bridal packages and available dates?",
	"party":      "I have an upcoming event and would like to book party glam makeup. What are your rates and availability?",
	"editorial":  "I'm working on an editorial shoot and would like to discuss makeup for it. Could we talk about the concept and your rates?",
	"photoshoot": "I'm planning a photoshoot and need a makeup artist. Could you share your photoshoot packages?",
	"class":      "I'm interested in joining one of your makeup classes. When is the next session and how much does it cost?",
	"grooming":   "I'd like to book a grooming session. Could you share the details and your availability?",
}

const generalMessage = "I'd like to know more about your makeup services. Could you share your packages and availability?"

// CategoryMessage returns the prefilled enquiry for a service category.
// Unknown categories get the general enquiry.
func CategoryMessage(category string) string {
	body, ok := categoryMessages[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		body = generalMessage
	}
	return greeting + " " + body + " " + closing
}

// Categories lists the categories with a dedicated message.
func Categories() []string {
	return []string{"bridal", "party", "editorial", "photoshoot", "class", "grooming"}
}

// Enquiry is a contact form submission turned into a WhatsApp message.
type Enquiry struct {
	Name     string
	Category string
	Date     string
	Note     string
}

// EnquiryLink frames the category message with the visitor's details.
// Empty fields are left out; the message still opens with the greeting and
// ends with the closing line.
func EnquiryLink(number string, e Enquiry) Link {
	body, ok := categoryMessages[strings.ToLower(strings.TrimSpace(e.Category))]
	if !ok {
		body = generalMessage
	}

	var b strings.Builder
	b.WriteString(greeting)
	if name := strings.TrimSpace(e.Name); name != "" {
		b.WriteString(" This is ")
		b.WriteString(name)
		b.WriteString(".")
	}
	b.WriteString(" ")
	b.WriteString(body)
	b.WriteString("\n")
	if date := strings.TrimSpace(e.Date); date != "" {
		b.WriteString("Date: ")
		b.WriteString(date)
		b.WriteString("\n")
	}
	if note := strings.TrimSpace(e.Note); note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	b.WriteString(closing)

	msg := b.String()
	return Link{Message: msg, URL: BuildURL(number, msg)}
}
