// Package feedback relays reader-submitted messages to the site maintainers
// over SMTP. Messages about a specific hadith carry enough context to find it
// again; "about" messages route to a different inbox.
package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// TypeAbout routes a message to the about inbox instead of the content one.
const TypeAbout = "about"

// ErrMissingComments is returned when a message has no body.
var ErrMissingComments = errors.New("missing feedback")

// Contact is the submitting reader's details.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Comments string `json:"comments"`
}

// HadithContext identifies the hadith a message is about.
type HadithContext struct {
	ID           uint   `json:"id,omitempty"`
	HadithNumber string `json:"hadith_number,omitempty"`
}

// BookContext identifies the book a message is about.
type BookContext struct {
	ID    uint   `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
}

// Message is a feedback submission.
type Message struct {
	Feedback Contact        `json:"feedback"`
	Hadith   *HadithContext `json:"hadith,omitempty"`
	Book     *BookContext   `json:"book,omitempty"`
	PageURL  string         `json:"pageUrl"`
	Type     string         `json:"type,omitempty"`
}

// Validate checks the one required field.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Feedback.Comments) == "" {
		return ErrMissingComments
	}
	return nil
}

// Subject is the fixed subject line used for every relayed message.
const Subject = "New Website Feedback"

// Body renders the plain-text email body.
func (m *Message) Body() string {
	bookTitle := "N/A"
	if m.Book != nil && m.Book.Title != "" {
		bookTitle = m.Book.Title
	}
	hadithNumber := "N/A"
	if m.Hadith != nil && m.Hadith.HadithNumber != "" {
		hadithNumber = m.Hadith.HadithNumber
	}

	return fmt.Sprintf(`New Message From Shia Library

Name: %s
Email: %s

Book: %s
Hadith: %s
Page: %s

Message:
%s
`, m.Feedback.Name, m.Feedback.Email, bookTitle, hadithNumber, m.PageURL, m.Feedback.Comments)
}
