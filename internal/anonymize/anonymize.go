// Package anonymize removes personal identifiers from a CV record.
// Only identity fields are touched: company names, locations, project
// details and everything else stay intact.
package anonymize

import (
	"fmt"
	"math/rand"
	"regexp"

	"github.com/jmartel/cv-anonymizer/internal/types"
)

// NamePlaceholder replaces the candidate name on every rendered CV.
const NamePlaceholder = "Nom & Prénom"

// Anonymize returns a copy of rec with the identity fields cleared.
// It is total and idempotent: any record, already anonymized or not,
// comes back with the same four fields blanked and the name replaced.
func Anonymize(rec *types.Record) *types.Record {
	out := *rec
	out.Name = NamePlaceholder
	out.Email = ""
	out.Phone = ""
	out.Address = ""
	out.Photo = ""
	return &out
}

var (
	emailRe   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe   = regexp.MustCompile(`\b\d{2,3}[-.\s]?\d{2,3}[-.\s]?\d{2,3}[-.\s]?\d{2,3}\b`)
	intlRe    = regexp.MustCompile(`\+\d{1,3}\s?\d{1,14}`)
	addressRe = regexp.MustCompile(`\d+\s+[A-Za-z\s]+(?:rue|avenue|boulevard|place|street)[^,\n]+`)
)

// ScrubText masks emails, phone numbers and street addresses in free
// text. Useful for raw-text previews; the structured record path does
// not need it since identity lives in dedicated fields there.
func ScrubText(text string) string {
	text = emailRe.ReplaceAllString(text, "[EMAIL]")
	// International form first so the "+" prefix is masked with the rest.
	text = intlRe.ReplaceAllString(text, "[PHONE]")
	text = phoneRe.ReplaceAllString(text, "[PHONE]")
	text = addressRe.ReplaceAllString(text, "[ADDRESS]")
	return text
}

// AnonymousID generates a short candidate reference for anonymized
// documents.
func AnonymousID() string {
	return fmt.Sprintf("CAND-%04d", 1000+rand.Intn(9000))
}
