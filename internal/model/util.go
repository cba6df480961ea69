package model

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// generateSecureID creates a secure random ID with a prefix
func generateSecureID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s%s", prefix, base64.RawURLEncoding.EncodeToString(b))
}

// generateSecureToken creates a secure random token string
func generateSecureToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// newULID returns a lexicographically sortable ID with a prefix.
// Used for report and delivery IDs so history and logs sort by creation time.
func newULID(prefix string) string {
	entropy := ulid.Monotonic(mrand.New(mrand.NewSource(time.Now().UnixNano())), 0)
	return fmt.Sprintf("%s_%s", prefix, ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

// NewTenantID returns a fresh tenant ID.
func NewTenantID() string { return generateSecureID("ten_") }

// NewRecipientID returns a fresh recipient ID.
func NewRecipientID() string { return generateSecureID("rcp_") }

// NewLinkToken returns the stable secret path segment for a recipient's brief link.
func NewLinkToken() string { return generateSecureToken() }

// NewSubmitToken returns a fresh single-use submission token.
func NewSubmitToken() string { return generateSecureToken() }

// NewReportID returns a fresh report record ID.
func NewReportID() string { return newULID("rep") }

// NewDeliveryID returns a fresh delivery correlation ID.
func NewDeliveryID() string { return newULID("del") }
