package domain

import "time"

// Document is a named, versioned content snapshot shared within a session.
// The server stores the latest full snapshot from shareDocument and relays
// later deltas verbatim; it never parses or merges content.
type Document struct {
	URI            string
	Filename       string
	Content        string
	Version        int
	LastModified   time.Time
	LastModifiedBy string
}
