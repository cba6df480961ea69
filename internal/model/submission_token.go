package model

import "time"

// SubmissionToken is an ephemeral single-use credential bound to one rendered
// form instance. A token transitions unused -> used exactly once; tokens older
// than the TTL are implicitly expired and never re-acceptable. It is not owned
// by a tenant: the registry is process-wide and keyed by the raw token string.
type SubmissionToken struct {
	Token    string    `gorm:"primaryKey;type:varchar(64)"`
	IssuedAt time.Time `gorm:"index;not null"`
}
