package domain

import "time"

// AuditFields holds standard audit information for persisted aggregates.
// CreatedBy and LastUpdatedBy carry the authenticated operator's id.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

