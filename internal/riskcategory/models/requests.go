package models

import "time"

// Inbound payloads decode into explicit allow-list structs. Any field a
// caller submits that is not declared here is dropped by construction and
// never reaches the store or the response.

// CreateRequest is the decoded body of POST /risk-categories.
// Pointer fields distinguish absent from zero.
type CreateRequest struct {
	Deleted         *bool    `json:"deleted"`
	Keywords        []string `json:"keywords"`
	LanguageCode    string   `json:"languageCode"`
	Name            string   `json:"name"`
	RiskLevel       *int     `json:"riskLevel"`
	UpdatedByUserID string   `json:"updatedByUserId"`
}

// WantsDeleted reports whether the caller tried to create an already
// soft-deleted record, which the contract forbids.
func (r CreateRequest) WantsDeleted() bool {
	return r.Deleted != nil && *r.Deleted
}

// NewRiskCategory builds the entity to persist. Keywords default to empty,
// deleted to false, and both timestamps are set to now.
func (r CreateRequest) NewRiskCategory(now time.Time) *RiskCategory {
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	riskLevel := 0
	if r.RiskLevel != nil {
		riskLevel = *r.RiskLevel
	}
	return &RiskCategory{
		Deleted:         false,
		Keywords:        keywords,
		LanguageCode:    r.LanguageCode,
		Name:            r.Name,
		RiskLevel:       riskLevel,
		UpdatedByUserID: r.UpdatedByUserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateRequest is the decoded body of PATCH /risk-categories/{id}. The
// deletion flag is deliberately absent: only the soft-delete operation may
// flip it. ID is declared solely so an attempted identity reassignment can
// be rejected rather than silently stripped.
type UpdateRequest struct {
	ID              *string   `json:"id"`
	Keywords        *[]string `json:"keywords"`
	LanguageCode    *string   `json:"languageCode"`
	Name            *string   `json:"name"`
	RiskLevel       *int      `json:"riskLevel"`
	UpdatedByUserID *string   `json:"updatedByUserId"`
}

// HasID reports whether the caller attempted to reassign the identifier.
func (r UpdateRequest) HasID() bool { return r.ID != nil }

// ApplyTo returns a copy of base with the requested fields merged in, the
// way a $set would apply them. The copy is what gets validated before the
// store write.
func (r UpdateRequest) ApplyTo(base *RiskCategory) *RiskCategory {
	merged := *base
	if r.Keywords != nil {
		merged.Keywords = *r.Keywords
	}
	if r.LanguageCode != nil {
		merged.LanguageCode = *r.LanguageCode
	}
	if r.Name != nil {
		merged.Name = *r.Name
	}
	if r.RiskLevel != nil {
		merged.RiskLevel = *r.RiskLevel
	}
	if r.UpdatedByUserID != nil {
		merged.UpdatedByUserID = *r.UpdatedByUserID
	}
	return &merged
}
