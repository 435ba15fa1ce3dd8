package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	dErrors "github.com/eksiir/risk-categories-microservice/pkg/domainerrors"
)

// Risk levels form a fixed enum. -1 is an explicit exclusion (whitelist)
// marker; 1 through 4 denote increasing severity.
const (
	RiskLevelExcluded = -1
	RiskLevelLow      = 1
	RiskLevelMedium   = 2
	RiskLevelHigh     = 3
	RiskLevelCritical = 4
)

// ValidRiskLevel reports whether v is a member of the risk level enum.
func ValidRiskLevel(v int) bool {
	switch v {
	case RiskLevelExcluded, RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// IsValidID reports whether s is a structurally valid document identifier
// (a 24 hex character ObjectID). Pure check, no store access; id-bearing
// operations use it to short-circuit doomed lookups with a client error.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// RiskCategory is one named, language-scoped risk classification with a list
// of matching keywords.
//
// Invariants:
//   - RiskLevel is a member of the enum above
//   - UpdatedByUserID is itself a structurally valid identifier
//   - LanguageCode and Name are present, and together form the uniqueness
//     key enforced by the service at creation (soft-deleted rows included)
//   - CreatedAt is immutable; UpdatedAt is bumped on every successful update,
//     soft delete included
//
// Lifecycle: Active → Deleted via soft delete only; nothing leaves Deleted.
// Updates are permitted in both states and never change the deletion state.
type RiskCategory struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Deleted         bool               `json:"deleted" bson:"deleted"`
	Keywords        []string           `json:"keywords" bson:"keywords"`
	LanguageCode    string             `json:"languageCode" bson:"languageCode"`
	Name            string             `json:"name" bson:"name"`
	RiskLevel       int                `json:"riskLevel" bson:"riskLevel"`
	UpdatedByUserID string             `json:"updatedByUserId" bson:"updatedByUserId"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Validate applies the entity rules. Violations surface with CodeValidation,
// which the HTTP layer renders as 500 with the message verbatim: validation
// failures are distinguished from client precondition failures by status
// code, not by a uniform 4xx taxonomy.
func (c *RiskCategory) Validate() error {
	if c.LanguageCode == "" {
		return dErrors.New(dErrors.CodeValidation, "Path `languageCode` is required.")
	}
	if c.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "Path `name` is required.")
	}
	if !ValidRiskLevel(c.RiskLevel) {
		return dErrors.Newf(dErrors.CodeValidation, "`%d` is not a valid enum value for path `riskLevel`.", c.RiskLevel)
	}
	if !IsValidID(c.UpdatedByUserID) {
		return dErrors.Newf(dErrors.CodeValidation, "`%s` is not a valid identifier for path `updatedByUserId`.", c.UpdatedByUserID)
	}
	return nil
}
