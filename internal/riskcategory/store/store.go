// Package store persists RiskCategory documents. Two implementations exist:
// a MongoDB-backed store for deployment and an in-memory store with the same
// semantics for tests.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
)

// Store is the document store contract the service composes. Implementations
// return sentinel.ErrNotFound (optionally wrapped) when an identifier matches
// no document; they enforce no constraints beyond that.
type Store interface {
	// Count returns the number of documents matching f.
	Count(ctx context.Context, f Filter) (int64, error)

	// Insert persists a new document, assigning its identifier, and returns
	// the stored document.
	Insert(ctx context.Context, rc *models.RiskCategory) (*models.RiskCategory, error)

	// FindByID returns the document with the given identifier.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RiskCategory, error)

	// Find returns all documents matching f, in store-defined order.
	Find(ctx context.Context, f Filter) ([]*models.RiskCategory, error)

	// UpdateByID applies p as a field-level merge against the stored document
	// and returns the updated document.
	UpdateByID(ctx context.Context, id primitive.ObjectID, p Patch) (*models.RiskCategory, error)
}

// Filter is an exact-match query over the fixed set of schema fields. Nil
// fields are unconstrained; the zero Filter matches every document.
//
// Unmatchable marks a query that named a field outside the schema. Such a
// filter deterministically yields an empty result set, matching document
// store semantics for queries against fields no document has.
type Filter struct {
	ID              *primitive.ObjectID
	Deleted         *bool
	Keyword         *string // matches documents whose keywords contain the value
	LanguageCode    *string
	Name            *string
	RiskLevel       *int
	UpdatedByUserID *string
	Unmatchable     bool
}

// FilterFromDocument builds a Filter from a decoded query document. Keys
// outside the schema, and values whose type cannot match any stored field,
// mark the filter unmatchable. The caller validates any id value before
// building the filter.
func FilterFromDocument(doc map[string]any) Filter {
	var f Filter
	for key, value := range doc {
		switch key {
		case "id":
			s, ok := value.(string)
			if !ok {
				f.Unmatchable = true
				continue
			}
			oid, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				f.Unmatchable = true
				continue
			}
			f.ID = &oid
		case "deleted":
			b, ok := value.(bool)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.Deleted = &b
		case "keywords":
			s, ok := value.(string)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.Keyword = &s
		case "languageCode":
			s, ok := value.(string)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.LanguageCode = &s
		case "name":
			s, ok := value.(string)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.Name = &s
		case "riskLevel":
			n, ok := intValue(value)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.RiskLevel = &n
		case "updatedByUserId":
			s, ok := value.(string)
			if !ok {
				f.Unmatchable = true
				continue
			}
			f.UpdatedByUserID = &s
		default:
			f.Unmatchable = true
		}
	}
	return f
}

// intValue coerces a decoded JSON number (or a plain int from Go callers)
// into an int, rejecting fractional values.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// Patch is a field-level merge applied by UpdateByID. Nil fields are left
// untouched. UpdatedAt is always set: every successful update, soft delete
// included, bumps it.
type Patch struct {
	Deleted         *bool
	Keywords        *[]string
	LanguageCode    *string
	Name            *string
	RiskLevel       *int
	UpdatedByUserID *string
	UpdatedAt       time.Time
}
