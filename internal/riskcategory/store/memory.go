package store

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
	"github.com/eksiir/risk-categories-microservice/pkg/sentinel"
)

// Memory is an in-memory Store used by tests and by the test deployment
// environment. Documents are returned in insertion order.
type Memory struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]*models.RiskCategory
	order []primitive.ObjectID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[primitive.ObjectID]*models.RiskCategory)}
}

func (m *Memory) Count(ctx context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f.Unmatchable {
		return 0, nil
	}
	var n int64
	for _, id := range m.order {
		if f.matches(m.docs[id]) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) Insert(ctx context.Context, rc *models.RiskCategory) (*models.RiskCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := clone(rc)
	stored.ID = primitive.NewObjectID()
	m.docs[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	return clone(stored), nil
}

func (m *Memory) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RiskCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(doc), nil
}

func (m *Memory) Find(ctx context.Context, f Filter) ([]*models.RiskCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*models.RiskCategory{}
	if f.Unmatchable {
		return out, nil
	}
	for _, id := range m.order {
		if f.matches(m.docs[id]) {
			out = append(out, clone(m.docs[id]))
		}
	}
	return out, nil
}

func (m *Memory) UpdateByID(ctx context.Context, id primitive.ObjectID, p Patch) (*models.RiskCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if p.Deleted != nil {
		doc.Deleted = *p.Deleted
	}
	if p.Keywords != nil {
		doc.Keywords = slices.Clone(*p.Keywords)
	}
	if p.LanguageCode != nil {
		doc.LanguageCode = *p.LanguageCode
	}
	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.RiskLevel != nil {
		doc.RiskLevel = *p.RiskLevel
	}
	if p.UpdatedByUserID != nil {
		doc.UpdatedByUserID = *p.UpdatedByUserID
	}
	doc.UpdatedAt = p.UpdatedAt
	return clone(doc), nil
}

// matches applies the exact-match semantics of the document store: every
// constrained field must equal the stored value, and a keyword constraint
// matches documents whose keywords contain the value.
func (f Filter) matches(doc *models.RiskCategory) bool {
	if f.ID != nil && *f.ID != doc.ID {
		return false
	}
	if f.Deleted != nil && *f.Deleted != doc.Deleted {
		return false
	}
	if f.Keyword != nil && !slices.Contains(doc.Keywords, *f.Keyword) {
		return false
	}
	if f.LanguageCode != nil && *f.LanguageCode != doc.LanguageCode {
		return false
	}
	if f.Name != nil && *f.Name != doc.Name {
		return false
	}
	if f.RiskLevel != nil && *f.RiskLevel != doc.RiskLevel {
		return false
	}
	if f.UpdatedByUserID != nil && *f.UpdatedByUserID != doc.UpdatedByUserID {
		return false
	}
	return true
}

func clone(rc *models.RiskCategory) *models.RiskCategory {
	out := *rc
	out.Keywords = slices.Clone(rc.Keywords)
	return &out
}
