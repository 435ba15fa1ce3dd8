// Package service implements the risk category operations: create, get by
// id, search, partial update, and soft delete. Each operation follows the
// same shape: validate, act against the store, translate the outcome into a
// domain error carrying the documented status code and message.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/metrics"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/store"
	dErrors "github.com/eksiir/risk-categories-microservice/pkg/domainerrors"
	"github.com/eksiir/risk-categories-microservice/pkg/requestcontext"
	"github.com/eksiir/risk-categories-microservice/pkg/sentinel"
)

// Service orchestrates risk category lifecycle operations.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs the service. logger must be non-nil; metrics may be nil in
// tests.
func New(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: st, logger: logger, metrics: m}
}

// Create persists a new risk category.
//
// Preconditions, checked in order: the payload must not arrive soft-deleted,
// and no existing document (deleted or not) may share {languageCode, name}.
// Both fail with CodeBadRequest. Entity rule violations surface afterwards
// with CodeValidation.
//
// The uniqueness check is a count-then-insert sequence: two concurrent
// creates with the same pair may both pass the count before either inserts.
// The store adds no unique index, so this race is accepted.
func (s *Service) Create(ctx context.Context, req models.CreateRequest) (*models.RiskCategory, error) {
	start := time.Now()

	if req.WantsDeleted() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Cannot create deleted Risk Category.")
	}

	count, err := s.store.Count(ctx, store.Filter{
		LanguageCode: &req.LanguageCode,
		Name:         &req.Name,
	})
	if err != nil {
		s.metrics.IncrementError("create")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}
	if count > 0 {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "%s:%s already exists.", req.LanguageCode, req.Name)
	}

	rc := req.NewRiskCategory(requestcontext.Now(ctx))
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.store.Insert(ctx, rc)
	if err != nil {
		s.metrics.IncrementError("create")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}

	s.metrics.IncrementCreated()
	s.metrics.ObserveOperation("create", start)
	s.logger.InfoContext(ctx, "risk category created",
		"request_id", requestcontext.RequestID(ctx),
		"id", stored.ID.Hex(),
		"languageCode", stored.LanguageCode,
		"name", stored.Name,
	)
	return stored, nil
}

// GetByID returns the document with the given identifier, or CodeNotFound
// when none exists.
func (s *Service) GetByID(ctx context.Context, id string) (*models.RiskCategory, error) {
	start := time.Now()

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, s.translateStoreErr("getById", err)
	}

	s.metrics.ObserveOperation("getById", start)
	return doc, nil
}

// Search returns all documents matching the query document as an exact-match
// filter. An empty query returns every document; a query naming a field
// outside the schema returns an empty result set. An id value, if present,
// must be a structurally valid identifier.
func (s *Service) Search(ctx context.Context, query map[string]any) ([]*models.RiskCategory, error) {
	start := time.Now()

	if raw, ok := query["id"]; ok {
		id, isString := raw.(string)
		if !isString || !models.IsValidID(id) {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "'%v' is not a valid identifier.", raw)
		}
	}

	docs, err := s.store.Find(ctx, store.FilterFromDocument(query))
	if err != nil {
		s.metrics.IncrementError("search")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}

	s.metrics.ObserveOperation("search", start)
	return docs, nil
}

// Update applies a partial update to the document with the given identifier.
// The payload must not attempt an identity reassignment. The merged document
// is re-validated against the entity rules before the write; violations
// surface with CodeValidation. UpdatedAt is bumped on success.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.RiskCategory, error) {
	start := time.Now()

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	if req.HasID() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Request body cannot have id.")
	}

	existing, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, s.translateStoreErr("update", err)
	}
	if err := req.ApplyTo(existing).Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateByID(ctx, oid, store.Patch{
		Keywords:        req.Keywords,
		LanguageCode:    req.LanguageCode,
		Name:            req.Name,
		RiskLevel:       req.RiskLevel,
		UpdatedByUserID: req.UpdatedByUserID,
		UpdatedAt:       requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, s.translateStoreErr("update", err)
	}

	s.metrics.ObserveOperation("update", start)
	s.logger.InfoContext(ctx, "risk category updated",
		"request_id", requestcontext.RequestID(ctx),
		"id", updated.ID.Hex(),
	)
	return updated, nil
}

// SoftDelete marks the document deleted and bumps UpdatedAt; no other field
// changes. Deleting an already-deleted document succeeds again with the
// same outcome. There is no undelete.
func (s *Service) SoftDelete(ctx context.Context, id string) (*models.RiskCategory, error) {
	start := time.Now()

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	deleted := true
	updated, err := s.store.UpdateByID(ctx, oid, store.Patch{
		Deleted:   &deleted,
		UpdatedAt: requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, s.translateStoreErr("softDelete", err)
	}

	s.metrics.IncrementSoftDeleted()
	s.metrics.ObserveOperation("softDelete", start)
	s.logger.InfoContext(ctx, "risk category soft-deleted",
		"request_id", requestcontext.RequestID(ctx),
		"id", updated.ID.Hex(),
	)
	return updated, nil
}

// parseID rejects structurally invalid identifiers before any store access.
func (s *Service) parseID(id string) (primitive.ObjectID, error) {
	if !models.IsValidID(id) {
		return primitive.NilObjectID, dErrors.Newf(dErrors.CodeBadRequest, "'%s' is not a valid identifier.", id)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, dErrors.Newf(dErrors.CodeBadRequest, "'%s' is not a valid identifier.", id)
	}
	return oid, nil
}

func (s *Service) translateStoreErr(operation string, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "")
	}
	s.metrics.IncrementError(operation)
	return dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
}
