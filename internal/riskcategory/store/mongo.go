package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
	"github.com/eksiir/risk-categories-microservice/pkg/sentinel"
)

// Mongo is the MongoDB-backed Store.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo wraps the given collection.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (s *Mongo) Count(ctx context.Context, f Filter) (int64, error) {
	if f.Unmatchable {
		return 0, nil
	}
	n, err := s.coll.CountDocuments(ctx, f.bson())
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *Mongo) Insert(ctx context.Context, rc *models.RiskCategory) (*models.RiskCategory, error) {
	res, err := s.coll.InsertOne(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	stored := *rc
	stored.ID = res.InsertedID.(primitive.ObjectID)
	return &stored, nil
}

func (s *Mongo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RiskCategory, error) {
	var doc models.RiskCategory
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &doc, nil
}

func (s *Mongo) Find(ctx context.Context, f Filter) ([]*models.RiskCategory, error) {
	out := []*models.RiskCategory{}
	if f.Unmatchable {
		return out, nil
	}
	cursor, err := s.coll.Find(ctx, f.bson())
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return out, nil
}

func (s *Mongo) UpdateByID(ctx context.Context, id primitive.ObjectID, p Patch) (*models.RiskCategory, error) {
	set := bson.M{"updatedAt": p.UpdatedAt}
	if p.Deleted != nil {
		set["deleted"] = *p.Deleted
	}
	if p.Keywords != nil {
		set["keywords"] = *p.Keywords
	}
	if p.LanguageCode != nil {
		set["languageCode"] = *p.LanguageCode
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.RiskLevel != nil {
		set["riskLevel"] = *p.RiskLevel
	}
	if p.UpdatedByUserID != nil {
		set["updatedByUserId"] = *p.UpdatedByUserID
	}

	var doc models.RiskCategory
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return &doc, nil
}

// bson renders the filter as an exact-match query document. A keyword
// constraint relies on Mongo's array containment semantics for equality
// against an array field.
func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.ID != nil {
		q["_id"] = *f.ID
	}
	if f.Deleted != nil {
		q["deleted"] = *f.Deleted
	}
	if f.Keyword != nil {
		q["keywords"] = *f.Keyword
	}
	if f.LanguageCode != nil {
		q["languageCode"] = *f.LanguageCode
	}
	if f.Name != nil {
		q["name"] = *f.Name
	}
	if f.RiskLevel != nil {
		q["riskLevel"] = *f.RiskLevel
	}
	if f.UpdatedByUserID != nil {
		q["updatedByUserId"] = *f.UpdatedByUserID
	}
	return q
}
