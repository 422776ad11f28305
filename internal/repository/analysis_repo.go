package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dermalens/internal/model"
)

// AnalysisRepo handles MongoDB operations for analysis records.
type AnalysisRepo interface {
	Save(ctx context.Context, rec *model.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error)
	LatestBySession(ctx context.Context, sessionID string) (*model.AnalysisRecord, error)
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]model.AnalysisRecord, error)
}

type analysisRepo struct {
	analyses *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository.
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{analyses: db.Collection("analyses")}
}

func (r *analysisRepo) Save(ctx context.Context, rec *model.AnalysisRecord) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.analyses.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts)
	return err
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	err := r.analyses.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *analysisRepo) LatestBySession(ctx context.Context, sessionID string) (*model.AnalysisRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var rec model.AnalysisRecord
	err := r.analyses.FindOne(ctx, bson.M{"sessionId": sessionID}, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *analysisRepo) ListBySession(ctx context.Context, sessionID string, limit int64) ([]model.AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cur, err := r.analyses.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []model.AnalysisRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
