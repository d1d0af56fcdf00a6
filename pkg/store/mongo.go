package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
)

const (
	defaultDatabase = "deckplan"
	plansCollection = "plans"
	connectTimeout  = 10 * time.Second
)

// MongoStore persists plans in a MongoDB collection, keyed by plan ID.
type MongoStore struct {
	client *mongo.Client
	plans  *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it to fail fast on bad
// configuration. The database name defaults to "deckplan" when empty.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo URI is required")
	}
	if database == "" {
		database = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}

	return &MongoStore{
		client: client,
		plans:  client.Database(database).Collection(plansCollection),
	}, nil
}

// Put upserts the plan by ID.
func (s *MongoStore) Put(ctx context.Context, plan *compose.DeckPlan) error {
	if plan.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plan has no ID")
	}
	_, err := s.plans.ReplaceOne(ctx,
		bson.M{"_id": plan.ID},
		plan,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store plan %s", plan.ID)
	}
	return nil
}

// Get retrieves a plan by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*compose.DeckPlan, error) {
	var plan compose.DeckPlan
	err := s.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load plan %s", id)
	}
	return &plan, nil
}

// List returns plan summaries, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]PlanSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1, "template": 1, "created_at": 1, "slides": 1})

	cursor, err := s.plans.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list plans")
	}
	defer cursor.Close(ctx)

	var summaries []PlanSummary
	for cursor.Next(ctx) {
		var doc struct {
			ID        string              `bson:"_id"`
			Template  string              `bson:"template"`
			CreatedAt time.Time           `bson:"created_at"`
			Slides    []compose.SlidePlan `bson:"slides"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode plan summary")
		}
		summaries = append(summaries, PlanSummary{
			ID:        doc.ID,
			Template:  doc.Template,
			Slides:    len(doc.Slides),
			CreatedAt: doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list plans")
	}
	return summaries, nil
}

// Delete removes a plan.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.plans.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete plan %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodePlanNotFound, "plan %q not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
