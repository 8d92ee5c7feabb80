package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/ghostleg/pkg/round"
)

const mongoCollection = "rounds"

// MongoStore keeps one document per round in the "rounds" collection, keyed
// by round ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, checks the connection and makes sure the
// created_at index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr(err, "connect to mongo")
	}
	err = ping(ctx, pingAttempts, pingDelay, func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, storeErr(err, "ping mongo")
	}

	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, storeErr(err, "create index")
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func idFilter(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func mongoListOptions(limit int) *options.FindOptions {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.D{
			{Key: "_id", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "names", Value: 1},
			{Key: "seed", Value: 1},
		})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

func (s *MongoStore) Get(ctx context.Context, id string) (r *round.Round, err error) {
	defer func() { observeLoad(ctx, "mongo", id, err) }()
	if err := checkID(id); err != nil {
		return nil, err
	}

	var doc round.Round
	err = s.coll.FindOne(ctx, idFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storeErr(err, "find round %s", id)
	}
	return loaded(id, &doc)
}

func (s *MongoStore) Put(ctx context.Context, r *round.Round) (err error) {
	defer func() { observeSave(ctx, "mongo", r.ID, err) }()
	if err := checkID(r.ID); err != nil {
		return err
	}

	_, err = s.coll.ReplaceOne(ctx, idFilter(r.ID), r, options.Replace().SetUpsert(true))
	if err != nil {
		return storeErr(err, "save round %s", r.ID)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, mongoListOptions(limit))
	if err != nil {
		return nil, storeErr(err, "list rounds")
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr(err, "decode rounds")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observeDelete(ctx, "mongo", id, err) }()
	if err := checkID(id); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return storeErr(err, "delete round %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
