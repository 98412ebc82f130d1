package gallery

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/kozu/pkg/errors"
)

// CollectionName is the MongoDB collection holding gallery entries.
const CollectionName = "gallery"

// MongoStore stores entries in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// entryDoc is the stored form of an Entry. Seeds are kept as decimal
// strings because BSON has no unsigned 64-bit integer.
type entryDoc struct {
	ID        string    `bson:"_id"`
	Template  string    `bson:"template"`
	Seed      string    `bson:"seed"`
	Width     float64   `bson:"width"`
	Height    float64   `bson:"height"`
	PNG       []byte    `bson:"png,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongoStore connects to uri and uses the gallery collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if database == "" {
		database = "kozu"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	coll := client.Database(database).Collection(CollectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create gallery index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, e *Entry) error {
	doc := toDoc(e)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store gallery entry %s", e.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var doc entryDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load gallery entry %s", id)
	}
	return fromDoc(doc)
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(normalizeLimit(limit))).
		SetProjection(bson.M{"png": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list gallery")
	}
	defer cur.Close(ctx)

	var docs []entryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode gallery")
	}
	out := make([]*Entry, 0, len(docs))
	for _, doc := range docs {
		e, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete gallery entry %s", id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toDoc(e *Entry) entryDoc {
	return entryDoc{
		ID:        e.ID.String(),
		Template:  e.Template,
		Seed:      strconv.FormatUint(e.Seed, 10),
		Width:     e.Width,
		Height:    e.Height,
		PNG:       e.PNG,
		CreatedAt: e.CreatedAt,
	}
}

func fromDoc(doc entryDoc) (*Entry, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stored gallery id %q", doc.ID)
	}
	seed, err := strconv.ParseUint(doc.Seed, 10, 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stored seed %q", doc.Seed)
	}
	return &Entry{
		ID:        id,
		Template:  doc.Template,
		Seed:      seed,
		Width:     doc.Width,
		Height:    doc.Height,
		PNG:       doc.PNG,
		CreatedAt: doc.CreatedAt,
	}, nil
}

var _ Store = (*MongoStore)(nil)
