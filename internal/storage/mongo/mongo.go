// Package mongo implements storage.Storage on a MongoDB collection.
//
// New documents get an ObjectID _id and the API exposes its hex string.
// Incoming ids that parse as ObjectID hex are matched as ObjectIDs; any
// other id is matched as a plain string _id, so documents created with
// string keys by other clients remain addressable.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aanand-mishra/students-docstore-api/internal/config"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// document is the stored shape: the five student fields inlined next to _id.
type document struct {
	ID            any `bson:"_id"`
	types.Student `bson:",inline"`
}

// New connects to cfg.Storage.Mongo.URI and pings the primary so a bad URI
// fails at startup rather than on the first request.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	mcfg := cfg.Storage.Mongo

	connectCtx, cancel := context.WithTimeout(ctx, mcfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx,
		options.Client().ApplyURI(mcfg.URI).SetConnectTimeout(mcfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo.New: connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.New: ping: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(mcfg.Database).Collection(cfg.Storage.Collection),
	}, nil
}

func (m *Mongo) CreateStudent(ctx context.Context, student types.Student) (string, error) {
	id := primitive.NewObjectID()

	if _, err := m.collection.InsertOne(ctx, document{ID: id, Student: student}); err != nil {
		return "", fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return id.Hex(), nil
}

func (m *Mongo) GetStudentByID(ctx context.Context, id string) (types.StudentRecord, error) {
	var doc document

	err := m.collection.FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.StudentRecord{}, fmt.Errorf("GetStudentByID %q: %w", id, storage.ErrNotFound)
		}
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID: find: %w", err)
	}

	return doc.record(), nil
}

func (m *Mongo) GetStudents(ctx context.Context) ([]types.StudentRecord, error) {
	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("GetStudents: find: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("GetStudents: decode: %w", err)
	}

	students := make([]types.StudentRecord, 0, len(docs))
	for _, doc := range docs {
		students = append(students, doc.record())
	}
	return students, nil
}

// ReplaceStudentByID swaps the whole document body. With upsert enabled a
// missing id is inserted, taking its _id from the equality filter.
func (m *Mongo) ReplaceStudentByID(ctx context.Context, id string, student types.Student) error {
	_, err := m.collection.ReplaceOne(ctx, idFilter(id), student, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ReplaceStudentByID: replace: %w", err)
	}
	return nil
}

func (m *Mongo) DeleteStudentByID(ctx context.Context, id string) error {
	if _, err := m.collection.DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("DeleteStudentByID: delete: %w", err)
	}
	return nil
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func (d document) record() types.StudentRecord {
	return types.StudentRecord{ID: formatID(d.ID), Student: d.Student}
}

func formatID(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
