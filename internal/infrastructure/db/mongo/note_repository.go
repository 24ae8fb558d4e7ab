package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

const noteCollection = "notes"

type MongoNoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *MongoNoteRepository {
	return &MongoNoteRepository{coll: db.Collection(noteCollection)}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Text      string             `bson:"text"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoNoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	doc := mongoNote{
		OwnerID:   note.OwnerID,
		Text:      note.Text,
		CreatedAt: note.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	// _id breaks same-second ties so the newest note lists first.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []domain.Note
	for cursor.Next(ctx) {
		var mn mongoNote
		if err := cursor.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, domain.Note{
			ID:        mn.ID.Hex(),
			OwnerID:   mn.OwnerID,
			Text:      mn.Text,
			CreatedAt: unixToTime(mn.CreatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}
