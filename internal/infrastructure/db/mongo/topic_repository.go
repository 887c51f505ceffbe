package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forohub/forum-api/internal/core/domain"
)

const topicsCollection = "topics"

type TopicRepository struct {
	coll *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{coll: db.Collection(topicsCollection)}
}

type topicDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Content        string             `bson:"content"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      *time.Time         `bson:"updated_at,omitempty"`
}

func (d topicDoc) toDomain() *domain.Topic {
	return &domain.Topic{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Content:        d.Content,
		AuthorID:       d.AuthorID,
		AuthorUsername: d.AuthorUsername,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new topic document and returns the topic with its id set.
func (r *TopicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := topicDoc{
		Title:          topic.Title,
		Content:        topic.Content,
		AuthorID:       topic.AuthorID,
		AuthorUsername: topic.AuthorUsername,
		CreatedAt:      topic.CreatedAt,
		UpdatedAt:      topic.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}

	created := *topic
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a topic by its hex id. A malformed id maps to
// domain.ErrTopicNotFound: the resource it names cannot exist.
func (r *TopicRepository) FindByID(ctx context.Context, id string) (*domain.Topic, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTopicNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc topicDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, fmt.Errorf("find topic: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns one page of topics sorted by creation time (insertion order)
// together with the total count. The _id tiebreak keeps the order stable for
// topics created within the same instant.
func (r *TopicRepository) List(ctx context.Context, page, size int) ([]*domain.Topic, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count topics: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page-1) * int64(size)).
		SetLimit(int64(size))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list topics: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []topicDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode topics: %w", err)
	}

	topics := make([]*domain.Topic, len(docs))
	for i, d := range docs {
		topics[i] = d.toDomain()
	}
	return topics, total, nil
}

// Update persists the mutable fields of an existing topic.
func (r *TopicRepository) Update(ctx context.Context, topic *domain.Topic) error {
	oid, err := primitive.ObjectIDFromHex(topic.ID)
	if err != nil {
		return domain.ErrTopicNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      topic.Title,
		"content":    topic.Content,
		"updated_at": topic.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}

// Delete removes a topic by id.
func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTopicNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by listing and author lookups.
func (r *TopicRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "author_username", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
