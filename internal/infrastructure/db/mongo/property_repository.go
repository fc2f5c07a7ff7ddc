package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentease/rentease/internal/core/domain"
)

const collectionProperties = "properties"

// PropertyRepository persists listings in the properties collection.
type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

type mongoProperty struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Type        string             `bson:"type"`
	Location    string             `bson:"location"`
	Price       string             `bson:"price"`
	Deposit     string             `bson:"deposit"`
	Description string             `bson:"description"`
	Beds        string             `bson:"beds"`
	Baths       string             `bson:"baths"`
	SqFt        string             `bson:"sq_ft"`
	Gender      string             `bson:"gender"`
	Furnishing  string             `bson:"furnishing"`
	Phone       string             `bson:"phone"`
	Amenities   []string           `bson:"amenities"`
	Images      []string           `bson:"images"`
	Verified    bool               `bson:"verified"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toDoc(p *domain.Property) mongoProperty {
	return mongoProperty{
		UserID:      p.UserID,
		Title:       p.Title,
		Type:        p.Type,
		Location:    p.Location,
		Price:       p.Price,
		Deposit:     p.Deposit,
		Description: p.Description,
		Beds:        p.Beds,
		Baths:       p.Baths,
		SqFt:        p.SqFt,
		Gender:      p.Gender,
		Furnishing:  p.Furnishing,
		Phone:       p.Phone,
		Amenities:   p.Amenities,
		Images:      p.Images,
		Verified:    p.Verified,
		CreatedAt:   p.CreatedAt,
	}
}

func (m mongoProperty) toDomain() *domain.Property {
	return &domain.Property{
		ID:          m.ID.Hex(),
		UserID:      m.UserID,
		Title:       m.Title,
		Type:        m.Type,
		Location:    m.Location,
		Price:       m.Price,
		Deposit:     m.Deposit,
		Description: m.Description,
		Beds:        m.Beds,
		Baths:       m.Baths,
		SqFt:        m.SqFt,
		Gender:      m.Gender,
		Furnishing:  m.Furnishing,
		Phone:       m.Phone,
		Amenities:   m.Amenities,
		Images:      m.Images,
		Verified:    m.Verified,
		CreatedAt:   m.CreatedAt,
	}
}

// ownerFilter builds the combined {_id, user_id} filter every mutation
// uses. A malformed id behaves like a miss, not an error, so callers see a
// uniform not-found.
func ownerFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDoc(p))
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PropertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findMany(ctx, bson.M{})
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	var m mongoProperty
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *PropertyRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findMany(ctx, bson.M{"user_id": userID})
}

func (r *PropertyRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var m mongoProperty
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// Update overwrites the mutable fields of the owned listing and returns
// the post-update document.
func (r *PropertyRepository) Update(ctx context.Context, id, userID string, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"type":        p.Type,
		"location":    p.Location,
		"price":       p.Price,
		"deposit":     p.Deposit,
		"description": p.Description,
		"beds":        p.Beds,
		"baths":       p.Baths,
		"sq_ft":       p.SqFt,
		"gender":      p.Gender,
		"furnishing":  p.Furnishing,
		"phone":       p.Phone,
		"amenities":   p.Amenities,
		"images":      p.Images,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoProperty
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// Delete removes the owned listing and returns the deleted document.
func (r *PropertyRepository) Delete(ctx context.Context, id, userID string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var m mongoProperty
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *PropertyRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Property, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	properties := make([]*domain.Property, 0)
	for cur.Next(ctx) {
		var m mongoProperty
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		properties = append(properties, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

// EnsureIndexes creates the indexes the repository queries rely on.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
