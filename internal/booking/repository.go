package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{collection: db.Collection("bookings")}
}

func (r *BookingRepository) Create(ctx context.Context, booking *Booking) error {
	_, err := r.collection.InsertOne(ctx, booking)
	return err
}

func (r *BookingRepository) ListByIdentity(ctx context.Context, identityKey string) ([]*Booking, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"identity_id": identityKey}, opts)
	if err != nil {
		return nil, err
	}
	var bookings []*Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListRecent returns the newest bookings across all riders, for the admin
// dashboard.
func (r *BookingRepository) ListRecent(ctx context.Context, limit int64) ([]*Booking, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var bookings []*Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// Fares returns every confirmed fare amount, for the admin analytics.
func (r *BookingRepository) Fares(ctx context.Context) ([]float64, error) {
	opts := options.Find().SetProjection(bson.M{"fare": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Fare float64 `bson:"fare"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	fares := make([]float64, 0, len(docs))
	for _, d := range docs {
		fares = append(fares, d.Fare)
	}
	return fares, nil
}
