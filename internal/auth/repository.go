package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("ga_users")}
}

func (r *UserRepository) Collection() *mongo.Collection {
	return r.collection
}

// FindByEmail looks a user up by canonical (lowercased) email. Returns
// (nil, nil) when no user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the user. The unique index on email is the backstop for
// concurrent signups with the same address; the duplicate-key error from the
// second writer surfaces as ErrEmailTaken.
func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// RecordLogin bumps the login counter and stamps the login time in one
// atomic update so concurrent logins from multiple tabs never lose a count.
func (r *UserRepository) RecordLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"login_count": 1},
		"$set": bson.M{"last_login_at": time.Now()},
	})
	return err
}

func (r *UserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"reset_token_hash":   tokenHash,
			"reset_token_expiry": expiry,
		},
	})
	return err
}

// ConsumeResetToken replaces the password hash if and only if the stored
// reset hash matches and has not expired, clearing the reset fields in the
// same update so the credential is single use.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, email, tokenHash, passwordHash string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{
		"email":              email,
		"reset_token_hash":   tokenHash,
		"reset_token_expiry": bson.M{"$gt": time.Now()},
	}, bson.M{
		"$set":   bson.M{"password_hash": passwordHash},
		"$unset": bson.M{"reset_token_hash": "", "reset_token_expiry": ""},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// UpdateDisplayFields propagates profile edits that also live on the durable
// record. Role and email are deliberately not updatable through this path.
func (r *UserRepository) UpdateDisplayFields(ctx context.Context, id primitive.ObjectID, name, phone, studentID string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"name":       name,
			"phone":      phone,
			"student_id": studentID,
		},
	})
	return err
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*User, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
