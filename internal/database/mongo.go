package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portforyou/internal/models"
)

const (
	defaultTimeout            = 5 * time.Second
	documentValidationFailure = 121
)

// ConnectMongoDB establishes a connection to MongoDB and returns the client.
func ConnectMongoDB(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	// Ping the database to verify connection.
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("connected to MongoDB")
	return client, nil
}

// GetUserCollection returns the MongoDB collection for users.
func GetUserCollection(client *mongo.Client, dbName string) *mongo.Collection {
	return client.Database(dbName).Collection("users")
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	col     *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewMongoStore wraps col. timeout bounds every individual store call.
func NewMongoStore(col *mongo.Collection, timeout time.Duration) *MongoStore {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MongoStore{col: col, timeout: timeout, now: time.Now}
}

// EnsureIndexes creates the unique email index and the reset token lookup index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "passwordResetToken", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// EnsureSchema installs the users collection validator, creating the
// collection if needed. Every insert and update is checked against it.
func (s *MongoStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	db := s.col.Database()
	err := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: s.col.Name()},
		{Key: "validator", Value: userValidator()},
		{Key: "validationLevel", Value: "moderate"},
	}).Err()
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceNotFound {
		err = db.CreateCollection(ctx, s.col.Name(), options.CreateCollection().
			SetValidator(userValidator()).
			SetValidationLevel("moderate"))
	}
	if err != nil {
		return fmt.Errorf("failed to apply user schema: %w", err)
	}
	return nil
}

const namespaceNotFound = 26

func userValidator() bson.M {
	visitor := bson.M{
		"bsonType": "object",
		"required": bson.A{"ip", "country", "browser", "device"},
		"properties": bson.M{
			"device": bson.M{"enum": bson.A{string(models.DeviceMobile), string(models.DeviceDesktop)}},
		},
	}
	template := bson.M{
		"bsonType": "object",
		"properties": bson.M{
			"analytics": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"visitors":    bson.M{"bsonType": "array", "items": visitor},
					"totalVisits": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				},
			},
		},
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"email", "username", "passwordHash"},
		"properties": bson.M{
			"email":        bson.M{"bsonType": "string", "minLength": 1},
			"username":     bson.M{"bsonType": "string", "minLength": 1},
			"passwordHash": bson.M{"bsonType": "string", "minLength": 1},
			"subscription": bson.M{"enum": bson.A{
				string(models.SubscriptionTrial), string(models.SubscriptionRegular),
				string(models.SubscriptionPremium), string(models.SubscriptionVIP),
			}},
			"arikTemplate": template,
			"novaTemplate": template,
		},
	}}
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) FindOne(ctx context.Context, filter Filter) (*models.User, error) {
	return s.findOne(ctx, filterToBSON(filter))
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) Find(ctx context.Context, filter Filter) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	cursor, err := s.col.Find(ctx, filterToBSON(filter), options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer cursor.Close(ctx)
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id string, update Update, opts UpdateOptions) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var user models.User
	err = s.col.FindOneAndUpdate(ctx, updateFilter(oid, update), s.updateToBSON(update), findOneAndUpdateOptions(opts)).Decode(&user)
	if err != nil {
		return nil, translateWriteError(err, "error updating user")
	}
	return &user, nil
}

// updateFilter targets the document by id plus the update's preconditions.
func updateFilter(oid primitive.ObjectID, u Update) bson.M {
	filter := bson.M{"_id": oid}
	for _, path := range u.Require {
		filter[path] = bson.M{"$exists": true}
	}
	for path, v := range u.Match {
		filter[path] = v
	}
	return filter
}

// findOneAndUpdateOptions never sets bypassDocumentValidation: that needs a
// privilege the readWrite role lacks.
func findOneAndUpdateOptions(opts UpdateOptions) *options.FindOneAndUpdateOptions {
	findOpts := options.FindOneAndUpdate()
	if opts.ReturnUpdated {
		findOpts.SetReturnDocument(options.After)
	}
	return findOpts
}

func (s *MongoStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return nil, translateWriteError(err, "error inserting user")
	}
	return user, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) updateToBSON(u Update) bson.M {
	set := bson.M{"updatedAt": s.now()}
	for path, v := range u.Set {
		set[path] = v
	}
	doc := bson.M{"$set": set}
	if len(u.Inc) > 0 {
		inc := bson.M{}
		for path, n := range u.Inc {
			inc[path] = n
		}
		doc["$inc"] = inc
	}
	if len(u.Push) > 0 {
		doc["$push"] = bson.M(u.Push)
	}
	if len(u.AddToSet) > 0 {
		doc["$addToSet"] = bson.M(u.AddToSet)
	}
	if len(u.Pull) > 0 {
		doc["$pull"] = bson.M(u.Pull)
	}
	if len(u.Unset) > 0 {
		unset := bson.M{}
		for _, path := range u.Unset {
			unset[path] = ""
		}
		doc["$unset"] = unset
	}
	return doc
}

func filterToBSON(f Filter) bson.M {
	m := bson.M{}
	for path, v := range f.Equal {
		m[path] = v
	}
	for path, t := range f.After {
		m[path] = bson.M{"$gt": t}
	}
	return m
}

var dupKeyIndex = regexp.MustCompile(`index: (\S+) dup key`)

func translateWriteError(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Field: duplicateField(err)}
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(documentValidationFailure) {
		return &ValidationError{Err: err}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// duplicateField recovers the field name from an index name such as
// "email_1" in a duplicate key error message.
func duplicateField(err error) string {
	m := dupKeyIndex.FindStringSubmatch(err.Error())
	if m == nil {
		return "key"
	}
	name := m[1]
	if i := strings.LastIndex(name, "_"); i > 0 {
		name = name[:i]
	}
	return name
}
