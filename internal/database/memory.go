package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portforyou/internal/models"
)

// MemoryStore is an in-process Store with the same update semantics as
// MongoStore. Documents are kept BSON-encoded so every read returns a copy.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[primitive.ObjectID][]byte
	emails map[string]primitive.ObjectID // unique index on email
	now    func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[primitive.ObjectID][]byte),
		emails: make(map[string]primitive.ObjectID),
		now:    time.Now,
	}
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return decodeUser(raw)
}

func (s *MemoryStore) FindOne(ctx context.Context, filter Filter) (*models.User, error) {
	users, err := s.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (s *MemoryStore) Find(_ context.Context, filter Filter) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]primitive.ObjectID, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })

	users := []models.User{}
	for _, id := range ids {
		raw := s.docs[id]
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		if !matches(doc, filter) {
			continue
		}
		u, err := decodeUser(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, update Update, opts UpdateOptions) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := s.docs[oid]
	if !ok {
		return nil, ErrNotFound
	}
	doc, err := decodeDocument(before)
	if err != nil {
		return nil, err
	}
	for _, path := range update.Require {
		if _, ok := lookup(doc, path); !ok {
			return nil, ErrNotFound
		}
	}
	if !matches(doc, Filter{Equal: update.Match}) {
		return nil, ErrNotFound
	}

	if err := apply(doc, update); err != nil {
		return nil, err
	}
	doc["updatedAt"] = s.now()

	after, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	updated, err := decodeUser(after)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	if opts.Validate {
		if err := updated.Validate(); err != nil {
			return nil, &ValidationError{Err: err}
		}
	}
	if owner, taken := s.emails[updated.Email]; taken && owner != oid {
		return nil, &DuplicateKeyError{Field: "email"}
	}

	previous, err := decodeUser(before)
	if err != nil {
		return nil, err
	}
	delete(s.emails, previous.Email)
	s.emails[updated.Email] = oid
	s.docs[oid] = after

	if opts.ReturnUpdated {
		return updated, nil
	}
	return previous, nil
}

func (s *MemoryStore) Insert(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return nil, &DuplicateKeyError{Field: "email"}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, exists := s.docs[user.ID]; exists {
		return nil, &DuplicateKeyError{Field: "_id"}
	}
	raw, err := bson.Marshal(user)
	if err != nil {
		return nil, err
	}
	stored, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	s.docs[user.ID] = raw
	s.emails[user.Email] = user.ID
	return stored, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.docs[oid]
	if !ok {
		return false, nil
	}
	if u, err := decodeUser(raw); err == nil {
		delete(s.emails, u.Email)
	}
	delete(s.docs, oid)
	return true, nil
}

func decodeUser(raw []byte) (*models.User, error) {
	var u models.User
	if err := bson.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
