package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

const accountCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique identity indexes. Email uniqueness is
// partial: only documents that actually carry an email participate.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$exists": true, "$gt": ""}}),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Phone        string             `bson:"phone"`
	Email        string             `bson:"email,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Status       string             `bson:"status"`
	IsActive     bool               `bson:"is_active"`
	Balance      float64            `bson:"balance"`
	RejectReason string             `bson:"reject_reason,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
	LastLogin    *time.Time         `bson:"last_login,omitempty"`
}

func (m *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:           m.ID.Hex(),
		Phone:        m.Phone,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Status:       domain.AccountStatus(m.Status),
		IsActive:     m.IsActive,
		Balance:      m.Balance,
		RejectReason: m.RejectReason,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
		LastLogin:    m.LastLogin,
	}
}

func (r *MongoAccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Phone:        a.Phone,
		Email:        a.Email,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Status:       string(a.Status),
		IsActive:     a.IsActive,
		Balance:      a.Balance,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	if domain.IsEmailIdentifier(identifier) {
		return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(identifier)})
	}
	return r.findOne(ctx, bson.M{"phone": identifier})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) List(ctx context.Context, filter ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*domain.Account
	for cursor.Next(ctx) {
		var ma mongoAccount
		if err := cursor.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *MongoAccountRepository) Stats(ctx context.Context, since time.Time) (*ports.AccountStats, error) {
	counts := []struct {
		dest   *int64
		filter bson.M
	}{
		{filter: bson.M{}},
		{filter: bson.M{"status": string(domain.StatusPending)}},
		{filter: bson.M{"status": string(domain.StatusApproved)}},
		{filter: bson.M{"status": string(domain.StatusRejected)}},
		{filter: bson.M{"is_active": true}},
		{filter: bson.M{"created_at": bson.M{"$gte": since}}},
	}

	stats := &ports.AccountStats{}
	counts[0].dest = &stats.Total
	counts[1].dest = &stats.Pending
	counts[2].dest = &stats.Approved
	counts[3].dest = &stats.Rejected
	counts[4].dest = &stats.Active
	counts[5].dest = &stats.RecentSignups

	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("count accounts: %w", err)
		}
		*c.dest = n
	}
	return stats, nil
}

func (r *MongoAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, reason string, balance *float64) (*domain.Account, error) {
	set := bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}

	switch status {
	case domain.StatusApproved:
		set["is_active"] = true
		if balance != nil {
			set["balance"] = *balance
		}
		update["$unset"] = bson.M{"reject_reason": ""}
	case domain.StatusRejected:
		if reason != "" {
			set["reject_reason"] = reason
		}
	}

	return r.findOneAndUpdate(ctx, id, update)
}

// ToggleActive flips is_active in a single pipeline update, so two
// concurrent toggles cannot interleave a read with a write.
func (r *MongoAccountRepository) ToggleActive(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"is_active":  bson.M{"$not": "$is_active"},
			"updated_at": time.Now().UTC(),
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ma mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("toggle active: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) SetBalance(ctx context.Context, id string, amount float64) (*domain.Account, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"balance":    amount,
		"updated_at": time.Now().UTC(),
	}})
}

func (r *MongoAccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func (r *MongoAccountRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ma mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return ma.toDomain(), nil
}
