package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamehall/account-system/internal/core/domain"
)

const settingsCollection = "settings"

// MongoSettingsRepository reads key/value configuration records persisted by
// external tooling. This service never writes them.
type MongoSettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{coll: db.Collection(settingsCollection)}
}

type settingDoc struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

func (r *MongoSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var doc settingDoc
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrSettingNotFound
		}
		return "", fmt.Errorf("find setting: %w", err)
	}
	return doc.Value, nil
}
