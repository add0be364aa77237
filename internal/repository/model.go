package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
)

var ErrModelNotFound = errors.New("model not found")

const modelKeyPrefix = "model:"

// ModelSnapshot is a trained model together with the evaluation of its test split.
type ModelSnapshot struct {
	Model           naivebayes.Model           `json:"model"`
	ConfusionMatrix naivebayes.ConfusionMatrix `json:"confusion_matrix"`
}

type ModelRepository interface {
	Save(ctx context.Context, key string, snapshot ModelSnapshot) error
	Get(ctx context.Context, key string) (ModelSnapshot, error)
	Delete(ctx context.Context, key string) error
}

type dbModel struct {
	client *redis.Client
	ttl    time.Duration
}

// NewModelRepository stores snapshots for ttl. A zero ttl keeps them forever.
func NewModelRepository(client *redis.Client, ttl time.Duration) ModelRepository {
	return &dbModel{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbModel) Save(ctx context.Context, key string, snapshot ModelSnapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal model: %w", err)
	}

	if err = that.client.Set(ctx, modelKeyPrefix+key, snapshotJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}

	return nil
}

func (that *dbModel) Get(ctx context.Context, key string) (ModelSnapshot, error) {
	response, err := that.client.Get(ctx, modelKeyPrefix+key).Bytes()

	if errors.Is(err, redis.Nil) {
		return ModelSnapshot{}, ErrModelNotFound
	}

	if err != nil {
		return ModelSnapshot{}, fmt.Errorf("failed to get model: %w", err)
	}

	var snapshot ModelSnapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return ModelSnapshot{}, fmt.Errorf("failed to unmarshal model: %w", err)
	}

	return snapshot, nil
}

func (that *dbModel) Delete(ctx context.Context, key string) error {
	if err := that.client.Del(ctx, modelKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}

	return nil
}
