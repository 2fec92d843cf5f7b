// ABOUTME: RediSearch-backed vector index with HNSW cosine k-NN over JSON documents
// ABOUTME: FT.CREATE/FT.SEARCH adapter; server reply shapes are mapped to contract errors here
package index

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/minwoo/ragserve/internal/log"
	"github.com/minwoo/ragserve/internal/models"
)

// RedisStore implements Store on Redis Stack. Each entry is a JSON
// document {text, vector} under a DocPrefix key; the search index is an
// HNSW graph over the vector field with cosine distance.
type RedisStore struct {
	client redis.UniversalClient
	logger log.Logger

	mu      sync.Mutex
	schemas map[string]redisSchema
}

type redisSchema struct {
	dimension int
	metric    Metric
}

type redisDoc struct {
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// NewRedisStore creates a RedisStore on an established client.
func NewRedisStore(client redis.UniversalClient, logger log.Logger) *RedisStore {
	if logger == nil {
		logger = log.NewNop()
	}
	return &RedisStore{
		client:  client,
		logger:  logger,
		schemas: make(map[string]redisSchema),
	}
}

// Create issues FT.CREATE for the named index. An "Index already exists"
// reply is success per the contract.
func (s *RedisStore) Create(ctx context.Context, name string, dimension int, metric Metric) error {
	s.rememberSchema(name, dimension, metric)

	err := s.client.FTCreate(ctx, name,
		&redis.FTCreateOptions{
			OnJSON: true,
			Prefix: []interface{}{DocPrefix},
		},
		&redis.FieldSchema{
			FieldName: "$.text",
			As:        "text",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "$.vector",
			As:        "vector",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Type:           "FLOAT32",
					Dim:            dimension,
					DistanceMetric: string(metric),
				},
			},
		},
	).Err()
	if err != nil {
		// RediSearch signals idempotent creation only through this reply.
		if strings.Contains(err.Error(), "Index already exists") {
			s.logger.Debug("vector index already exists", "index", name)
			return nil
		}
		return fmt.Errorf("creating index %s: %w", name, err)
	}

	s.logger.Info("vector index created", "index", name, "dimension", dimension, "metric", string(metric))
	return nil
}

// Insert stores the entry as a JSON document. The dimension check happens
// client-side so a mismatch surfaces as *DimensionError instead of a
// silently unindexed document.
func (s *RedisStore) Insert(ctx context.Context, name, key string, vector []float32, payload string) error {
	if schema, ok := s.schemaFor(name); ok && len(vector) != schema.dimension {
		return &DimensionError{Want: schema.dimension, Got: len(vector)}
	}

	data, err := json.Marshal(redisDoc{Text: payload, Vector: vector})
	if err != nil {
		return fmt.Errorf("marshaling entry %s: %w", key, err)
	}
	if err := s.client.JSONSet(ctx, key, "$", string(data)).Err(); err != nil {
		return fmt.Errorf("storing entry %s: %w", key, err)
	}
	return nil
}

// Search runs a KNN query and maps the ascending-distance ranking to
// descending similarity scores.
func (s *RedisStore) Search(ctx context.Context, name string, vector []float32, k int) ([]models.SearchResult, error) {
	query := fmt.Sprintf("*=>[KNN %d @vector $vec AS score]", k)

	res, err := s.client.FTSearchWithArgs(ctx, name, query, &redis.FTSearchOptions{
		Params:         map[string]interface{}{"vec": encodeVector(vector)},
		SortBy:         []redis.FTSearchSortBy{{FieldName: "score", Asc: true}},
		Return:         []redis.FTSearchReturn{{FieldName: "text"}, {FieldName: "score"}},
		DialectVersion: 2,
		Limit:          k,
	}).Result()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no such index") {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, name)
		}
		return nil, fmt.Errorf("searching index %s: %w", name, err)
	}

	results := make([]models.SearchResult, 0, len(res.Docs))
	for _, doc := range res.Docs {
		distance, err := strconv.ParseFloat(doc.Fields["score"], 64)
		if err != nil {
			s.logger.Warn("unparseable score in search result", "key", doc.ID, "score", doc.Fields["score"])
			continue
		}
		results = append(results, models.SearchResult{
			Key:   doc.ID,
			Text:  doc.Fields["text"],
			Score: 1 - distance, // cosine distance → similarity
		})
	}
	return results, nil
}

// Reset drops the index if it exists, purges all entry documents, and
// recreates the index with the schema it was created with.
func (s *RedisStore) Reset(ctx context.Context, name string) error {
	names, err := s.client.FT_List(ctx).Result()
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}
	for _, n := range names {
		if n != name {
			continue
		}
		if err := s.client.FTDropIndex(ctx, name).Err(); err != nil {
			return fmt.Errorf("dropping index %s: %w", name, err)
		}
		break
	}

	if err := s.DeleteByPrefix(ctx, DocPrefix); err != nil {
		return err
	}

	schema, ok := s.schemaFor(name)
	if !ok {
		return fmt.Errorf("no schema known for index %s", name)
	}

	if err := s.Create(ctx, name, schema.dimension, schema.metric); err != nil {
		return err
	}
	s.logger.Info("vector index reset", "index", name)
	return nil
}

// DeleteByPrefix removes all keys matching prefix via cursor iteration.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 256).Result()
		if err != nil {
			return fmt.Errorf("scanning keys with prefix %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("deleting %d keys: %w", len(keys), err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisStore) rememberSchema(name string, dimension int, metric Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schemas[name]; !ok {
		s.schemas[name] = redisSchema{dimension: dimension, metric: metric}
	}
}

func (s *RedisStore) schemaFor(name string) (redisSchema, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schema, ok := s.schemas[name]
	return schema, ok
}

// encodeVector marshals the vector as the little-endian FLOAT32 blob the
// KNN query parameter expects.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
