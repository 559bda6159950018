package vectordb

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ragtext/ragtext/pkg/config"
	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/types"
)

// Named vectors stored per point
const (
	DenseVectorName  = "dense_vector"
	SparseVectorName = "sparse_vector"
)

// QdrantStore implements VectorStore backed by Qdrant over gRPC
type QdrantStore struct {
	*BaseVectorStore
	config *config.QdrantConfig
	conn   *grpc.ClientConn
}

// NewQdrantStore creates a new Qdrant-backed vector store
func NewQdrantStore(cfg *config.QdrantConfig) (*QdrantStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigError("qdrant config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, errors.NewConfigError("qdrant host is required")
	}
	if cfg.Port <= 0 {
		return nil, errors.NewConfigError("qdrant port must be positive")
	}

	return &QdrantStore{
		BaseVectorStore: NewBaseVectorStore(),
		config:          cfg,
	}, nil
}

// Connect establishes the gRPC connection to Qdrant with retry
func (q *QdrantStore) Connect(ctx context.Context) error {
	q.SetConnectionStatus(ConnectionStatusConnecting)

	address := fmt.Sprintf("%s:%d", q.config.Host, q.config.Port)
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	operation := func() error {
		dialCtx, cancel := context.WithTimeout(ctx, q.config.ConnectionTimeout)
		defer cancel()

		conn, err := grpc.DialContext(dialCtx, address, opts...)
		if err != nil {
			return fmt.Errorf("failed to connect to qdrant at %s: %w", address, err)
		}
		q.conn = conn
		return nil
	}

	retryConfig := backoff.NewExponentialBackOff()
	retryConfig.MaxElapsedTime = time.Duration(q.config.MaxRetries) * q.config.RetryInterval

	if err := backoff.Retry(operation, backoff.WithContext(retryConfig, ctx)); err != nil {
		q.SetConnectionStatus(ConnectionStatusError)
		return errors.NewVectorDBError("failed to connect to qdrant after retries", err)
	}

	q.SetConnectionStatus(ConnectionStatusConnected)
	return nil
}

// Disconnect closes the connection to Qdrant
func (q *QdrantStore) Disconnect(ctx context.Context) error {
	if q.conn != nil {
		err := q.conn.Close()
		q.conn = nil
		q.SetConnectionStatus(ConnectionStatusDisconnected)
		return err
	}
	return nil
}

// HealthCheck verifies the Qdrant connection by listing collections
func (q *QdrantStore) HealthCheck(ctx context.Context) error {
	if !q.IsConnected() {
		return errors.NewVectorDBError("not connected to qdrant", nil)
	}

	collectionsClient := qdrant.NewCollectionsClient(q.conn)
	if _, err := collectionsClient.List(ctx, &qdrant.ListCollectionsRequest{}); err != nil {
		q.SetConnectionStatus(ConnectionStatusError)
		return errors.NewVectorDBError("qdrant health check failed", err)
	}

	q.SetLastHealthCheck(time.Now())
	return nil
}

// CollectionExists checks whether a collection exists
func (q *QdrantStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	collectionsClient := qdrant.NewCollectionsClient(q.conn)
	resp, err := collectionsClient.CollectionExists(ctx, &qdrant.CollectionExistsRequest{
		CollectionName: name,
	})
	if err != nil {
		return false, errors.NewVectorDBError("failed to check collection existence", err)
	}
	return resp.Result.Exists, nil
}

// EnsureCollection creates the collection with named dense and sparse
// vector configs when it does not already exist
func (q *QdrantStore) EnsureCollection(ctx context.Context, name string, denseDimension int) error {
	exists, err := q.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_ParamsMap{
				ParamsMap: &qdrant.VectorParamsMap{
					Map: map[string]*qdrant.VectorParams{
						DenseVectorName: {
							Size:     uint64(denseDimension),
							Distance: qdrant.Distance_Cosine,
						},
					},
				},
			},
		},
		SparseVectorsConfig: &qdrant.SparseVectorConfig{
			Map: map[string]*qdrant.SparseVectorParams{
				SparseVectorName: {},
			},
		},
	}

	collectionsClient := qdrant.NewCollectionsClient(q.conn)
	if _, err := collectionsClient.Create(ctx, req); err != nil {
		return errors.NewVectorDBError(
			fmt.Sprintf("failed to create collection %s", name), err)
	}
	return nil
}

// Upsert inserts or replaces items, writing whichever named vectors each
// item carries
func (q *QdrantStore) Upsert(ctx context.Context, collection string, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(items))
	for _, item := range items {
		vectors := make(map[string]*qdrant.Vector)
		if item.HasDense() {
			vectors[DenseVectorName] = &qdrant.Vector{Data: item.Dense}
		}
		if item.HasSparse() {
			vectors[SparseVectorName] = &qdrant.Vector{
				Data:    item.Sparse.Values,
				Indices: &qdrant.SparseIndices{Data: item.Sparse.Indices},
			}
		}
		if len(vectors) == 0 {
			continue
		}

		point := &qdrant.PointStruct{
			Id: &qdrant.PointId{
				PointIdOptions: &qdrant.PointId_Uuid{Uuid: item.ID},
			},
			Vectors: &qdrant.Vectors{
				VectorsOptions: &qdrant.Vectors_Vectors{
					Vectors: &qdrant.NamedVectors{Vectors: vectors},
				},
			},
		}

		if item.Payload != nil {
			payload := make(map[string]*qdrant.Value, len(item.Payload))
			for key, value := range item.Payload {
				payload[key] = convertToPayloadValue(value)
			}
			point.Payload = payload
		}

		points = append(points, point)
	}

	pointsClient := qdrant.NewPointsClient(q.conn)
	if _, err := pointsClient.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	}); err != nil {
		return errors.NewVectorDBError("failed to upsert points", err)
	}
	return nil
}

// Search runs a similarity query. When both dense and sparse vectors are
// present the two searches run as prefetches fused with reciprocal rank
// fusion; otherwise the single available vector is queried directly.
func (q *QdrantStore) Search(ctx context.Context, collection string, query SearchQuery) ([]types.VectorSearchResult, error) {
	limit := uint64(query.Limit)
	if limit == 0 {
		limit = 5
	}

	hasDense := len(query.Dense) > 0
	hasSparse := !query.Sparse.IsEmpty()
	if !hasDense && !hasSparse {
		return nil, errors.NewVectorDBError("search query carries no vectors", nil)
	}

	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Limit:          &limit,
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	}

	denseName := DenseVectorName
	sparseName := SparseVectorName

	switch {
	case hasDense && hasSparse:
		prefetchLimit := limit * 2
		req.Prefetch = []*qdrant.PrefetchQuery{
			{
				Query: denseQuery(query.Dense),
				Using: &denseName,
				Limit: &prefetchLimit,
			},
			{
				Query: sparseQuery(query.Sparse),
				Using: &sparseName,
				Limit: &prefetchLimit,
			},
		}
		req.Query = &qdrant.Query{
			Variant: &qdrant.Query_Fusion{Fusion: qdrant.Fusion_RRF},
		}
	case hasDense:
		req.Query = denseQuery(query.Dense)
		req.Using = &denseName
	default:
		req.Query = sparseQuery(query.Sparse)
		req.Using = &sparseName
	}

	pointsClient := qdrant.NewPointsClient(q.conn)
	resp, err := pointsClient.Query(ctx, req)
	if err != nil {
		return nil, errors.NewVectorDBError("failed to query points", err)
	}

	results := make([]types.VectorSearchResult, len(resp.Result))
	for i, point := range resp.Result {
		results[i] = convertScoredPoint(point)
	}
	return results, nil
}

// Count returns the exact number of points in the collection
func (q *QdrantStore) Count(ctx context.Context, collection string) (int64, error) {
	exact := true
	pointsClient := qdrant.NewPointsClient(q.conn)
	resp, err := pointsClient.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, errors.NewVectorDBError("failed to count points", err)
	}
	return int64(resp.Result.Count), nil
}

func denseQuery(vector types.EmbeddingVector) *qdrant.Query {
	return &qdrant.Query{
		Variant: &qdrant.Query_Nearest{
			Nearest: &qdrant.VectorInput{
				Variant: &qdrant.VectorInput_Dense{
					Dense: &qdrant.DenseVector{Data: vector},
				},
			},
		},
	}
}

func sparseQuery(vector types.SparseVector) *qdrant.Query {
	return &qdrant.Query{
		Variant: &qdrant.Query_Nearest{
			Nearest: &qdrant.VectorInput{
				Variant: &qdrant.VectorInput_Sparse{
					Sparse: &qdrant.SparseVector{
						Values:  vector.Values,
						Indices: vector.Indices,
					},
				},
			},
		},
	}
}

func convertScoredPoint(point *qdrant.ScoredPoint) types.VectorSearchResult {
	id := point.Id.GetUuid()
	if id == "" {
		id = fmt.Sprintf("%d", point.Id.GetNum())
	}

	result := types.VectorSearchResult{
		ID:    id,
		Score: point.Score,
	}

	if point.Payload != nil {
		result.Payload = make(map[string]interface{}, len(point.Payload))
		for key, value := range point.Payload {
			result.Payload[key] = convertPayloadValue(value)
		}
	}
	return result
}

func convertPayloadValue(value *qdrant.Value) interface{} {
	switch v := value.Kind.(type) {
	case *qdrant.Value_StringValue:
		return v.StringValue
	case *qdrant.Value_IntegerValue:
		return v.IntegerValue
	case *qdrant.Value_DoubleValue:
		return v.DoubleValue
	case *qdrant.Value_BoolValue:
		return v.BoolValue
	case *qdrant.Value_ListValue:
		result := make([]interface{}, len(v.ListValue.Values))
		for i, val := range v.ListValue.Values {
			result[i] = convertPayloadValue(val)
		}
		return result
	case *qdrant.Value_StructValue:
		result := make(map[string]interface{})
		for key, val := range v.StructValue.Fields {
			result[key] = convertPayloadValue(val)
		}
		return result
	default:
		return nil
	}
}

func convertToPayloadValue(value interface{}) *qdrant.Value {
	switch v := value.(type) {
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: v}}
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(v)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: v}}
	case float32:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: float64(v)}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: v}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: v}}
	case []interface{}:
		values := make([]*qdrant.Value, len(v))
		for i, val := range v {
			values[i] = convertToPayloadValue(val)
		}
		return &qdrant.Value{Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: values}}}
	case map[string]interface{}:
		fields := make(map[string]*qdrant.Value)
		for key, val := range v {
			fields[key] = convertToPayloadValue(val)
		}
		return &qdrant.Value{Kind: &qdrant.Value_StructValue{StructValue: &qdrant.Struct{Fields: fields}}}
	default:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: fmt.Sprintf("%v", v)}}
	}
}
