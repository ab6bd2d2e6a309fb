package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chartistry/pkg/cache"
	"github.com/matzehuels/chartistry/pkg/errors"
)

// Mongo reads documents from a MongoDB collection, one row per document,
// sorted by the x field.
type Mongo struct {
	URI        string
	Database   string
	Collection string
	// Filter is an extended JSON query document. Empty matches everything.
	Filter string
	// Limit caps the number of documents; zero means no cap.
	Limit int64
	X     string
	Y     []string
}

func (m *Mongo) Kind() string { return KindMongo }

// Describe hashes the URI so credentials never reach cache keys or logs.
func (m *Mongo) Describe() string {
	return fmt.Sprintf("%s|%s.%s|%s|%d|%s|%s", cache.Hash([]byte(m.URI))[:16],
		m.Database, m.Collection, m.Filter, m.Limit, m.X, strings.Join(m.Y, ","))
}

func (m *Mongo) Load(ctx context.Context) (*Table, error) {
	filter := bson.D{}
	if m.Filter != "" {
		if err := bson.UnmarshalExtJSON([]byte(m.Filter), true, &filter); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse mongo filter")
		}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "connect to mongo")
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	projection := bson.D{{Key: m.X, Value: 1}}
	for _, y := range m.Y {
		projection = append(projection, bson.E{Key: y, Value: 1})
	}
	opts := options.Find().
		SetSort(bson.D{{Key: m.X, Value: 1}}).
		SetProjection(projection)
	if m.Limit > 0 {
		opts.SetLimit(m.Limit)
	}

	cur, err := client.Database(m.Database).Collection(m.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "query %s.%s", m.Database, m.Collection)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "read %s.%s", m.Database, m.Collection)
	}
	return fromDocuments(docs, m.X, m.Y)
}

// fromDocuments converts decoded documents. Documents without an x value
// are skipped.
func fromDocuments(docs []bson.M, x string, y []string) (*Table, error) {
	b := newBuilder(y, "")
	for i, doc := range docs {
		xv, ok := doc[x]
		if !ok || xv == nil {
			continue
		}
		ys := make([]any, len(y))
		for j, name := range y {
			ys[j] = doc[name]
		}
		if err := b.addAny(bsonScalar(xv), ys); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "document %d", i)
		}
	}
	return b.table(), nil
}

// bsonScalar turns BSON dates into RFC 3339 strings, which the builder
// parses as timestamps.
func bsonScalar(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC().Format(time.RFC3339Nano)
	}
	return v
}
