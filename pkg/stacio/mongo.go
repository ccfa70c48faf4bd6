package stacio

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stacforge/gostac/pkg/errors"
)

// Mongo stores STAC documents in a MongoDB collection, one document per
// href. It lets a catalog tree be "saved" into a database instead of a
// directory: hrefs stay the graph's addressing scheme, Mongo is just the
// byte store behind them.
type Mongo struct {
	coll *mongo.Collection
}

// mongoDoc is the stored shape: the href as unique key plus the raw JSON
// text of the STAC document.
type mongoDoc struct {
	Href string `bson:"_id"`
	Text string `bson:"text"`
}

// NewMongo creates a collaborator backed by the given collection.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

// Connect dials uri and returns a collaborator over db/collection, plus a
// disconnect function for shutdown.
func Connect(ctx context.Context, uri, db, collection string) (*Mongo, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "connect %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "ping %s", uri)
	}
	return NewMongo(client.Database(db).Collection(collection)), client.Disconnect, nil
}

// ReadText returns the stored text for href.
func (m *Mongo) ReadText(ctx context.Context, href string) (string, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": href}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", errors.New(errors.ErrCodeNotFound, "no document stored for %s", href)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", href)
	}
	return doc.Text, nil
}

// WriteText upserts the document for href.
func (m *Mongo) WriteText(ctx context.Context, href string, text string) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": href},
		mongoDoc{Href: href, Text: text},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", href)
	}
	return nil
}
