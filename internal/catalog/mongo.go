package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrRowGap = errors.New("catalog: mongo rows are not contiguous")

// seedBatchSize matches the batch used when uploading movies to MongoDB.
const seedBatchSize = 1000

// Document es la forma de una fila del catálogo en MongoDB. Row guarda la
// posición original para poder alinear con la matriz.
type Document struct {
	Row         int    `bson:"row"`
	Title       string `bson:"title"`
	Genres      string `bson:"listed_in"`
	ReleaseYear int    `bson:"release_year"`
	Type        string `bson:"type"`
	AgeGroup    string `bson:"age_group"`
	Director    string `bson:"director"`
	Cast        string `bson:"cast"`
	Rating      string `bson:"rating"`
	Duration    string `bson:"duration"`
	Country     string `bson:"country"`
	Description string `bson:"description"`
}

func toDocument(row int, e Entry) Document {
	return Document{
		Row:         row,
		Title:       e.Title,
		Genres:      e.Genres,
		ReleaseYear: e.ReleaseYear,
		Type:        e.Type,
		AgeGroup:    e.AgeGroup,
		Director:    e.Director,
		Cast:        e.Cast,
		Rating:      e.Rating,
		Duration:    e.Duration,
		Country:     e.Country,
		Description: e.Description,
	}
}

// entriesFromDocuments expects docs sorted by row and requires rows 0..n-1.
func entriesFromDocuments(docs []Document) ([]Entry, error) {
	if len(docs) == 0 {
		return nil, errors.New("catalog: mongo collection is empty")
	}
	entries := make([]Entry, len(docs))
	for i, d := range docs {
		if d.Row != i {
			return nil, fmt.Errorf("%w: expected row %d, found %d", ErrRowGap, i, d.Row)
		}
		entries[i] = normalize(Entry{
			Title:       d.Title,
			Genres:      d.Genres,
			ReleaseYear: d.ReleaseYear,
			Type:        d.Type,
			AgeGroup:    d.AgeGroup,
			Director:    d.Director,
			Cast:        d.Cast,
			Rating:      d.Rating,
			Duration:    d.Duration,
			Country:     d.Country,
			Description: d.Description,
		})
	}
	return entries, nil
}

// LoadMongo reads the whole catalog collection ordered by row.
func LoadMongo(ctx context.Context, coll *mongo.Collection) ([]Entry, error) {
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "row", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("consultando catálogo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decodificando catálogo: %w", err)
	}
	return entriesFromDocuments(docs)
}

// SeedMongo upserts one document per entry keyed by row and removes rows
// left over from a larger previous catalog. Returns the number of rows written.
func SeedMongo(ctx context.Context, coll *mongo.Collection, entries []Entry) (int, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "row", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return 0, fmt.Errorf("creando índice row: %w", err)
	}

	written := 0
	for start := 0; start < len(entries); start += seedBatchSize {
		end := start + seedBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		models := make([]mongo.WriteModel, 0, end-start)
		for i := start; i < end; i++ {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"row": i}).
				SetReplacement(toDocument(i, entries[i])).
				SetUpsert(true))
		}
		if _, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return written, fmt.Errorf("escribiendo lote %d-%d: %w", start, end, err)
		}
		written += end - start
	}

	if _, err := coll.DeleteMany(ctx, bson.M{"row": bson.M{"$gte": len(entries)}}); err != nil {
		return written, fmt.Errorf("borrando filas sobrantes: %w", err)
	}
	return written, nil
}
