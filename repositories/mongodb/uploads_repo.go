package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "card-ledger/models"

	// External Packages
	"go.mongodb.org/mongo-driver/mongo"
)

type UploadsRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewUploadsRepository(client *mongo.Client) *UploadsRepository {
	return &UploadsRepository{client: client, database: "cardledger", collection: "uploads"}
}

// RecordUpload inserts one audit entry for a processed batch
func (r *UploadsRepository) RecordUpload(ctx context.Context, record models.UploadRecord) error {
	collection := r.client.Database(r.database).Collection(r.collection)
	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	return nil
}
