package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"rentify/database"
	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookings *mongo.Collection
	details  *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		bookings: db.Collection("bookings"),
		details:  db.Collection("booking_details"),
	}
	if err := repo.ensureIndexes(); err != nil {
		database.LogIndexError("bookings", err)
	}
	return repo
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking, details []models.BookingDetail) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}
	if len(details) == 0 {
		return nil
	}
	docs := make([]interface{}, len(details))
	for i := range details {
		docs[i] = details[i]
	}
	if _, err := r.details.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert booking details failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var b models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	res, err := r.bookings.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("update booking %s failed: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if _, err := r.details.DeleteMany(ctx, bson.M{"bookingId": id}); err != nil {
		return fmt.Errorf("delete booking details failed: %w", err)
	}
	if _, err := r.bookings.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) ListDetails(ctx context.Context, bookingID string) ([]models.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	cursor, err := r.details.Find(ctx, bson.M{"bookingId": bookingID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var details []models.BookingDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *MongoBookingRepo) ExistsActive(ctx context.Context, renterID, vehicleID string, start, end time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{
		"renterId":         renterID,
		"vehicleIds":       vehicleID,
		"timeBookingStart": start,
		"timeBookingEnd":   end,
		"status":           bson.M{"$in": models.ActiveBookingStatuses},
	}
	n, err := r.bookings.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("duplicate booking check failed: %w", err)
	}
	return n > 0, nil
}

func (r *MongoBookingRepo) ListByRenter(ctx context.Context, renterID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"renterId": renterID}, status)
}

func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string, status models.BookingStatus) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"providerId": providerID}, status)
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, status models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "timeBookingStart", Value: -1}})
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoBookingRepo) ListUnpaidCreatedBefore(ctx context.Context, before time.Time, limit int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	filter := bson.M{"status": models.BookingStatusUnpaid, "createdAt": bson.M{"$lt": before}}
	opts := options.Find().
		SetProjection(bson.M{"id": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "renterId", Value: 1}, {Key: "vehicleIds", Value: 1}, {Key: "timeBookingStart", Value: 1}, {Key: "timeBookingEnd", Value: 1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	detailIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	}
	if _, err := r.details.Indexes().CreateMany(ctx, detailIndexes); err != nil {
		return fmt.Errorf("failed to create booking detail indexes: %w", err)
	}
	return nil
}
