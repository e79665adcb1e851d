package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"
)

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// EnsureMongoIndexes создает индексы, на которые опираются запросы и
// уникальность email. Вызов идемпотентен.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(emailCollation),
		},
		{Keys: bson.D{{Key: "userType", Value: 1}, {Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индексов пользователей: %w", err)
	}

	_, err = db.Collection(appointmentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "specialistId", Value: 1}, {Key: "isBooked", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "isBooked", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "bulkId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индексов записей: %w", err)
	}

	return nil
}
