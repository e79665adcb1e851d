package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/internal/domain"
)

type AppointmentMongoRepo struct {
	coll *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) *AppointmentMongoRepo {
	return &AppointmentMongoRepo{
		coll: db.Collection(appointmentsCollection),
	}
}

var appointmentSort = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "createdAt", Value: 1}}

func (r *AppointmentMongoRepo) Create(ctx context.Context, a *domain.Appointment) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("ошибка создания записи: %w", err)
	}
	return nil
}

// CreateBatch вставляет документы одним запросом. Транзакции требуют
// реплика-сета, поэтому при частичной вставке уже записанные документы удаляются.
func (r *AppointmentMongoRepo) CreateBatch(ctx context.Context, appointments []domain.Appointment) error {
	docs := make([]interface{}, len(appointments))
	ids := make([]string, len(appointments))
	for i := range appointments {
		docs[i] = appointments[i]
		ids[i] = appointments[i].ID
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		// Документ с совпавшим _id мог существовать до вставки, его не трогаем.
		cleanup := bson.M{"_id": bson.M{"$in": ids}}
		if len(appointments) > 0 && appointments[0].BulkID != "" {
			cleanup["bulkId"] = appointments[0].BulkID
		}
		if _, cleanupErr := r.coll.DeleteMany(ctx, cleanup); cleanupErr != nil {
			return fmt.Errorf("ошибка пакетного создания записей: %w (откат не удался: %v)", err, cleanupErr)
		}
		return fmt.Errorf("ошибка пакетного создания записей: %w", err)
	}

	return nil
}

func (r *AppointmentMongoRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return &a, nil
}

func appointmentMongoFilter(filter domain.AppointmentFilter) bson.M {
	query := bson.M{}
	if filter.SpecialistID != "" {
		query["specialistId"] = filter.SpecialistID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MemberName != "" {
		query["memberName"] = filter.MemberName
	}
	if filter.BulkID != "" {
		query["bulkId"] = filter.BulkID
	}
	if filter.IsBooked != nil {
		query["isBooked"] = *filter.IsBooked
	}
	return query
}

func (r *AppointmentMongoRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	cursor, err := r.coll.Find(ctx, appointmentMongoFilter(filter), options.Find().SetSort(appointmentSort))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := make([]domain.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("ошибка декодирования записей: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentMongoRepo) findOneAndUpdate(ctx context.Context, filter bson.M, update bson.M) (*domain.Appointment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a domain.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentMongoRepo) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	set := bson.M{}
	unset := bson.M{}

	optional := func(field string, value *string) {
		if value == nil {
			return
		}
		if *value == "" {
			unset[field] = ""
			return
		}
		set[field] = *value
	}
	optional("venue", dto.Venue)
	optional("phone", dto.Phone)
	if dto.Time != nil {
		set["time"] = *dto.Time
	}

	if len(set) == 0 && len(unset) == 0 {
		return r.GetByID(ctx, id)
	}

	set["updatedAt"] = time.Now()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	a, err := r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка обновления записи: %w", err)
	}

	return a, nil
}

func (r *AppointmentMongoRepo) Book(ctx context.Context, id, memberName string) (*domain.Appointment, error) {
	update := bson.M{"$set": bson.M{
		"memberName": memberName,
		"isBooked":   true,
		"updatedAt":  time.Now(),
	}}

	a, err := r.findOneAndUpdate(ctx, bson.M{"_id": id, "isBooked": false}, update)
	if err == nil {
		return a, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("ошибка бронирования записи: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return nil, domain.ErrAlreadyBooked
}

func (r *AppointmentMongoRepo) Delete(ctx context.Context, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка удаления записи: %w", err)
	}
	return &a, nil
}
