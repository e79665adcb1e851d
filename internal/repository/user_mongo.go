package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/internal/domain"
)

var emailCollation = &options.Collation{Locale: "en", Strength: 2}

type UserMongoRepo struct {
	coll *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) *UserMongoRepo {
	return &UserMongoRepo{
		coll: db.Collection(usersCollection),
	}
}

func (r *UserMongoRepo) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

func (r *UserMongoRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return &user, nil
}

func (r *UserMongoRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserMongoRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(emailCollation))
}

func (r *UserMongoRepo) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error) {
	set := bson.M{}
	if dto.Name != "" {
		set["name"] = dto.Name
	}
	if dto.Phone != "" {
		set["phone"] = dto.Phone
	}
	if dto.ProfilePhoto != "" {
		set["profilePhoto"] = dto.ProfilePhoto
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return &user, nil
}

// specialistMongoFilter сопоставляет запрос как литеральную подстроку без учета регистра.
func specialistMongoFilter(filter domain.SpecialistFilter) bson.M {
	query := bson.M{"userType": domain.UserRoleSpecialist}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"specialization": pattern},
		}
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	return query
}

func (r *UserMongoRepo) SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, specialistMongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска специалистов: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ошибка декодирования специалистов: %w", err)
	}

	return users, nil
}
