package repository

import (
	"context"
	"fmt"
	"time"

	"pattamap/internal/core"
	client "pattamap/internal/database/client"
	"pattamap/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *client.MongoClient) *UserRepository {
	repository := &UserRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionUsers)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.UserIndexes)
	return repository
}

func (repository *UserRepository) Create(contextValue context.Context, user *model.User) (_ *model.User, returnedError error) {
	nowUTC := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = nowUTC
	user.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, user)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	user.ID = objectID
	return user, nil
}

func (repository *UserRepository) GetByID(contextValue context.Context, userIdentifier primitive.ObjectID) (_ *model.User, returnedError error) {
	var user model.User
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": userIdentifier}).Decode(&user); returnedError != nil {
		return nil, returnedError
	}
	return &user, nil
}

func (repository *UserRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.User, returnedError error) {

	findOptions := options.Find().
		SetSkip(listOptions.Page * listOptions.Size).
		SetLimit(listOptions.Size).
		SetSort(bson.M{"createdAt": -1})

	cursor, findError := repository.collection.Find(contextValue, listOptions.Filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var users []*model.User
	if returnedError = cursor.All(contextValue, &users); returnedError != nil {
		return nil, returnedError
	}
	return users, nil
}

func (repository *UserRepository) UpdateByID(contextValue context.Context, userIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": userIdentifier}, withUpdatedAt(bson.M{"$set": update}))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

// ListAdminIDs 通知廣播用：取出所有管理員的 id
func (repository *UserRepository) ListAdminIDs(contextValue context.Context) (_ []primitive.ObjectID, returnedError error) {
	return repository.listIDs(contextValue, bson.M{"role": core.RoleAdmin, "status": core.StatusActive})
}

// ListFollowerIDs 追蹤者 fan-out 用：取出所有追蹤該員工的用戶 id
func (repository *UserRepository) ListFollowerIDs(contextValue context.Context, employeeIdentifier primitive.ObjectID) (_ []primitive.ObjectID, returnedError error) {
	return repository.listIDs(contextValue, bson.M{"followedEmployeeIds": employeeIdentifier, "status": core.StatusActive})
}

func (repository *UserRepository) listIDs(contextValue context.Context, filter bson.M) (_ []primitive.ObjectID, returnedError error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var identifiers []primitive.ObjectID
	for cursor.Next(contextValue) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if decodeError := cursor.Decode(&doc); decodeError != nil {
			return nil, decodeError
		}
		identifiers = append(identifiers, doc.ID)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return identifiers, nil
}
