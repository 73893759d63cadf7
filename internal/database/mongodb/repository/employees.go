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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(mongoClient *client.MongoClient) *EmployeeRepository {
	repository := &EmployeeRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBPattaMap)).Collection(string(core.MongoCollectionEmployees)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.EmployeeIndexes)
	return repository
}

func (repository *EmployeeRepository) Create(contextValue context.Context, employee *model.Employee) (_ *model.Employee, returnedError error) {
	nowUTC := time.Now().UTC()
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	employee.CreatedAt = nowUTC
	employee.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, employee)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	employee.ID = objectID
	return employee, nil
}

func (repository *EmployeeRepository) GetByID(contextValue context.Context, employeeIdentifier primitive.ObjectID) (_ *model.Employee, returnedError error) {
	var employee model.Employee
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": employeeIdentifier}).Decode(&employee); returnedError != nil {
		return nil, returnedError
	}
	return &employee, nil
}

func (repository *EmployeeRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.Employee, returnedError error) {

	findOptions := options.Find().
		SetSkip(listOptions.Page * listOptions.Size).
		SetLimit(listOptions.Size).
		SetSort(bson.M{"createdAt": -1})

	cursor, findError := repository.collection.Find(contextValue, listOptions.Filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var employees []*model.Employee
	if returnedError = cursor.All(contextValue, &employees); returnedError != nil {
		return nil, returnedError
	}
	return employees, nil
}

func (repository *EmployeeRepository) UpdateByID(contextValue context.Context, employeeIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": employeeIdentifier}, withUpdatedAt(bson.M{"$set": update}))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *EmployeeRepository) CountByFilter(contextValue context.Context, filter bson.M) (returnedCount int64, returnedError error) {
	return repository.collection.CountDocuments(contextValue, filter)
}
