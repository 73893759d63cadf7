package service

import (
	"context"
	"errors"
	"testing"

	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakePositionStore struct {
	active        *model.IndependentPosition
	activeErr     error
	inserted      []*model.IndependentPosition
	insertErr     error
	deactivated   int64
	deactivateErr error
	byZone        []*model.IndependentPosition
}

func (store *fakePositionStore) Insert(_ context.Context, position *model.IndependentPosition) (*model.IndependentPosition, error) {
	if store.insertErr != nil {
		return nil, store.insertErr
	}
	created := *position
	created.ID = primitive.NewObjectID()
	store.inserted = append(store.inserted, &created)
	return &created, nil
}

func (store *fakePositionStore) FindActiveByEmployee(_ context.Context, _ primitive.ObjectID) (*model.IndependentPosition, error) {
	if store.activeErr != nil {
		return nil, store.activeErr
	}
	if store.active == nil {
		return nil, mongo.ErrNoDocuments
	}
	return store.active, nil
}

func (store *fakePositionStore) DeactivateByEmployee(_ context.Context, _ primitive.ObjectID) (int64, error) {
	if store.deactivateErr != nil {
		return 0, store.deactivateErr
	}
	count := store.deactivated
	store.active = nil
	return count, nil
}

func (store *fakePositionStore) ListActiveByZone(_ context.Context, _ core.Zone) ([]*model.IndependentPosition, error) {
	return store.byZone, nil
}

func newPositionFixture(store *fakePositionStore, employee *model.Employee) *PositionService {
	return NewPositionService(
		zap.NewNop(), &telemetry.Trace{},
		store, &fakeEmployeeReader{employee: employee},
	)
}

func freelanceEmployee() *model.Employee {
	return &model.Employee{ID: primitive.NewObjectID(), Nickname: "June", IsFreelance: true}
}

// ---- SetPosition ----

func TestSetPosition_FreelanceOnly(t *testing.T) {
	store := &fakePositionStore{}
	employee := freelanceEmployee()
	employee.IsFreelance = false
	service := newPositionFixture(store, employee)

	_, err := service.SetPosition(context.Background(), employee.ID, &dto.SetPositionDto{Zone: core.ZoneSoiBuakhao})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.FORBIDDEN {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatal("non-freelance must not create a position")
	}
}

func TestSetPosition_ReplacesPreviousMarker(t *testing.T) {
	employee := freelanceEmployee()
	store := &fakePositionStore{
		active:      &model.IndependentPosition{EmployeeID: employee.ID, Zone: core.ZoneWalkingStreet, IsActive: true},
		deactivated: 1,
	}
	service := newPositionFixture(store, employee)

	resp, err := service.SetPosition(context.Background(), employee.ID, &dto.SetPositionDto{
		Zone: core.ZoneLKMetro, GridRow: 3, GridCol: 7,
	})
	if err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if store.active != nil {
		t.Fatal("previous marker must be deactivated before the new insert")
	}
	if len(store.inserted) != 1 || !store.inserted[0].IsActive {
		t.Fatalf("expected one active insert, got %+v", store.inserted)
	}
	if resp.Zone != core.ZoneLKMetro || resp.GridRow != 3 || resp.GridCol != 7 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSetPosition_DeactivateFailureAborts(t *testing.T) {
	employee := freelanceEmployee()
	store := &fakePositionStore{deactivateErr: errors.New("write conflict")}
	service := newPositionFixture(store, employee)

	_, err := service.SetPosition(context.Background(), employee.ID, &dto.SetPositionDto{Zone: core.ZoneJomtien})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.DATABASE_ERROR {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatal("insert must not happen when deactivation fails")
	}
}

func TestSetPosition_ConcurrentDuplicateMapsToAlreadyActive(t *testing.T) {
	employee := freelanceEmployee()
	store := &fakePositionStore{
		insertErr: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
	}
	service := newPositionFixture(store, employee)

	_, err := service.SetPosition(context.Background(), employee.ID, &dto.SetPositionDto{Zone: core.ZoneBeachRoad})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.POSITION_ALREADY_ACTIVE {
		t.Fatalf("expected POSITION_ALREADY_ACTIVE, got %v", err)
	}
}

func TestSetPosition_UnknownEmployee(t *testing.T) {
	store := &fakePositionStore{}
	service := NewPositionService(
		zap.NewNop(), &telemetry.Trace{},
		store, &fakeEmployeeReader{err: mongo.ErrNoDocuments},
	)

	_, err := service.SetPosition(context.Background(), primitive.NewObjectID(), &dto.SetPositionDto{Zone: core.ZoneTreeTown})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

// ---- GetActivePosition / ClearPosition / ListPositionsByZone ----

func TestGetActivePosition_NoMarkerIsNotFound(t *testing.T) {
	service := newPositionFixture(&fakePositionStore{}, freelanceEmployee())

	_, err := service.GetActivePosition(context.Background(), primitive.NewObjectID())
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestClearPosition(t *testing.T) {
	employee := freelanceEmployee()
	store := &fakePositionStore{
		active:      &model.IndependentPosition{EmployeeID: employee.ID, Zone: core.ZoneWalkingStreet, IsActive: true},
		deactivated: 1,
	}
	service := newPositionFixture(store, employee)

	if err := service.ClearPosition(context.Background(), employee.ID); err != nil {
		t.Fatalf("ClearPosition: %v", err)
	}
	if store.active != nil {
		t.Fatal("marker must be gone after clear")
	}
}

func TestListPositionsByZone(t *testing.T) {
	store := &fakePositionStore{
		byZone: []*model.IndependentPosition{
			{ID: primitive.NewObjectID(), EmployeeID: primitive.NewObjectID(), Zone: core.ZoneSoiBuakhao, IsActive: true},
			{ID: primitive.NewObjectID(), EmployeeID: primitive.NewObjectID(), Zone: core.ZoneSoiBuakhao, IsActive: true},
		},
	}
	service := newPositionFixture(store, freelanceEmployee())

	positions, err := service.ListPositionsByZone(context.Background(), core.ZoneSoiBuakhao)
	if err != nil {
		t.Fatalf("ListPositionsByZone: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
}
