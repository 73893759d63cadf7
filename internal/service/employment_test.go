package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- fakes ----

type fakeEmploymentStore struct {
	current        []*model.Employment
	inserted       []*model.Employment
	deactivated    int64
	deactivateErr  error
	insertErrAfter int // 第 N 筆 insert 開始失敗；0 表示不失敗
}

func (store *fakeEmploymentStore) Insert(_ context.Context, employment *model.Employment) (*model.Employment, error) {
	if store.insertErrAfter > 0 && len(store.inserted)+1 >= store.insertErrAfter {
		return nil, errors.New("write concern error")
	}
	created := *employment
	created.ID = primitive.NewObjectID()
	created.CreatedAt = time.Now().UTC()
	store.inserted = append(store.inserted, &created)
	return &created, nil
}

func (store *fakeEmploymentStore) FindCurrentByEmployee(_ context.Context, _ primitive.ObjectID) ([]*model.Employment, error) {
	return store.current, nil
}

func (store *fakeEmploymentStore) DeactivateCurrentByEmployee(_ context.Context, _ primitive.ObjectID, _ time.Time) (int64, error) {
	if store.deactivateErr != nil {
		return 0, store.deactivateErr
	}
	count := int64(len(store.current))
	store.deactivated += count
	store.current = nil
	return count, nil
}

func (store *fakeEmploymentStore) ListByEmployee(_ context.Context, _ primitive.ObjectID, _ bool) ([]*model.Employment, error) {
	return store.current, nil
}

func (store *fakeEmploymentStore) ListCurrentByEstablishment(_ context.Context, _ primitive.ObjectID) ([]*model.Employment, error) {
	return store.current, nil
}

type fakeEmployeeReader struct {
	employee *model.Employee
	err      error
}

func (reader *fakeEmployeeReader) GetByID(_ context.Context, _ primitive.ObjectID) (*model.Employee, error) {
	return reader.employee, reader.err
}

type fakeEstablishmentReader struct {
	establishments []*model.Establishment
}

func (reader *fakeEstablishmentReader) GetByIDs(_ context.Context, _ []primitive.ObjectID) ([]*model.Establishment, error) {
	return reader.establishments, nil
}

type fakeFollowerNotifier struct {
	calls int
}

func (notifier *fakeFollowerNotifier) NotifyFollowers(_ context.Context, _ primitive.ObjectID, _ core.NotificationType, _ string, _ map[string]string) {
	notifier.calls++
}

type fakeCacheInvalidator struct {
	deletedKeys []string
	patterns    []string
}

func (cache *fakeCacheInvalidator) Delete(_ context.Context, keys ...string) {
	cache.deletedKeys = append(cache.deletedKeys, keys...)
}

func (cache *fakeCacheInvalidator) Invalidate(_ context.Context, pattern string) {
	cache.patterns = append(cache.patterns, pattern)
}

// ---- helpers ----

func activeEstablishment(category core.EstablishmentCategory, name string) *model.Establishment {
	return &model.Establishment{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Category: category,
		Status:   core.StatusActive,
	}
}

func newEmploymentFixture(employee *model.Employee, establishments []*model.Establishment) (*EmploymentService, *fakeEmploymentStore, *fakeFollowerNotifier, *fakeCacheInvalidator) {
	store := &fakeEmploymentStore{}
	notifier := &fakeFollowerNotifier{}
	invalidator := &fakeCacheInvalidator{}
	s := NewEmploymentService(
		zap.NewNop(),
		&telemetry.Trace{},
		&telemetry.Metric{},
		store,
		&fakeEmployeeReader{employee: employee},
		&fakeEstablishmentReader{establishments: establishments},
		notifier,
		invalidator,
	)
	return s, store, notifier, invalidator
}

func idsOf(establishments ...*model.Establishment) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(establishments))
	for _, establishment := range establishments {
		ids = append(ids, establishment.ID)
	}
	return ids
}

func hexIDs(establishments ...*model.Establishment) []string {
	hex := make([]string, 0, len(establishments))
	for _, establishment := range establishments {
		hex = append(hex, establishment.ID.Hex())
	}
	return hex
}

// ---- ValidateAssociationRules ----

func TestValidateRegularEmployeeSingleAssociation(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: false}
	bar := activeEstablishment(core.CategoryBar, "Moonshine")
	s, _, _, _ := newEmploymentFixture(employee, []*model.Establishment{bar})

	if err := s.ValidateAssociationRules(employee, []*model.Establishment{bar}, idsOf(bar)); err != nil {
		t.Fatalf("single association should pass: %v", err)
	}
}

func TestValidateRegularEmployeeLimitExceeded(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: false}
	first := activeEstablishment(core.CategoryBar, "First")
	second := activeEstablishment(core.CategoryBar, "Second")
	s, _, _, _ := newEmploymentFixture(employee, []*model.Establishment{first, second})

	err := s.ValidateAssociationRules(employee, []*model.Establishment{first, second}, idsOf(first, second))
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.ASSOCIATION_LIMIT_EXCEEDED {
		t.Fatalf("got %v, want ASSOCIATION_LIMIT_EXCEEDED", err)
	}
}

func TestValidateFreelanceMultipleNightclubsAllowed(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: true}
	clubs := []*model.Establishment{
		activeEstablishment(core.CategoryNightclub, "Insomnia"),
		activeEstablishment(core.CategoryNightclub, "Lucifer"),
		activeEstablishment(core.CategoryNightclub, "Marine"),
	}
	s, _, _, _ := newEmploymentFixture(employee, clubs)

	if err := s.ValidateAssociationRules(employee, clubs, idsOf(clubs...)); err != nil {
		t.Fatalf("freelance nightclub associations should pass: %v", err)
	}
}

func TestValidateFreelanceRejectsNonNightclubAndNamesThem(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: true}
	club := activeEstablishment(core.CategoryNightclub, "Insomnia")
	bar := activeEstablishment(core.CategoryBar, "Moonshine")
	s, _, _, _ := newEmploymentFixture(employee, []*model.Establishment{club, bar})

	err := s.ValidateAssociationRules(employee, []*model.Establishment{club, bar}, idsOf(club, bar))
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.CATEGORY_NOT_ALLOWED {
		t.Fatalf("got %v, want CATEGORY_NOT_ALLOWED", err)
	}
	// 錯誤訊息只點名不合法的店家，並附上實際分類
	if !strings.Contains(appErr.ErrorDesc(), "Moonshine (Bar)") {
		t.Fatalf("error should name the offending establishment with its category: %s", appErr.ErrorDesc())
	}
	if strings.Contains(appErr.ErrorDesc(), "Insomnia") {
		t.Fatalf("error must not name valid establishments: %s", appErr.ErrorDesc())
	}
}

func TestValidateRejectsInactiveEstablishment(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: false}
	closed := activeEstablishment(core.CategoryBar, "Closed")
	closed.Status = core.StatusSuspended
	s, _, _, _ := newEmploymentFixture(employee, []*model.Establishment{closed})

	err := s.ValidateAssociationRules(employee, []*model.Establishment{closed}, idsOf(closed))
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.ESTABLISHMENT_NOT_ACTIVE {
		t.Fatalf("got %v, want ESTABLISHMENT_NOT_ACTIVE", err)
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: true}
	club := activeEstablishment(core.CategoryNightclub, "Insomnia")
	s, _, _, _ := newEmploymentFixture(employee, []*model.Establishment{club})

	err := s.ValidateAssociationRules(employee, []*model.Establishment{club}, []primitive.ObjectID{club.ID, club.ID})
	appErr, ok := err.(*cErr.Error)
	if !ok || appErr.ErrorCode() != cErr.DUPLICATE_ASSOCIATION {
		t.Fatalf("got %v, want DUPLICATE_ASSOCIATION", err)
	}
}

// ---- ReplaceAssociations ----

func TestReplaceAssociationsSwapsDeactivateThenInsert(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), Nickname: "Nok", IsFreelance: false}
	oldBar := activeEstablishment(core.CategoryBar, "Old")
	newBar := activeEstablishment(core.CategoryBar, "New")

	s, store, notifier, invalidator := newEmploymentFixture(employee, []*model.Establishment{newBar})
	store.current = []*model.Employment{{
		ID:              primitive.NewObjectID(),
		EmployeeID:      employee.ID,
		EstablishmentID: oldBar.ID,
		IsCurrent:       true,
	}}

	result, err := s.ReplaceAssociations(context.Background(),
		employee.ID,
		&dto.ReplaceAssociationsDto{EstablishmentIDs: hexIDs(newBar)},
		primitive.NewObjectID(),
	)
	if err != nil {
		t.Fatalf("ReplaceAssociations: %v", err)
	}
	if result.Deactivated != 1 {
		t.Fatalf("deactivated=%d, want 1", result.Deactivated)
	}
	if len(result.Created) != 1 || result.Created[0].EstablishmentID != newBar.ID.Hex() {
		t.Fatalf("unexpected created records: %+v", result.Created)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted=%d, want 1", len(store.inserted))
	}
	if notifier.calls != 1 {
		t.Fatalf("followers should be notified once, got %d", notifier.calls)
	}
	if len(invalidator.deletedKeys) == 0 && len(invalidator.patterns) == 0 {
		t.Fatal("listing caches should be invalidated after a swap")
	}
}

func TestReplaceAssociationsEmptyListClearsAll(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), Nickname: "Fon", IsFreelance: true}
	club := activeEstablishment(core.CategoryNightclub, "Insomnia")

	s, store, _, _ := newEmploymentFixture(employee, nil)
	store.current = []*model.Employment{{
		ID:              primitive.NewObjectID(),
		EmployeeID:      employee.ID,
		EstablishmentID: club.ID,
		IsCurrent:       true,
	}}

	result, err := s.ReplaceAssociations(context.Background(),
		employee.ID,
		&dto.ReplaceAssociationsDto{EstablishmentIDs: []string{}},
		primitive.NewObjectID(),
	)
	if err != nil {
		t.Fatalf("ReplaceAssociations: %v", err)
	}
	if result.Deactivated != 1 || len(result.Created) != 0 {
		t.Fatalf("got deactivated=%d created=%d, want 1/0", result.Deactivated, len(result.Created))
	}
}

func TestReplaceAssociationsValidationFailureMutatesNothing(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: true}
	club := activeEstablishment(core.CategoryNightclub, "Insomnia")
	bar := activeEstablishment(core.CategoryBar, "Moonshine")

	s, store, notifier, _ := newEmploymentFixture(employee, []*model.Establishment{club, bar})
	store.current = []*model.Employment{{
		ID:              primitive.NewObjectID(),
		EmployeeID:      employee.ID,
		EstablishmentID: club.ID,
		IsCurrent:       true,
	}}

	_, err := s.ReplaceAssociations(context.Background(),
		employee.ID,
		&dto.ReplaceAssociationsDto{EstablishmentIDs: hexIDs(club, bar)},
		primitive.NewObjectID(),
	)
	if err == nil {
		t.Fatal("mixed category list must be rejected for freelance workers")
	}
	if store.deactivated != 0 || len(store.inserted) != 0 {
		t.Fatalf("rejected request must not touch data: deactivated=%d inserted=%d", store.deactivated, len(store.inserted))
	}
	if notifier.calls != 0 {
		t.Fatal("no notification on rejected request")
	}
}

func TestReplaceAssociationsDeactivateFailureAborts(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: false}
	bar := activeEstablishment(core.CategoryBar, "Moonshine")

	s, store, notifier, _ := newEmploymentFixture(employee, []*model.Establishment{bar})
	store.deactivateErr = errors.New("connection reset")

	_, err := s.ReplaceAssociations(context.Background(),
		employee.ID,
		&dto.ReplaceAssociationsDto{EstablishmentIDs: hexIDs(bar)},
		primitive.NewObjectID(),
	)
	if err == nil {
		t.Fatal("deactivation failure must surface an error")
	}
	if len(store.inserted) != 0 {
		t.Fatal("no inserts after a failed deactivation")
	}
	if notifier.calls != 0 {
		t.Fatal("no notification on aborted swap")
	}
}

func TestReplaceAssociationsBadHexID(t *testing.T) {
	employee := &model.Employee{ID: primitive.NewObjectID(), IsFreelance: false}
	s, store, _, _ := newEmploymentFixture(employee, nil)

	_, err := s.ReplaceAssociations(context.Background(),
		employee.ID,
		&dto.ReplaceAssociationsDto{EstablishmentIDs: []string{"not-a-hex-id"}},
		primitive.NewObjectID(),
	)
	if err == nil {
		t.Fatal("malformed id must be rejected")
	}
	if store.deactivated != 0 || len(store.inserted) != 0 {
		t.Fatal("malformed id must not touch data")
	}
}
