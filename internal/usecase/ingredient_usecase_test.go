package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type IngIngredientRepoMock struct{ mock.Mock }

func (m *IngIngredientRepoMock) FindByID(ctx context.Context, userID model.UserID, id model.IngredientID) (*model.Ingredient, error) {
	args := m.Called(ctx, userID, id)
	ing, _ := args.Get(0).(*model.Ingredient)
	return ing, args.Error(1)
}

func (m *IngIngredientRepoMock) FindByName(ctx context.Context, userID model.UserID, name model.IngredientName) ([]*model.Ingredient, error) {
	panic("not used in IngredientUsecase tests")
}

func (m *IngIngredientRepoMock) FindAll(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindByUserID(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	panic("not used in IngredientUsecase tests")
}

func (m *IngIngredientRepoMock) Save(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *IngIngredientRepoMock) Update(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *IngIngredientRepoMock) FindDuplicates(ctx context.Context, criteria repo.DuplicateCriteria) ([]*model.Ingredient, error) {
	args := m.Called(ctx, criteria)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) ExistsByUserAndNameAndExpiryAndLocation(ctx context.Context, criteria repo.DuplicateCriteria) (bool, error) {
	panic("not used in IngredientUsecase tests")
}

func (m *IngIngredientRepoMock) FindExpiringSoon(ctx context.Context, userID model.UserID, days int) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID, days)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindExpired(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindByCategory(ctx context.Context, userID model.UserID, categoryID model.CategoryID) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID, categoryID)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindByStorageLocation(ctx context.Context, userID model.UserID, storageType model.StorageType) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID, storageType)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindOutOfStock(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

func (m *IngIngredientRepoMock) FindLowStock(ctx context.Context, userID model.UserID, threshold *decimal.Decimal) ([]*model.Ingredient, error) {
	args := m.Called(ctx, userID, threshold)
	items, _ := args.Get(0).([]*model.Ingredient)
	return items, args.Error(1)
}

type IngCategoryRepoMock struct{ mock.Mock }

func (m *IngCategoryRepoMock) FindByID(ctx context.Context, id model.CategoryID) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *IngCategoryRepoMock) FindAllActive(ctx context.Context) ([]model.Category, error) {
	panic("not used in IngredientUsecase tests")
}

type IngUnitRepoMock struct{ mock.Mock }

func (m *IngUnitRepoMock) FindByID(ctx context.Context, id model.UnitID) (model.Unit, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.Unit)
	return u, args.Error(1)
}

func (m *IngUnitRepoMock) FindAllActive(ctx context.Context) ([]model.Unit, error) {
	panic("not used in IngredientUsecase tests")
}

// TxManagerMockはfnをそのまま実行するだけ。commit/rollbackは見ない。
type IngTxManagerMock struct {
	repos IngTxReposMock
}

func (m *IngTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&m.repos)
}

type IngTxReposMock struct {
	ingredients *IngIngredientRepoMock
	categories  *IngCategoryRepoMock
	units       *IngUnitRepoMock
}

func (m *IngTxReposMock) Ingredients() repo.IngredientRepository { return m.ingredients }
func (m *IngTxReposMock) Categories() repo.CategoryRepository    { return m.categories }
func (m *IngTxReposMock) Units() repo.UnitRepository             { return m.units }

// EventBusMockは受け取ったイベントを貯めるだけ。
type IngEventBusMock struct {
	published []model.DomainEvent
}

func (m *IngEventBusMock) Publish(ctx context.Context, events []model.DomainEvent) error {
	m.published = append(m.published, events...)
	return nil
}

// =====================
// Fixtures
// =====================

type ucFixture struct {
	uc       *usecase.IngredientUsecase
	ingRepo  *IngIngredientRepoMock
	catRepo  *IngCategoryRepoMock
	unitRepo *IngUnitRepoMock
	bus      *IngEventBusMock
}

func newFixture() *ucFixture {
	ingRepo := new(IngIngredientRepoMock)
	catRepo := new(IngCategoryRepoMock)
	unitRepo := new(IngUnitRepoMock)
	bus := new(IngEventBusMock)
	tx := &IngTxManagerMock{repos: IngTxReposMock{
		ingredients: ingRepo,
		categories:  catRepo,
		units:       unitRepo,
	}}
	return &ucFixture{
		uc:       usecase.NewIngredientUsecase(ingRepo, catRepo, unitRepo, tx, bus),
		ingRepo:  ingRepo,
		catRepo:  catRepo,
		unitRepo: unitRepo,
		bus:      bus,
	}
}

const ownerID = model.UserID("usr_owner")

func storedIngredient(t *testing.T, quantity float64) *model.Ingredient {
	t.Helper()

	name, err := model.NewIngredientName("トマト")
	require.NoError(t, err)
	location, err := model.NewStorageLocation(model.StorageTypeRefrigerated, "野菜室")
	require.NoError(t, err)
	q, err := model.NewQuantityFromFloat(quantity)
	require.NoError(t, err)

	ing, err := model.NewIngredient(model.NewIngredientParams{
		UserID:          ownerID,
		Name:            name,
		CategoryID:      "cat_vegetable",
		PurchaseDate:    time.Now(),
		Quantity:        q,
		UnitID:          "unt_piece",
		StorageLocation: location,
	})
	require.NoError(t, err)
	//永続化済みの体にする
	ing.MarkEventsCommitted()
	return ing
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func assertHTTPErr(t *testing.T, err error, status int, message string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}

// =====================
// Create
// =====================

func validCreateInput() usecase.CreateIngredientInput {
	return usecase.CreateIngredientInput{
		Name:         "トマト",
		CategoryID:   "cat_vegetable",
		PurchaseDate: time.Now(),
		Quantity:     3,
		UnitID:       "unt_piece",
		StorageType:  "REFRIGERATED",
	}
}

func TestIngredientUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.catRepo.On("FindByID", mock.Anything, model.CategoryID("cat_vegetable")).Return(model.Category{ID: "cat_vegetable"}, nil)
	f.unitRepo.On("FindByID", mock.Anything, model.UnitID("unt_piece")).Return(model.Unit{ID: "unt_piece"}, nil)
	f.ingRepo.On("FindDuplicates", mock.Anything, mock.Anything).Return([]*model.Ingredient(nil), nil)
	f.ingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Create(ctx, ownerID, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "トマト", out.Name)
	assert.Equal(t, 3.0, out.Quantity)
	assert.True(t, len(out.ID) > 4 && out.ID[:4] == "ing_")

	//commit後にIngredientCreatedが1件publishされる
	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "IngredientCreated", f.bus.published[0].Type())
	f.ingRepo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIngredientUsecase_Create_InvalidName(t *testing.T) {
	f := newFixture()

	in := validCreateInput()
	in.Name = "  "
	_, err := f.uc.Create(context.Background(), ownerID, in)

	assertHTTPErr(t, err, http.StatusBadRequest, "食材名は必須です")
}

func TestIngredientUsecase_Create_UnknownCategory(t *testing.T) {
	f := newFixture()

	f.catRepo.On("FindByID", mock.Anything, model.CategoryID("cat_vegetable")).Return(model.Category{}, repo.ErrNotFound)

	_, err := f.uc.Create(context.Background(), ownerID, validCreateInput())
	assertHTTPErr(t, err, http.StatusBadRequest, "カテゴリが存在しません")
}

func TestIngredientUsecase_Create_Duplicate(t *testing.T) {
	f := newFixture()

	f.catRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Category{ID: "cat_vegetable"}, nil)
	f.unitRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Unit{ID: "unt_piece"}, nil)

	in := validCreateInput()
	in.StorageDetail = "野菜室"
	existing := storedIngredient(t, 5)
	f.ingRepo.On("FindDuplicates", mock.Anything, mock.Anything).Return([]*model.Ingredient{existing}, nil)

	_, err := f.uc.Create(context.Background(), ownerID, in)
	assertHTTPErr(t, err, http.StatusConflict, "同じ食材がすでに登録されています")
	f.ingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.bus.published)
}

func TestIngredientUsecase_Create_InvalidExpiryPair(t *testing.T) {
	f := newFixture()
	f.catRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Category{ID: "cat_vegetable"}, nil)
	f.unitRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Unit{ID: "unt_piece"}, nil)

	in := validCreateInput()
	bestBefore := time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)
	useBy := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	in.BestBeforeDate = &bestBefore
	in.UseByDate = &useBy

	_, err := f.uc.Create(context.Background(), ownerID, in)
	assertHTTPErr(t, err, http.StatusBadRequest, "消費期限は賞味期限以前でなければなりません")
}

// =====================
// Consume / Replenish
// =====================

func TestIngredientUsecase_Consume_Success(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)
	f.ingRepo.On("Update", mock.Anything, ing).Return(nil)

	out, err := f.uc.Consume(context.Background(), ownerID, ing.ID().String(), 3)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.Quantity)

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "StockConsumed", f.bus.published[0].Type())
}

func TestIngredientUsecase_Consume_Insufficient(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 5)

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)

	_, err := f.uc.Consume(context.Background(), ownerID, ing.ID().String(), 100)
	assertHTTPErr(t, err, http.StatusConflict, "在庫が不足しています")
	//失敗した操作のイベントは出ない
	assert.Empty(t, f.bus.published)
	f.ingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestIngredientUsecase_Consume_MalformedID(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Consume(context.Background(), ownerID, "not-an-id", 1)
	assertHTTPErr(t, err, http.StatusBadRequest, "食材IDの形式が不正です")
}

func TestIngredientUsecase_Consume_NotFound(t *testing.T) {
	f := newFixture()
	id := model.NewIngredientID()

	f.ingRepo.On("FindByID", mock.Anything, ownerID, id).Return(nil, repo.ErrNotFound)

	_, err := f.uc.Consume(context.Background(), ownerID, id.String(), 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestIngredientUsecase_Replenish_Success(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)
	f.ingRepo.On("Update", mock.Anything, ing).Return(nil)

	out, err := f.uc.Replenish(context.Background(), ownerID, ing.ID().String(), 5)
	require.NoError(t, err)
	assert.Equal(t, 15.0, out.Quantity)

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "StockReplenished", f.bus.published[0].Type())
}

// =====================
// Update / Delete
// =====================

func TestIngredientUsecase_Update_Success(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)
	f.ingRepo.On("Update", mock.Anything, ing).Return(nil)

	newName := "ミニトマト"
	out, err := f.uc.Update(context.Background(), ownerID, ing.ID().String(), usecase.UpdateIngredientInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "ミニトマト", out.Name)

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "IngredientUpdated", f.bus.published[0].Type())
}

func TestIngredientUsecase_Update_Deleted(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)
	require.NoError(t, ing.Delete(ownerID))
	ing.MarkEventsCommitted()

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)

	newName := "ミニトマト"
	_, err := f.uc.Update(context.Background(), ownerID, ing.ID().String(), usecase.UpdateIngredientInput{Name: &newName})
	assertHTTPErr(t, err, http.StatusConflict, "削除済みの食材です")
}

func TestIngredientUsecase_Delete_Success(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)
	f.ingRepo.On("Update", mock.Anything, ing).Return(nil)

	require.NoError(t, f.uc.Delete(context.Background(), ownerID, ing.ID().String()))
	assert.True(t, ing.IsDeleted())

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "IngredientDeleted", f.bus.published[0].Type())
}

func TestIngredientUsecase_Delete_Twice(t *testing.T) {
	f := newFixture()
	ing := storedIngredient(t, 10)
	require.NoError(t, ing.Delete(ownerID))
	ing.MarkEventsCommitted()

	f.ingRepo.On("FindByID", mock.Anything, ownerID, ing.ID()).Return(ing, nil)

	err := f.uc.Delete(context.Background(), ownerID, ing.ID().String())
	assertHTTPErr(t, err, http.StatusConflict, "すでに削除されています")
}

// =====================
// 照会・集計
// =====================

func TestIngredientUsecase_Get_NotFound(t *testing.T) {
	f := newFixture()
	id := model.NewIngredientID()

	f.ingRepo.On("FindByID", mock.Anything, ownerID, id).Return(nil, repo.ErrNotFound)

	_, err := f.uc.Get(context.Background(), ownerID, id.String())
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestIngredientUsecase_ListExpiringSoon_NegativeDays(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ListExpiringSoon(context.Background(), ownerID, -1)
	assertHTTPErr(t, err, http.StatusBadRequest, "日数は0以上でなければなりません")
}

func TestIngredientUsecase_ListLowStock_PassesThreshold(t *testing.T) {
	f := newFixture()

	f.ingRepo.On("FindLowStock", mock.Anything, ownerID, mock.MatchedBy(func(d *decimal.Decimal) bool {
		return d != nil && d.Equal(decimal.NewFromInt(5))
	})).Return([]*model.Ingredient(nil), nil)

	threshold := 5.0
	out, err := f.uc.ListLowStock(context.Background(), ownerID, &threshold)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)
}

func TestIngredientUsecase_ListLowStock_NilThreshold(t *testing.T) {
	f := newFixture()

	f.ingRepo.On("FindLowStock", mock.Anything, ownerID, (*decimal.Decimal)(nil)).Return([]*model.Ingredient(nil), nil)

	_, err := f.uc.ListLowStock(context.Background(), ownerID, nil)
	require.NoError(t, err)
}

func TestIngredientUsecase_CheckExpiries(t *testing.T) {
	f := newFixture()

	yesterday := time.Now().AddDate(0, 0, -1)
	name, _ := model.NewIngredientName("古いトマト")
	location, _ := model.NewStorageLocation(model.StorageTypeRefrigerated, "")
	q, _ := model.NewQuantityFromFloat(2)
	expiry, err := model.NewExpiryInfo(&yesterday, nil)
	require.NoError(t, err)

	expired, err := model.NewIngredient(model.NewIngredientParams{
		UserID:          ownerID,
		Name:            name,
		CategoryID:      "cat_vegetable",
		PurchaseDate:    time.Now(),
		Quantity:        q,
		UnitID:          "unt_piece",
		StorageLocation: location,
		ExpiryInfo:      &expiry,
	})
	require.NoError(t, err)
	expired.MarkEventsCommitted()

	f.ingRepo.On("FindExpired", mock.Anything, ownerID).Return([]*model.Ingredient{expired}, nil)

	count, err := f.uc.CheckExpiries(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "IngredientExpired", f.bus.published[0].Type())
}

func TestIngredientUsecase_SummaryByCategory(t *testing.T) {
	f := newFixture()
	a := storedIngredient(t, 10)
	b := storedIngredient(t, 2.5)

	f.ingRepo.On("FindAll", mock.Anything, ownerID).Return([]*model.Ingredient{a, b}, nil)

	out, err := f.uc.SummaryByCategory(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cat_vegetable", out[0].CategoryID)
	assert.Equal(t, 12.5, out[0].TotalQuantity)
	assert.Equal(t, 2, out[0].IngredientCount)
}

func TestIngredientUsecase_TotalStock(t *testing.T) {
	f := newFixture()
	a := storedIngredient(t, 10)
	b := storedIngredient(t, 5)

	f.ingRepo.On("FindAll", mock.Anything, ownerID).Return([]*model.Ingredient{a, b}, nil)

	out, err := f.uc.TotalStock(context.Background(), ownerID, "unt_piece")
	require.NoError(t, err)
	assert.Equal(t, "unt_piece", out.UnitID)
	assert.Equal(t, 15.0, out.TotalQuantity)
}
