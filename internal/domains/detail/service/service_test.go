package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "car-inventory-backend/internal/domains/catalog/model"
	"car-inventory-backend/internal/domains/detail/model"
)

// =====================================================
// FAKES
// =====================================================

type fakeDetailRepo struct {
	details map[uuid.UUID]*model.CarDetail
	order   []uuid.UUID

	createCalled bool
	lastUpdate   *model.UpdateDetailRequest
}

func newFakeDetailRepo(details ...*model.CarDetail) *fakeDetailRepo {
	f := &fakeDetailRepo{details: map[uuid.UUID]*model.CarDetail{}}
	for _, d := range details {
		f.details[d.ID] = d
		f.order = append(f.order, d.ID)
	}
	return f
}

// List applies offset/limit the way the real repository does, so paging
// behavior can be observed from service tests.
func (f *fakeDetailRepo) List(ctx context.Context, req model.ListDetailsRequest) (*model.ListDetailsResponse, error) {
	items := []model.CarDetail{}
	for _, id := range f.order {
		if d, ok := f.details[id]; ok {
			items = append(items, *d)
		}
	}
	total := len(items)
	if req.Page != nil && req.PageSize != nil {
		offset := (*req.Page - 1) * *req.PageSize
		if offset > total {
			offset = total
		}
		end := offset + *req.PageSize
		if end > total {
			end = total
		}
		items = items[offset:end]
	}
	return &model.ListDetailsResponse{Items: items, TotalCount: total}, nil
}

func (f *fakeDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CarDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, model.ErrDetailNotFound
	}
	return d, nil
}

func (f *fakeDetailRepo) Create(ctx context.Context, req model.CreateDetailRequest) (*model.CarDetail, error) {
	f.createCalled = true
	d := &model.CarDetail{
		ID:         uuid.New(),
		CarMakeID:  req.CarMakeID,
		CarModelID: req.CarModelID,
		Year:       req.Year,
	}
	f.details[d.ID] = d
	f.order = append(f.order, d.ID)
	return d, nil
}

func (f *fakeDetailRepo) Update(ctx context.Context, id uuid.UUID, req model.UpdateDetailRequest) (*model.CarDetail, error) {
	f.lastUpdate = &req
	d, ok := f.details[id]
	if !ok {
		return nil, model.ErrDetailNotFound
	}
	if req.Year != nil {
		d.Year = *req.Year
	}
	if req.CarMakeID != nil {
		d.CarMakeID = *req.CarMakeID
	}
	if req.CarModelID != nil {
		d.CarModelID = *req.CarModelID
	}
	return d, nil
}

func (f *fakeDetailRepo) UpdateBatch(ctx context.Context, items []model.BatchUpdateItem) ([]model.CarDetail, error) {
	results := []model.CarDetail{}
	for _, item := range items {
		d, ok := f.details[item.ID]
		if !ok {
			return nil, model.ErrDetailNotFound
		}
		results = append(results, *d)
	}
	return results, nil
}

func (f *fakeDetailRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.details[id]; !ok {
		return false, nil
	}
	delete(f.details, id)
	return true, nil
}

func (f *fakeDetailRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.details[id]; ok {
			delete(f.details, id)
			count++
		}
	}
	return count, nil
}

type fakeCatalogRepo struct {
	models map[uuid.UUID]*catalogModel.CarModel
}

func newFakeCatalogRepo(models ...*catalogModel.CarModel) *fakeCatalogRepo {
	m := map[uuid.UUID]*catalogModel.CarModel{}
	for _, cm := range models {
		m[cm.ID] = cm
	}
	return &fakeCatalogRepo{models: m}
}

func (f *fakeCatalogRepo) ListMakes(ctx context.Context) ([]catalogModel.CarMake, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ListModels(ctx context.Context) ([]catalogModel.CarModel, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ListFeatures(ctx context.Context) ([]catalogModel.CarFeature, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetModelByID(ctx context.Context, id uuid.UUID) (*catalogModel.CarModel, error) {
	m, ok := f.models[id]
	if !ok {
		return nil, catalogModel.ErrModelNotFound
	}
	return m, nil
}

func (f *fakeCatalogRepo) InvalidateLists(ctx context.Context) error {
	return nil
}

// =====================================================
// TESTS
// =====================================================

func detailErrorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	derr, ok := err.(*model.DetailError)
	require.True(t, ok, "expected *model.DetailError, got %T", err)
	return derr.Code
}

func TestCreateDetail_ModelMakeMismatchRejected(t *testing.T) {
	makeID := uuid.New()
	otherMakeID := uuid.New()
	modelID := uuid.New()

	detailRepo := newFakeDetailRepo()
	catalogRepo := newFakeCatalogRepo(&catalogModel.CarModel{
		ID: modelID, CarMakeID: otherMakeID, Name: "Civic",
	})
	svc := NewDetailService(detailRepo, catalogRepo)

	_, err := svc.CreateDetail(context.Background(), model.CreateDetailRequest{
		CarMakeID:  makeID,
		CarModelID: modelID,
		Year:       2020,
	})

	assert.Equal(t, model.ErrCodeConstraintViolation, detailErrorCode(t, err))
	assert.False(t, detailRepo.createCalled, "repository must not be reached")
}

func TestCreateDetail_UnknownModelRejected(t *testing.T) {
	svc := NewDetailService(newFakeDetailRepo(), newFakeCatalogRepo())

	_, err := svc.CreateDetail(context.Background(), model.CreateDetailRequest{
		CarMakeID:  uuid.New(),
		CarModelID: uuid.New(),
		Year:       2020,
	})

	assert.Equal(t, model.ErrCodeConstraintViolation, detailErrorCode(t, err))
}

func TestCreateDetail_ValidationRunsBeforeStorage(t *testing.T) {
	detailRepo := newFakeDetailRepo()
	svc := NewDetailService(detailRepo, newFakeCatalogRepo())

	_, err := svc.CreateDetail(context.Background(), model.CreateDetailRequest{
		CarMakeID:  uuid.New(),
		CarModelID: uuid.New(),
		Year:       1900,
	})

	assert.Equal(t, model.ErrCodeValidation, detailErrorCode(t, err))
	assert.False(t, detailRepo.createCalled)
}

func TestCreateDetail_Success(t *testing.T) {
	makeID := uuid.New()
	modelID := uuid.New()

	catalogRepo := newFakeCatalogRepo(&catalogModel.CarModel{
		ID: modelID, CarMakeID: makeID, Name: "Camry",
	})
	svc := NewDetailService(newFakeDetailRepo(), catalogRepo)

	detail, err := svc.CreateDetail(context.Background(), model.CreateDetailRequest{
		CarMakeID:  makeID,
		CarModelID: modelID,
		Year:       2020,
	})

	require.NoError(t, err)
	assert.Equal(t, makeID, detail.CarMakeID)
	assert.Equal(t, 2020, detail.Year)
}

func TestListDetails_TotalCountIndependentOfPaging(t *testing.T) {
	details := make([]*model.CarDetail, 5)
	for i := range details {
		details[i] = &model.CarDetail{ID: uuid.New(), Year: 2015 + i}
	}
	svc := NewDetailService(newFakeDetailRepo(details...), newFakeCatalogRepo())

	// No paging: everything, total matches.
	result, err := svc.ListDetails(context.Background(), model.ListDetailsRequest{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 5)
	assert.Equal(t, 5, result.TotalCount)

	// A middle page: fewer items, same total.
	page, pageSize := 2, 2
	result, err = svc.ListDetails(context.Background(), model.ListDetailsRequest{Page: &page, PageSize: &pageSize})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 5, result.TotalCount)

	// The last page is partial but the total still covers the full set.
	page = 3
	result, err = svc.ListDetails(context.Background(), model.ListDetailsRequest{Page: &page, PageSize: &pageSize})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 5, result.TotalCount)
}

func TestUpdateDetail_NotFoundIsDistinct(t *testing.T) {
	svc := NewDetailService(newFakeDetailRepo(), newFakeCatalogRepo())

	_, err := svc.UpdateDetail(context.Background(), uuid.New(), model.UpdateDetailRequest{
		FeatureIDs: []uuid.UUID{uuid.New()},
	})

	assert.Equal(t, model.ErrCodeDetailNotFound, detailErrorCode(t, err))
}

func TestUpdateDetail_NilFeatureListMeansNoChange(t *testing.T) {
	existing := &model.CarDetail{ID: uuid.New(), CarMakeID: uuid.New(), CarModelID: uuid.New(), Year: 2019}
	detailRepo := newFakeDetailRepo(existing)
	svc := NewDetailService(detailRepo, newFakeCatalogRepo())

	newYear := 2021
	_, err := svc.UpdateDetail(context.Background(), existing.ID, model.UpdateDetailRequest{Year: &newYear})

	require.NoError(t, err)
	require.NotNil(t, detailRepo.lastUpdate)
	assert.Nil(t, detailRepo.lastUpdate.FeatureIDs, "absent feature list must stay nil")
}

func TestUpdateDetail_EmptyFeatureListSurvivesToRepository(t *testing.T) {
	existing := &model.CarDetail{ID: uuid.New(), CarMakeID: uuid.New(), CarModelID: uuid.New(), Year: 2019}
	detailRepo := newFakeDetailRepo(existing)
	svc := NewDetailService(detailRepo, newFakeCatalogRepo())

	_, err := svc.UpdateDetail(context.Background(), existing.ID, model.UpdateDetailRequest{
		FeatureIDs: []uuid.UUID{},
	})

	require.NoError(t, err)
	require.NotNil(t, detailRepo.lastUpdate)
	assert.NotNil(t, detailRepo.lastUpdate.FeatureIDs, "empty list means clear-all, not no-change")
	assert.Len(t, detailRepo.lastUpdate.FeatureIDs, 0)
}

func TestUpdateDetail_ModelPatchCheckedAgainstPersistedMake(t *testing.T) {
	makeID := uuid.New()
	existing := &model.CarDetail{ID: uuid.New(), CarMakeID: makeID, CarModelID: uuid.New(), Year: 2019}

	goodModelID := uuid.New()
	badModelID := uuid.New()
	catalogRepo := newFakeCatalogRepo(
		&catalogModel.CarModel{ID: goodModelID, CarMakeID: makeID, Name: "Corolla"},
		&catalogModel.CarModel{ID: badModelID, CarMakeID: uuid.New(), Name: "Civic"},
	)
	svc := NewDetailService(newFakeDetailRepo(existing), catalogRepo)

	_, err := svc.UpdateDetail(context.Background(), existing.ID, model.UpdateDetailRequest{
		CarModelID: &goodModelID,
	})
	assert.NoError(t, err)

	_, err = svc.UpdateDetail(context.Background(), existing.ID, model.UpdateDetailRequest{
		CarModelID: &badModelID,
	})
	assert.Equal(t, model.ErrCodeConstraintViolation, detailErrorCode(t, err))
}

func TestDeleteDetails_CountsOnlyExisting(t *testing.T) {
	d1 := &model.CarDetail{ID: uuid.New()}
	d2 := &model.CarDetail{ID: uuid.New()}
	detailRepo := newFakeDetailRepo(d1, d2)
	svc := NewDetailService(detailRepo, newFakeCatalogRepo())

	count, err := svc.DeleteDetails(context.Background(), model.DeleteDetailsRequest{
		IDs: []uuid.UUID{d1.ID, d2.ID, uuid.New()},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.GetDetail(context.Background(), d1.ID)
	assert.Equal(t, model.ErrCodeDetailNotFound, detailErrorCode(t, err))
}

func TestDeleteDetails_EmptyListRejected(t *testing.T) {
	svc := NewDetailService(newFakeDetailRepo(), newFakeCatalogRepo())

	_, err := svc.DeleteDetails(context.Background(), model.DeleteDetailsRequest{})

	assert.Equal(t, model.ErrCodeValidation, detailErrorCode(t, err))
}

func TestDeleteDetail_NotFound(t *testing.T) {
	svc := NewDetailService(newFakeDetailRepo(), newFakeCatalogRepo())

	err := svc.DeleteDetail(context.Background(), uuid.New())

	assert.Equal(t, model.ErrCodeDetailNotFound, detailErrorCode(t, err))
}

func TestUpdateDetails_BatchValidation(t *testing.T) {
	svc := NewDetailService(newFakeDetailRepo(), newFakeCatalogRepo())

	_, err := svc.UpdateDetails(context.Background(), model.BatchUpdateRequest{})

	assert.Equal(t, model.ErrCodeValidation, detailErrorCode(t, err))
}

func TestUpdateDetails_MissingItemAbortsBatch(t *testing.T) {
	d1 := &model.CarDetail{ID: uuid.New(), CarMakeID: uuid.New(), CarModelID: uuid.New(), Year: 2019}
	svc := NewDetailService(newFakeDetailRepo(d1), newFakeCatalogRepo())

	_, err := svc.UpdateDetails(context.Background(), model.BatchUpdateRequest{
		Items: []model.BatchUpdateItem{
			{ID: d1.ID},
			{ID: uuid.New(), FeatureIDs: []uuid.UUID{}},
		},
	})

	assert.Equal(t, model.ErrCodeDetailNotFound, detailErrorCode(t, err))
}
