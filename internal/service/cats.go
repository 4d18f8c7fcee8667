package service

import (
	"context"
	"encoding/json"

	"github.com/catapp/backend/internal/model"
)

type catRepo interface {
	ListCats(ctx context.Context) ([]model.Cat, error)
	GetCat(ctx context.Context, id int64) (*model.Cat, error)
	CreateCat(ctx context.Context, in model.CatInput) (*model.Cat, error)
	UpdateCat(ctx context.Context, id int64, in model.CatInput) (*model.Cat, error)
	DeleteCat(ctx context.Context, id int64) error
	GetBreed(ctx context.Context, id int64) (*model.Breed, error)
	GetHuman(ctx context.Context, id int64) (*model.Human, error)
}

type CatService struct {
	db catRepo
}

func NewCatService(db catRepo) *CatService {
	return &CatService{db: db}
}

func (s *CatService) List(ctx context.Context) ([]model.Cat, error) {
	return s.db.ListCats(ctx)
}

func (s *CatService) Get(ctx context.Context, id int64) (*model.Cat, error) {
	cat, err := s.db.GetCat(ctx, id)
	return cat, storeErr(err)
}

func (s *CatService) Create(ctx context.Context, raw map[string]json.RawMessage) (*model.Cat, error) {
	data, err := s.clean(ctx, raw, modeCreate)
	if err != nil {
		return nil, err
	}
	var in model.CatInput
	in.Apply(data)

	cat, err := s.db.CreateCat(ctx, in)
	return cat, storeErr(err)
}

func (s *CatService) Update(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Cat, error) {
	return s.update(ctx, id, raw, modeUpdate)
}

func (s *CatService) PartialUpdate(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Cat, error) {
	return s.update(ctx, id, raw, modePartial)
}

func (s *CatService) update(ctx context.Context, id int64, raw map[string]json.RawMessage, mode writeMode) (*model.Cat, error) {
	existing, err := s.db.GetCat(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	data, err := s.clean(ctx, raw, mode)
	if err != nil {
		return nil, err
	}
	in := existing.Input()
	in.Apply(data)

	cat, err := s.db.UpdateCat(ctx, id, in)
	return cat, storeErr(err)
}

func (s *CatService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.db.DeleteCat(ctx, id))
}

func (s *CatService) clean(ctx context.Context, raw map[string]json.RawMessage, mode writeMode) (model.CleanedData, error) {
	data, verr := validateFields(model.CatSchema, raw, mode)
	if err := checkRef(ctx, verr, data, "breed", s.db.GetBreed); err != nil {
		return nil, err
	}
	if err := checkRef(ctx, verr, data, "owner", s.db.GetHuman); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return data, nil
}
