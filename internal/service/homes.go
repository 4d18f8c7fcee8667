package service

import (
	"context"
	"encoding/json"

	"github.com/catapp/backend/internal/model"
)

type homeRepo interface {
	ListHomes(ctx context.Context) ([]model.Home, error)
	GetHome(ctx context.Context, id int64) (*model.Home, error)
	CreateHome(ctx context.Context, in model.HomeInput) (*model.Home, error)
	UpdateHome(ctx context.Context, id int64, in model.HomeInput) (*model.Home, error)
	DeleteHome(ctx context.Context, id int64) error
}

// HomeService - homes CRUD; deleting a home removes its humans and their cats.
type HomeService struct {
	db homeRepo
}

func NewHomeService(db homeRepo) *HomeService {
	return &HomeService{db: db}
}

func (s *HomeService) List(ctx context.Context) ([]model.Home, error) {
	return s.db.ListHomes(ctx)
}

func (s *HomeService) Get(ctx context.Context, id int64) (*model.Home, error) {
	home, err := s.db.GetHome(ctx, id)
	return home, storeErr(err)
}

func (s *HomeService) Create(ctx context.Context, raw map[string]json.RawMessage) (*model.Home, error) {
	data, err := validate(model.HomeSchema, raw, modeCreate)
	if err != nil {
		return nil, err
	}
	var in model.HomeInput
	in.Apply(data)

	home, err := s.db.CreateHome(ctx, in)
	return home, storeErr(err)
}

func (s *HomeService) Update(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Home, error) {
	return s.update(ctx, id, raw, modeUpdate)
}

func (s *HomeService) PartialUpdate(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Home, error) {
	return s.update(ctx, id, raw, modePartial)
}

func (s *HomeService) update(ctx context.Context, id int64, raw map[string]json.RawMessage, mode writeMode) (*model.Home, error) {
	existing, err := s.db.GetHome(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	data, err := validate(model.HomeSchema, raw, mode)
	if err != nil {
		return nil, err
	}
	in := existing.Input()
	in.Apply(data)

	home, err := s.db.UpdateHome(ctx, id, in)
	return home, storeErr(err)
}

func (s *HomeService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.db.DeleteHome(ctx, id))
}
