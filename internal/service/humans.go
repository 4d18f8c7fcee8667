package service

import (
	"context"
	"encoding/json"

	"github.com/catapp/backend/internal/model"
)

type humanRepo interface {
	ListHumans(ctx context.Context) ([]model.Human, error)
	GetHuman(ctx context.Context, id int64) (*model.Human, error)
	CreateHuman(ctx context.Context, in model.HumanInput) (*model.Human, error)
	UpdateHuman(ctx context.Context, id int64, in model.HumanInput) (*model.Human, error)
	DeleteHuman(ctx context.Context, id int64) error
	GetHome(ctx context.Context, id int64) (*model.Home, error)
}

type HumanService struct {
	db humanRepo
}

func NewHumanService(db humanRepo) *HumanService {
	return &HumanService{db: db}
}

func (s *HumanService) List(ctx context.Context) ([]model.Human, error) {
	return s.db.ListHumans(ctx)
}

func (s *HumanService) Get(ctx context.Context, id int64) (*model.Human, error) {
	human, err := s.db.GetHuman(ctx, id)
	return human, storeErr(err)
}

func (s *HumanService) Create(ctx context.Context, raw map[string]json.RawMessage) (*model.Human, error) {
	data, err := s.clean(ctx, raw, modeCreate)
	if err != nil {
		return nil, err
	}
	var in model.HumanInput
	in.Apply(data)

	human, err := s.db.CreateHuman(ctx, in)
	return human, storeErr(err)
}

func (s *HumanService) Update(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Human, error) {
	return s.update(ctx, id, raw, modeUpdate)
}

func (s *HumanService) PartialUpdate(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Human, error) {
	return s.update(ctx, id, raw, modePartial)
}

func (s *HumanService) update(ctx context.Context, id int64, raw map[string]json.RawMessage, mode writeMode) (*model.Human, error) {
	existing, err := s.db.GetHuman(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	data, err := s.clean(ctx, raw, mode)
	if err != nil {
		return nil, err
	}
	in := existing.Input()
	in.Apply(data)

	human, err := s.db.UpdateHuman(ctx, id, in)
	return human, storeErr(err)
}

func (s *HumanService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.db.DeleteHuman(ctx, id))
}

func (s *HumanService) clean(ctx context.Context, raw map[string]json.RawMessage, mode writeMode) (model.CleanedData, error) {
	data, verr := validateFields(model.HumanSchema, raw, mode)
	if err := checkRef(ctx, verr, data, "home", s.db.GetHome); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return data, nil
}
