package service

import (
	"context"
	"encoding/json"

	"github.com/catapp/backend/internal/model"
)

type breedRepo interface {
	ListBreeds(ctx context.Context) ([]model.Breed, error)
	GetBreed(ctx context.Context, id int64) (*model.Breed, error)
	CreateBreed(ctx context.Context, in model.BreedInput) (*model.Breed, error)
	UpdateBreed(ctx context.Context, id int64, in model.BreedInput) (*model.Breed, error)
	DeleteBreed(ctx context.Context, id int64) error
}

type BreedService struct {
	db breedRepo
}

func NewBreedService(db breedRepo) *BreedService {
	return &BreedService{db: db}
}

func (s *BreedService) List(ctx context.Context) ([]model.Breed, error) {
	return s.db.ListBreeds(ctx)
}

func (s *BreedService) Get(ctx context.Context, id int64) (*model.Breed, error) {
	breed, err := s.db.GetBreed(ctx, id)
	return breed, storeErr(err)
}

func (s *BreedService) Create(ctx context.Context, raw map[string]json.RawMessage) (*model.Breed, error) {
	data, err := validate(model.BreedSchema, raw, modeCreate)
	if err != nil {
		return nil, err
	}
	var in model.BreedInput
	in.Apply(data)

	breed, err := s.db.CreateBreed(ctx, in)
	return breed, storeErr(err)
}

func (s *BreedService) Update(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Breed, error) {
	return s.update(ctx, id, raw, modeUpdate)
}

func (s *BreedService) PartialUpdate(ctx context.Context, id int64, raw map[string]json.RawMessage) (*model.Breed, error) {
	return s.update(ctx, id, raw, modePartial)
}

func (s *BreedService) update(ctx context.Context, id int64, raw map[string]json.RawMessage, mode writeMode) (*model.Breed, error) {
	existing, err := s.db.GetBreed(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	data, err := validate(model.BreedSchema, raw, mode)
	if err != nil {
		return nil, err
	}
	in := existing.Input()
	in.Apply(data)

	breed, err := s.db.UpdateBreed(ctx, id, in)
	return breed, storeErr(err)
}

// Delete removes the breed and every cat of that breed.
func (s *BreedService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.db.DeleteBreed(ctx, id))
}
