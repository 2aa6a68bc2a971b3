package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	commoncrypto "github.com/realtyhub/backend/internal/common/crypto"
	commonerrors "github.com/realtyhub/backend/internal/common/errors"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/property/domain"
	proprepo "github.com/realtyhub/backend/internal/property/repository"
)

var validate = validator.New()

var (
	ErrEmptyBatch = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		400,
		"Invalid input: properties must be a non-empty array",
	)

	ErrMissingFields = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		400,
		"All properties must have title, address, and price",
	)
)

type CreateInput struct {
	Title       string  `validate:"required"`
	Description string
	Address     string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
}

type Service struct {
	repo proprepo.Repository
	ids  commoncrypto.IDGenerator
	log  *logger.Logger
}

func NewService(repo proprepo.Repository, ids commoncrypto.IDGenerator, log *logger.Logger) *Service {
	return &Service{repo: repo, ids: ids, log: log}
}

func (s *Service) CreateProperty(ctx context.Context, ownerID string, input CreateInput) (domain.Property, error) {
	if err := validate.Struct(input); err != nil {
		return domain.Property{}, ErrMissingFields.WithCause(err)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return domain.Property{}, commonerrors.ErrInternalError.WithCause(err)
	}

	created, err := s.repo.Create(ctx, domain.NewProperty{
		ID:          domain.ID(id),
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Price:       input.Price,
		OwnerID:     ownerID,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"action":   "create_property_failed",
		}).Errorf("create property failed: %v", err)
		return domain.Property{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"property_id": string(created.ID),
		"owner_id":    ownerID,
		"action":      "property_created",
	}).Info("property created")

	return created, nil
}

// CreateProperties inserts the whole batch atomically, mirroring the bulk
// user creation semantics: any failure persists nothing.
func (s *Service) CreateProperties(ctx context.Context, ownerID string, inputs []CreateInput) ([]domain.Property, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	invalid := 0
	for _, in := range inputs {
		if err := validate.Struct(in); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return nil, ErrMissingFields.WithDetails(map[string]any{"invalidCount": invalid})
	}

	batch := make([]domain.NewProperty, len(inputs))
	for i, in := range inputs {
		id, err := s.ids.NewID()
		if err != nil {
			return nil, commonerrors.ErrInternalError.WithCause(err)
		}
		batch[i] = domain.NewProperty{
			ID:          domain.ID(id),
			Title:       in.Title,
			Description: in.Description,
			Address:     in.Address,
			Price:       in.Price,
			OwnerID:     ownerID,
		}
	}

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"count":    len(inputs),
			"action":   "create_properties_failed",
		}).Errorf("create properties failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"owner_id": ownerID,
		"count":    len(created),
		"action":   "properties_created",
	}).Info("properties created")

	return created, nil
}

func (s *Service) GetProperty(ctx context.Context, id domain.ID) (domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, proprepo.ErrPropertyNotFound) {
			return domain.Property{}, commonerrors.ErrPropertyNotFound
		}
		return domain.Property{}, commonerrors.ErrInternalError.WithCause(err)
	}
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context) ([]domain.Property, error) {
	props, err := s.repo.List(ctx)
	if err != nil {
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return props, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id domain.ID, upd domain.Update) (domain.Property, error) {
	p, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, proprepo.ErrPropertyNotFound) {
			return domain.Property{}, commonerrors.ErrPropertyNotFound
		}
		return domain.Property{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"property_id": string(id),
		"action":      "property_updated",
	}).Info("property updated")

	return p, nil
}

func (s *Service) DeleteProperty(ctx context.Context, id domain.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, proprepo.ErrPropertyNotFound) {
			return commonerrors.ErrPropertyNotFound
		}
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"property_id": string(id),
		"action":      "property_deleted",
	}).Info("property deleted")

	return nil
}
