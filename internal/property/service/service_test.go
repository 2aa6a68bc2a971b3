package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	commonerrors "github.com/realtyhub/backend/internal/common/errors"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/property/domain"
	proprepo "github.com/realtyhub/backend/internal/property/repository"
	"github.com/realtyhub/backend/internal/property/service"
)

type mockRepo struct {
	createFunc      func(ctx context.Context, p domain.NewProperty) (domain.Property, error)
	createBatchFunc func(ctx context.Context, ps []domain.NewProperty) ([]domain.Property, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.Property, error)
	listFunc        func(ctx context.Context) ([]domain.Property, error)
	updateFunc      func(ctx context.Context, id domain.ID, upd domain.Update) (domain.Property, error)
	deleteFunc      func(ctx context.Context, id domain.ID) error
}

func (m *mockRepo) Create(ctx context.Context, p domain.NewProperty) (domain.Property, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return domain.Property{
		ID:      p.ID,
		Title:   p.Title,
		Address: p.Address,
		Price:   p.Price,
		OwnerID: p.OwnerID,
	}, nil
}

func (m *mockRepo) CreateBatch(ctx context.Context, ps []domain.NewProperty) ([]domain.Property, error) {
	if m.createBatchFunc != nil {
		return m.createBatchFunc(ctx, ps)
	}
	created := make([]domain.Property, len(ps))
	for i, p := range ps {
		created[i] = domain.Property{ID: p.ID, Title: p.Title, OwnerID: p.OwnerID}
	}
	return created, nil
}

func (m *mockRepo) FindByID(ctx context.Context, id domain.ID) (domain.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Property{}, proprepo.ErrPropertyNotFound
}

func (m *mockRepo) List(ctx context.Context) ([]domain.Property, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepo) Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Property, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return domain.Property{}, proprepo.ErrPropertyNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type seqIDs struct{ n int }

func (s *seqIDs) NewID() (string, error) {
	s.n++
	return fmt.Sprintf("prop-%d", s.n), nil
}

func newService(t *testing.T, repo *mockRepo) *service.Service {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return service.NewService(repo, &seqIDs{}, log)
}

func validInput() service.CreateInput {
	return service.CreateInput{
		Title:       "Sunny Loft",
		Description: "Top floor, south facing",
		Address:     "5 Harbor St",
		Price:       325000,
	}
}

func TestCreateProperty_Success(t *testing.T) {
	svc := newService(t, &mockRepo{})

	created, err := svc.CreateProperty(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if created.ID == "" {
		t.Error("created property has no id")
	}
	if created.OwnerID != "owner-1" {
		t.Errorf("owner = %q, want owner-1", created.OwnerID)
	}
}

func TestCreateProperty_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.CreateInput)
	}{
		{name: "missing title", mutate: func(in *service.CreateInput) { in.Title = "" }},
		{name: "missing address", mutate: func(in *service.CreateInput) { in.Address = "" }},
		{name: "zero price", mutate: func(in *service.CreateInput) { in.Price = 0 }},
		{name: "negative price", mutate: func(in *service.CreateInput) { in.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{
				createFunc: func(context.Context, domain.NewProperty) (domain.Property, error) {
					t.Fatal("invalid input must not reach the store")
					return domain.Property{}, nil
				},
			}
			svc := newService(t, repo)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateProperty(context.Background(), "owner-1", input)
			if !errors.Is(err, service.ErrMissingFields) {
				t.Fatalf("err = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestCreateProperties_Success(t *testing.T) {
	var batchLen int
	svc := newService(t, &mockRepo{
		createBatchFunc: func(_ context.Context, ps []domain.NewProperty) ([]domain.Property, error) {
			batchLen = len(ps)
			created := make([]domain.Property, len(ps))
			for i, p := range ps {
				created[i] = domain.Property{ID: p.ID, Title: p.Title, OwnerID: p.OwnerID}
			}
			return created, nil
		},
	})

	inputs := []service.CreateInput{validInput(), validInput(), validInput()}
	created, err := svc.CreateProperties(context.Background(), "owner-1", inputs)
	if err != nil {
		t.Fatalf("CreateProperties: %v", err)
	}
	if batchLen != 3 {
		t.Errorf("repo received batch of %d, want 3", batchLen)
	}
	if len(created) != 3 {
		t.Fatalf("created %d, want 3", len(created))
	}

	seen := map[domain.ID]bool{}
	for _, p := range created {
		if seen[p.ID] {
			t.Errorf("duplicate id %s in batch", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestCreateProperties_EmptyBatch(t *testing.T) {
	svc := newService(t, &mockRepo{})

	_, err := svc.CreateProperties(context.Background(), "owner-1", nil)
	if !errors.Is(err, service.ErrEmptyBatch) {
		t.Fatalf("err = %v, want ErrEmptyBatch", err)
	}
}

func TestCreateProperties_InvalidEntries(t *testing.T) {
	inputs := []service.CreateInput{validInput(), {Title: "No Address", Price: 100}, validInput()}

	svc := newService(t, &mockRepo{
		createBatchFunc: func(context.Context, []domain.NewProperty) ([]domain.Property, error) {
			t.Fatal("invalid batch must not reach the store")
			return nil, nil
		},
	})

	_, err := svc.CreateProperties(context.Background(), "owner-1", inputs)
	if !errors.Is(err, service.ErrMissingFields) {
		t.Fatalf("err = %v, want ErrMissingFields", err)
	}
	de, _ := commonerrors.AsDomainError(err)
	if got := de.Details()["invalidCount"]; got != 1 {
		t.Errorf("invalidCount = %v, want 1", got)
	}
}

func TestCreateProperties_StoreFailure(t *testing.T) {
	svc := newService(t, &mockRepo{
		createBatchFunc: func(context.Context, []domain.NewProperty) ([]domain.Property, error) {
			return nil, errors.New("deadlock detected")
		},
	})

	_, err := svc.CreateProperties(context.Background(), "owner-1",
		[]service.CreateInput{validInput(), validInput()})
	if !errors.Is(err, commonerrors.ErrInternalError) {
		t.Fatalf("err = %v, want ErrInternalError", err)
	}
}

func TestGetProperty_NotFound(t *testing.T) {
	svc := newService(t, &mockRepo{})

	_, err := svc.GetProperty(context.Background(), "missing")
	if !errors.Is(err, commonerrors.ErrPropertyNotFound) {
		t.Fatalf("err = %v, want ErrPropertyNotFound", err)
	}
	de, _ := commonerrors.AsDomainError(err)
	if de.HTTPStatus() != 404 {
		t.Errorf("status = %d, want 404", de.HTTPStatus())
	}
}

func TestUpdateProperty(t *testing.T) {
	title := "Renamed Loft"
	svc := newService(t, &mockRepo{
		updateFunc: func(_ context.Context, id domain.ID, upd domain.Update) (domain.Property, error) {
			if upd.Title == nil || *upd.Title != title {
				t.Errorf("update title = %v, want %q", upd.Title, title)
			}
			return domain.Property{ID: id, Title: *upd.Title}, nil
		},
	})

	updated, err := svc.UpdateProperty(context.Background(), "prop-1", domain.Update{Title: &title})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q, want %q", updated.Title, title)
	}
}

func TestDeleteProperty_NotFound(t *testing.T) {
	svc := newService(t, &mockRepo{
		deleteFunc: func(context.Context, domain.ID) error {
			return proprepo.ErrPropertyNotFound
		},
	})

	err := svc.DeleteProperty(context.Background(), "missing")
	if !errors.Is(err, commonerrors.ErrPropertyNotFound) {
		t.Fatalf("err = %v, want ErrPropertyNotFound", err)
	}
}
