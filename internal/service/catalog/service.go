package catalog

import (
	"context"
	"io"
	"log"
	"strconv"

	"golang.org/x/sync/singleflight"

	"pizza-storefront/internal/domain"
	productrepo "pizza-storefront/internal/repository/product"
)

// Service is the read-only menu.
type Service struct {
	repo   productrepo.Repository
	group  singleflight.Group
	logger *log.Logger
}

func New(repo productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Get looks up one product. Concurrent lookups of the same id share a single query.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, shared := s.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Printf("catalog: get id=%d shared", id)
	}
	p := *v.(*domain.Product)
	return &p, nil
}
