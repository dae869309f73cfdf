package employee

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) GetByAccount(ctx context.Context, accountID string) (Profile, error) {
	return s.Store.GetByAccount(ctx, accountID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool, limit, offset int) (ListResult, error) {
	return s.Store.List(ctx, activeOnly, limit, offset)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Profile, error) {
	return s.Store.Update(ctx, id, in)
}
