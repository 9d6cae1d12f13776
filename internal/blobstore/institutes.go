package blobstore

import (
	"context"
	"sort"

	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

type instituteStore struct {
	store *Store
}

func (s instituteStore) List(ctx context.Context, filter repository.InstituteFilter) ([]models.Institute, error) {
	var institutes []models.Institute
	err := s.store.view(ctx, func(state State) error {
		for _, inst := range state.Institutes {
			if filter.VerifiedStatus != "" && inst.VerifiedStatus != filter.VerifiedStatus {
				continue
			}
			if filter.City != "" && inst.City != filter.City {
				continue
			}
			institutes = append(institutes, inst)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(institutes, func(i, j int) bool {
		return institutes[i].CreatedAt.After(institutes[j].CreatedAt)
	})
	return institutes, nil
}

func (s instituteStore) GetByID(ctx context.Context, instID string) (models.Institute, error) {
	var institute models.Institute
	err := s.store.view(ctx, func(state State) error {
		for _, inst := range state.Institutes {
			if inst.InstID == instID {
				institute = inst
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return institute, err
}

func (s instituteStore) GetByUserID(ctx context.Context, userID string) (models.Institute, error) {
	var institute models.Institute
	err := s.store.view(ctx, func(state State) error {
		for _, inst := range state.Institutes {
			if inst.UserID == userID {
				institute = inst
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return institute, err
}

func (s instituteStore) Create(ctx context.Context, institute *models.Institute) error {
	return s.store.update(ctx, func(state *State) error {
		state.Institutes = append(state.Institutes, *institute)
		return nil
	})
}

func (s instituteStore) Update(ctx context.Context, institute *models.Institute) error {
	return s.store.update(ctx, func(state *State) error {
		for i, inst := range state.Institutes {
			if inst.InstID == institute.InstID {
				state.Institutes[i] = *institute
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type reactivationStore struct {
	store *Store
}

func (s reactivationStore) List(ctx context.Context, filter repository.ReactivationFilter) ([]models.ReactivationRequest, error) {
	var requests []models.ReactivationRequest
	err := s.store.view(ctx, func(state State) error {
		for _, req := range state.Reactivations {
			if filter.InstID != "" && req.InstID != filter.InstID {
				continue
			}
			if filter.Status != "" && req.Status != filter.Status {
				continue
			}
			requests = append(requests, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	return requests, nil
}

func (s reactivationStore) GetByID(ctx context.Context, requestID string) (models.ReactivationRequest, error) {
	var request models.ReactivationRequest
	err := s.store.view(ctx, func(state State) error {
		for _, req := range state.Reactivations {
			if req.RequestID == requestID {
				request = req
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return request, err
}

func (s reactivationStore) GetPendingByInstitute(ctx context.Context, instID string) (models.ReactivationRequest, error) {
	requests, err := s.List(ctx, repository.ReactivationFilter{
		InstID: instID,
		Status: models.RequestStatusPending,
	})
	if err != nil {
		return models.ReactivationRequest{}, err
	}
	if len(requests) == 0 {
		return models.ReactivationRequest{}, repository.ErrNotFound
	}
	return requests[0], nil
}

func (s reactivationStore) Create(ctx context.Context, request *models.ReactivationRequest) error {
	return s.store.update(ctx, func(state *State) error {
		state.Reactivations = append(state.Reactivations, *request)
		return nil
	})
}

func (s reactivationStore) Update(ctx context.Context, request *models.ReactivationRequest) error {
	return s.store.update(ctx, func(state *State) error {
		for i, req := range state.Reactivations {
			if req.RequestID == request.RequestID {
				state.Reactivations[i] = *request
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
