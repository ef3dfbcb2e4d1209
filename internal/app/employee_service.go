package app

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

type EmployeeService struct {
	repo     domain.EmployeeRepository
	cache    domain.Cache[domain.Employee]
	notifier domain.Notifier
	group    singleflight.Group
}

func NewEmployeeService(repo domain.EmployeeRepository, cache domain.Cache[domain.Employee], notifier domain.Notifier) *EmployeeService {
	return &EmployeeService{repo: repo, cache: cache, notifier: notifier}
}

func (s *EmployeeService) FindAll(ctx context.Context, filter domain.EmployeeFilter, p domain.Pageable) (*domain.PageResponse[domain.Employee], error) {
	p = p.Normalize()
	employees, total, err := s.repo.FindAll(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	resp := domain.NewPageResponse(employees, total, p)
	return &resp, nil
}

func (s *EmployeeService) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	key := strconv.FormatInt(id, 10)
	result, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return &cached, nil
		}

		employee, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cache.Put(ctx, key, *employee)
		return employee, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Employee), nil
}

func (s *EmployeeService) Create(ctx context.Context, req domain.EmployeeCreateRequest) (*domain.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Name:     req.Name,
		Salary:   req.Salary,
		Position: req.Position,
	}

	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, strconv.FormatInt(created.ID, 10), *created)
	s.notifier.Broadcast(domain.ChannelEmployee, domain.OperationCreate, created)
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req domain.EmployeeUpdateRequest) (*domain.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}

	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, strconv.FormatInt(updated.ID, 10), *updated)
	s.notifier.Broadcast(domain.ChannelEmployee, domain.OperationUpdate, updated)
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(ctx, strconv.FormatInt(id, 10))
	s.notifier.Broadcast(domain.ChannelEmployee, domain.OperationDelete, map[string]any{"id": id})
	return nil
}
