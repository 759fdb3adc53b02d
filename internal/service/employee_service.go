package service

import (
	"context"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

// EmployeeService manages back-office staff records.
type EmployeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func validEmployee(e domain.Employee) bool {
	return e.Name.EN != "" && e.Name.AR != "" && !e.Salary.IsNegative() && !e.StartDate.IsZero()
}

func (s *EmployeeService) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	if !validEmployee(e) {
		return nil, ErrInvalidInput
	}
	cp := e
	if err := s.employees.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *EmployeeService) Update(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	if e.ID <= 0 || !validEmployee(e) {
		return nil, ErrInvalidInput
	}
	cp := e
	if err := s.employees.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.employees.Delete(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}
