package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

// CustomerService manages storefront accounts. Passwords are stored as
// bcrypt hashes; email uniqueness is case-insensitive. New customers start
// with zero loyalty points.
type CustomerService struct {
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, log *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, log: log}
}

func (s *CustomerService) Register(ctx context.Context, name, email, password string) (*domain.Customer, error) {
	if name == "" || password == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := domain.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.customers.Create(ctx, &customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.log.Info("customer registered", zap.Int64("customer_id", customer.ID))
	return &customer, nil
}

func (s *CustomerService) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}
