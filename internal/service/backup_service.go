package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"go.uber.org/zap"

	"mokha/internal/domain"
	"mokha/internal/repository"
	"mokha/internal/stock"
)

// BackupVersion marks the backup file format.
const BackupVersion = 1

// BackupPayload is the full application state. On restore, nil collections
// mean "leave unchanged" — partial backups are accepted.
type BackupPayload struct {
	Products   []domain.Product    `json:"products"`
	Categories []domain.Category   `json:"categories"`
	Orders     []domain.Order      `json:"orders"`
	Employees  []domain.Employee   `json:"employees"`
	Customers  []domain.Customer   `json:"customers"`
	Settings   *domain.AppSettings `json:"settings"`
}

// BackupFile is the on-disk document: version marker, timestamp, payload.
type BackupFile struct {
	Version   int           `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Data      BackupPayload `json:"data"`
}

// BackupService snapshots and restores the whole store.
type BackupService struct {
	products      repository.ProductRepository
	orders        repository.OrderRepository
	customers     repository.CustomerRepository
	employees     repository.EmployeeRepository
	settings      repository.SettingsRepository
	notifications repository.NotificationRepository
	tx            repository.TxManager
	log           *zap.Logger
	now           func() time.Time
}

func NewBackupService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	employees repository.EmployeeRepository,
	settings repository.SettingsRepository,
	notifications repository.NotificationRepository,
	tx repository.TxManager,
	log *zap.Logger,
) *BackupService {
	return &BackupService{
		products:      products,
		orders:        orders,
		customers:     customers,
		employees:     employees,
		settings:      settings,
		notifications: notifications,
		tx:            tx,
		log:           log,
		now:           time.Now,
	}
}

// Snapshot serializes the full state as a versioned JSON document.
func (s *BackupService) Snapshot(ctx context.Context, w io.Writer) (string, error) {
	var file BackupFile
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		products, err := s.products.List(ctx, repository.ProductFilter{})
		if err != nil {
			return err
		}
		categories, err := s.settings.Categories(ctx)
		if err != nil {
			return err
		}
		orders, err := s.orders.List(ctx)
		if err != nil {
			return err
		}
		employees, err := s.employees.List(ctx)
		if err != nil {
			return err
		}
		customers, err := s.customers.List(ctx)
		if err != nil {
			return err
		}
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return err
		}
		file = BackupFile{
			Version:   BackupVersion,
			Timestamp: s.now().UTC(),
			Data: BackupPayload{
				Products:   products,
				Categories: categories,
				Orders:     orders,
				Employees:  employees,
				Customers:  customers,
				Settings:   &settings,
			},
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return "", err
	}
	return "pos-backup-" + file.Timestamp.Format("2006-01-02") + ".json", nil
}

// Restore parses and validates a backup document, then applies it in one
// transaction. Validation happens entirely before the first write, so a
// malformed file leaves the prior state untouched. Missing optional
// collections leave the corresponding state unchanged; date fields come
// back as real timestamps through the JSON decoding.
func (s *BackupService) Restore(ctx context.Context, r io.Reader) error {
	var file BackupFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return ErrInvalidBackup
	}
	if file.Data.Products == nil || file.Data.Settings == nil {
		return ErrInvalidBackup
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.products.ReplaceAll(ctx, file.Data.Products); err != nil {
			return err
		}
		if err := s.notifications.Replace(ctx, stock.Scan(file.Data.Products)); err != nil {
			return err
		}
		if err := s.settings.Update(ctx, *file.Data.Settings); err != nil {
			return err
		}
		if file.Data.Categories != nil {
			if err := s.settings.ReplaceCategories(ctx, file.Data.Categories); err != nil {
				return err
			}
		}
		if file.Data.Orders != nil {
			if err := s.orders.ReplaceAll(ctx, file.Data.Orders); err != nil {
				return err
			}
		}
		if file.Data.Employees != nil {
			if err := s.employees.ReplaceAll(ctx, file.Data.Employees); err != nil {
				return err
			}
		}
		if file.Data.Customers != nil {
			if err := s.customers.ReplaceAll(ctx, file.Data.Customers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("backup restored",
		zap.Int("version", file.Version),
		zap.Int("products", len(file.Data.Products)),
	)
	return nil
}
