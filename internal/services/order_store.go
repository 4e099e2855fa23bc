package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clout_store_echo/internal/models"
)

// ErrOrderNotFound is returned when a txnid matches no persisted order
var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateTxnID is returned when a txnid collides with an existing
// order. Callers may regenerate the id and retry.
var ErrDuplicateTxnID = errors.New("order txnid already exists")

// OrderStore is the order repository used by the payment flow. The
// callback verifier is written against this interface so tests can
// substitute an in-memory fake for the database.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByTxnID(ctx context.Context, txnid string) (*models.Order, error)
	UpdateStatus(ctx context.Context, txnid string, status models.OrderStatus) error
	Update(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, txnid string) error
}

type gormOrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates the GORM-backed order repository
func NewOrderStore(db *gorm.DB) OrderStore {
	return &gormOrderStore{db: db}
}

func (s *gormOrderStore) Create(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTxnID
	}
	return err
}

func (s *gormOrderStore) GetByTxnID(ctx context.Context, txnid string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("txn_id = ?", txnid).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *gormOrderStore) UpdateStatus(ctx context.Context, txnid string, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("txn_id = ?", txnid).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *gormOrderStore) Update(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

func (s *gormOrderStore) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (s *gormOrderStore) Delete(ctx context.Context, txnid string) error {
	res := s.db.WithContext(ctx).Where("txn_id = ?", txnid).Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
