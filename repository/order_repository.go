package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rashmithaRKL/cake/models"
)

// ErrVersionConflict is returned when an optimistic save loses a race
// against another writer on the same order.
var ErrVersionConflict = errors.New("order was modified concurrently")

// OrderRepository is the persistence boundary of the order ledger. Only the
// order service writes through it.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, filters models.OrderFilters, page, limit int) ([]models.Order, int64, error)
	// Update persists the order with compare-and-swap on Version, returning
	// ErrVersionConflict if another writer got there first.
	Update(ctx context.Context, order *models.Order) error
	// NextOrderNumber atomically advances the per-day counter and returns
	// the next YYYYMMDD-NNNN order number for the given day.
	NextOrderNumber(ctx context.Context, now time.Time) (string, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a GORM-backed order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "payment_transaction_id = ?", transactionID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filters models.OrderFilters, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filters.Status != "" {
		query = query.Where("order_status = ?", filters.Status)
	}
	if filters.StartDate != nil && filters.EndDate != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *filters.StartDate, *filters.EndDate)
	}
	if filters.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filters.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	prev := order.Version
	order.Version = prev + 1

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, prev).
		Select("*").
		Omit("id", "created_at", "Items").
		Updates(order)
	if res.Error != nil {
		order.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		order.Version = prev
		return ErrVersionConflict
	}
	return nil
}

func (r *GormOrderRepository) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	day := now.Format("20060102")

	var counter models.OrderCounter
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"seq": gorm.Expr("seq + 1")}),
		}).Create(&models.OrderCounter{Date: day, Seq: 1}).Error; err != nil {
			return err
		}
		return tx.First(&counter, "date = ?", day).Error
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", day, counter.Seq), nil
}
