package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).Preload("Items").First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByTrackingNumber retrieves an order with its items by tracking number.
func (repo *orderRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).Preload("Items").
		First(&orderM, "tracking_number = ?", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by tracking number")
	}

	return toOrderDomain(&orderM), nil
}

// ListByEmail returns all orders placed with the given customer email, newest first.
func (repo *orderRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	var ordersM []model.OrderModel
	err := repo.db.WithContext(ctx).Preload("Items").
		Where("LOWER(customer_email) = LOWER(?)", email).
		Order("order_date DESC").
		Find(&ordersM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by email")
	}

	return toOrderDomainList(ordersM), nil
}

// List returns all orders, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var ordersM []model.OrderModel
	err := repo.db.WithContext(ctx).Preload("Items").
		Order("order_date DESC").
		Find(&ordersM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainList(ordersM), nil
}

// Create persists a new order together with its items. GORM inserts the
// association rows alongside the order row.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("tracking number already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
	}

	return nil
}

// Update modifies an order's status and contact fields. Items are immutable
// and never touched.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"customer_name":    order.CustomerName,
			"customer_email":   order.CustomerEmail,
			"customer_address": order.CustomerAddress,
			"customer_phone":   order.CustomerPhone,
			"status":           order.Status.String(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order permanently, deleting its items first to satisfy
// referential integrity.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.OrderItemModel{}, "order_id = ?", id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		CustomerName:    data.CustomerName,
		CustomerEmail:   data.CustomerEmail,
		CustomerAddress: data.CustomerAddress,
		CustomerPhone:   data.CustomerPhone,
		OrderDate:       data.OrderDate,
		TotalAmount:     data.TotalAmount,
		DeliveryCharge:  data.DeliveryCharge,
		PaymentMethod:   data.PaymentMethod,
		Status:          entity.OrderStatus(data.Status),
		TrackingNumber:  data.TrackingNumber,
		Items:           items,
	}
}

func toOrderDomainList(data []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for i := range data {
		orders = append(orders, toOrderDomain(&data[i]))
	}

	return orders
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		CustomerName:    data.CustomerName,
		CustomerEmail:   data.CustomerEmail,
		CustomerAddress: data.CustomerAddress,
		CustomerPhone:   data.CustomerPhone,
		OrderDate:       data.OrderDate,
		TotalAmount:     data.TotalAmount,
		DeliveryCharge:  data.DeliveryCharge,
		PaymentMethod:   data.PaymentMethod,
		Status:          data.Status.String(),
		TrackingNumber:  data.TrackingNumber,
		Items:           items,
	}
}
