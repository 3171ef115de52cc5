package orders

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	"github.com/teetribe/teetribe-backend/pkg/enums"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartClearer empties the shopper's remote cart once the order is committed.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

// PriceLookup resolves current catalog data for the ordered products.
type PriceLookup interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

// PlacementRecorder counts committed orders.
type PlacementRecorder interface {
	IncPlaced(paymentMethod string)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Carts   CartClearer
	Catalog PriceLookup
	Metrics PlacementRecorder
	Logger  *logger.Logger
}

// Service places and lists orders.
type Service interface {
	PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (PlaceOrderResult, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	carts   CartClearer
	catalog PriceLookup
	metrics PlacementRecorder
	logg    *logger.Logger
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		carts:   params.Carts,
		catalog: params.Catalog,
		metrics: params.Metrics,
		logg:    logg,
	}, nil
}

// PlaceOrder sanitizes the submitted items, recomputes the total, persists the
// order with its line items in one transaction and then clears the remote cart.
func (s *service) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (PlaceOrderResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PlaceOrderResult{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	ctx = s.logg.WithUserID(ctx, userID)

	lines := cart.Sanitize(input.Items)
	if len(lines) == 0 {
		return PlaceOrderResult{}, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
	}

	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return PlaceOrderResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	lines, err = s.reprice(ctx, lines)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	order := buildOrder(userID, lines, input, method)
	if client := decimal.NewFromFloat(input.Total).Round(2); !client.Equal(order.Total) {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"client_total": client.String(),
			"server_total": order.Total.String(),
		}), "orders.total_mismatch")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return PlaceOrderResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	ctx = s.logg.WithField(ctx, "order_id", order.ID.String())
	if err := s.carts.Clear(ctx, userID); err != nil && !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		s.logg.WarnErr(ctx, "orders.clear_cart_failed", err)
	}
	if s.metrics != nil {
		s.metrics.IncPlaced(method.String())
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"lines": len(order.Items),
		"total": order.Total.String(),
	}), "orders.placed")

	return PlaceOrderResult{
		Message: placedMessage,
		OrderID: order.ID.String(),
		Status:  order.Status.String(),
	}, nil
}

// ListOrders returns the user's order history newest first.
func (s *service) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

// reprice replaces client-supplied prices and names with the catalog's when
// the product is known. Unknown ids keep their sanitized values.
func (s *service) reprice(ctx context.Context, lines []cart.Line) ([]cart.Line, error) {
	if s.catalog == nil {
		return lines, nil
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	found, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		product, ok := found[lines[i].ID]
		if !ok {
			continue
		}
		lines[i].Price = product.Price
		lines[i].Name = product.Name
		if lines[i].Image == "" {
			lines[i].Image = product.Image
		}
	}
	return lines, nil
}

func buildOrder(userID string, lines []cart.Line, input PlaceOrderInput, method enums.PaymentMethod) *models.Order {
	total := decimal.Zero
	items := make([]models.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		unit := decimal.NewFromFloat(line.Price).Round(2)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderLineItem{
			ProductID: line.ID,
			Name:      line.Name,
			Image:     line.Image,
			Size:      line.Size,
			UnitPrice: unit,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
	}
	return &models.Order{
		UserID:        userID,
		Total:         total,
		Contact:       input.Contact.Trimmed(),
		Shipping:      input.Shipping.Trimmed(),
		PaymentMethod: method,
		Status:        enums.OrderStatusPending,
		Items:         items,
	}
}
