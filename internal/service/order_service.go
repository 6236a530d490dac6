package service

import (
	"context"
	"fmt"

	"github.com/plantnet/server/internal/adapter/email"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService owns order lifecycle and the order/plant join. Checkout and
// the stock decrement are two separate calls made by the client in sequence;
// the decrement itself is atomic but the pair is not transactional, so a
// failure between the two can leave stock and orders out of sync.
type OrderService struct {
	orders repository.OrderRepository
	plants repository.PlantRepository
	mailer email.Sender
	log    logger.Logger
}

func NewOrderService(orders repository.OrderRepository, plants repository.PlantRepository, mailer email.Sender, log logger.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		plants: plants,
		mailer: mailer,
		log:    log.With("service", "orders"),
	}
}

// Checkout inserts the order as-is. No stock check happens here.
func (s *OrderService) Checkout(ctx context.Context, order *entity.Order, customerEmail string) (primitive.ObjectID, error) {
	if order.Customer.Email == "" {
		order.Customer.Email = customerEmail
	}
	if order.Customer.Email != customerEmail {
		return primitive.NilObjectID, fmt.Errorf("%w: order customer does not match caller", ErrForbidden)
	}
	if err := order.Validate(); err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}

	// Confirmation mail is best-effort; checkout has already succeeded.
	subject := "Your plantNet order is confirmed"
	body := fmt.Sprintf("Order %s for %d item(s) has been placed.", id.Hex(), order.Quantity)
	if mailErr := s.mailer.Send(ctx, order.Customer.Email, subject, body); mailErr != nil {
		s.log.Warnf("order confirmation email failed for %s: %v", order.Customer.Email, mailErr)
	}

	s.log.Infof("order %s created for %s", id.Hex(), order.Customer.Email)
	return id, nil
}

// ListForCustomer returns the buyer's orders augmented with plant display
// fields. Orders whose plant reference cannot be resolved are omitted
// silently rather than surfaced as errors.
func (s *OrderService) ListForCustomer(ctx context.Context, email string) ([]entity.OrderView, error) {
	orders, err := s.orders.ListByCustomer(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.joinPlants(ctx, orders)
}

// ListForSeller filters by the order's recorded seller field. That field is
// expected to match the plant's seller but is never cross-validated.
func (s *OrderService) ListForSeller(ctx context.Context, email string) ([]entity.OrderView, error) {
	orders, err := s.orders.ListBySeller(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.joinPlants(ctx, orders)
}

// joinPlants resolves each order's plant reference in one batched read and
// projects the display fields. An order is dropped when its plantId is not a
// valid ObjectID or when the plant no longer exists.
func (s *OrderService) joinPlants(ctx context.Context, orders []entity.Order) ([]entity.OrderView, error) {
	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		id, err := primitive.ObjectIDFromHex(o.PlantID)
		if err != nil {
			continue
		}
		if _, ok := seen[o.PlantID]; ok {
			continue
		}
		seen[o.PlantID] = struct{}{}
		ids = append(ids, id)
	}

	plants, err := s.plants.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Plant, len(plants))
	for _, p := range plants {
		byID[p.ID.Hex()] = p
	}

	views := make([]entity.OrderView, 0, len(orders))
	for _, o := range orders {
		plant, ok := byID[o.PlantID]
		if !ok {
			continue
		}
		views = append(views, entity.OrderView{
			Order:         o,
			PlantName:     plant.PlantName,
			PlantImage:    plant.Image,
			PlantCategory: plant.Category,
		})
	}
	return views, nil
}

// UpdateStatus overwrites the order status. Transitions are deliberately
// unrestricted; a seller may move an order back from Delivered.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus, sellerEmail string) error {
	if status == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Seller != sellerEmail {
		return fmt.Errorf("%w: order belongs to another seller", ErrForbidden)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// CancelBySeller deletes the order regardless of status.
func (s *OrderService) CancelBySeller(ctx context.Context, id primitive.ObjectID, sellerEmail string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Seller != sellerEmail {
		return fmt.Errorf("%w: order belongs to another seller", ErrForbidden)
	}
	return s.orders.Delete(ctx, id)
}

// CancelByCustomer deletes the order unless it has been delivered.
func (s *OrderService) CancelByCustomer(ctx context.Context, id primitive.ObjectID, customerEmail string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Customer.Email != customerEmail {
		return fmt.Errorf("%w: order belongs to another customer", ErrForbidden)
	}
	if !order.CancellableByCustomer() {
		return ErrOrderDelivered
	}
	return s.orders.Delete(ctx, id)
}
