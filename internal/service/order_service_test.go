package service

import (
	"context"
	"testing"

	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrderService(orders *MockOrderRepository, plants *MockPlantRepository, mailer *MockSender) *OrderService {
	return NewOrderService(orders, plants, mailer, logger.NewNop())
}

func TestOrderService_Checkout(t *testing.T) {
	orders := new(MockOrderRepository)
	plants := new(MockPlantRepository)
	mailer := new(MockSender)
	svc := newOrderService(orders, plants, mailer)

	id := primitive.NewObjectID()
	orders.On("Create", mock.Anything, mock.Anything).Return(id, nil)
	mailer.On("Send", mock.Anything, "buyer@example.com", mock.Anything, mock.Anything).Return(nil)

	order := &entity.Order{
		Customer: entity.Customer{Email: "buyer@example.com"},
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 3,
		Seller:   "seller@example.com",
	}
	got, err := svc.Checkout(context.Background(), order, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	mailer.AssertExpectations(t)
}

func TestOrderService_Checkout_MailFailureIsNotFatal(t *testing.T) {
	orders := new(MockOrderRepository)
	mailer := new(MockSender)
	svc := newOrderService(orders, new(MockPlantRepository), mailer)

	orders.On("Create", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	order := &entity.Order{
		Customer: entity.Customer{Email: "buyer@example.com"},
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 1,
	}
	_, err := svc.Checkout(context.Background(), order, "buyer@example.com")
	assert.NoError(t, err)
}

func TestOrderService_Checkout_CustomerMismatch(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockPlantRepository), new(MockSender))

	order := &entity.Order{
		Customer: entity.Customer{Email: "someoneelse@example.com"},
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 1,
	}
	_, err := svc.Checkout(context.Background(), order, "buyer@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderService_ListForCustomer_JoinOmitsMissingPlants(t *testing.T) {
	orders := new(MockOrderRepository)
	plants := new(MockPlantRepository)
	svc := newOrderService(orders, plants, new(MockSender))

	livePlant := entity.Plant{
		ID:        primitive.NewObjectID(),
		PlantName: "Snake Plant",
		Category:  "Indoor",
		Image:     "https://img.example.com/snake.jpg",
	}
	deletedPlantID := primitive.NewObjectID()

	stored := []entity.Order{
		{ID: primitive.NewObjectID(), Customer: entity.Customer{Email: "buyer@example.com"}, PlantID: livePlant.ID.Hex(), Quantity: 2},
		{ID: primitive.NewObjectID(), Customer: entity.Customer{Email: "buyer@example.com"}, PlantID: deletedPlantID.Hex(), Quantity: 1},
		{ID: primitive.NewObjectID(), Customer: entity.Customer{Email: "buyer@example.com"}, PlantID: "not-an-object-id", Quantity: 1},
	}
	orders.On("ListByCustomer", mock.Anything, "buyer@example.com").Return(stored, nil)
	// Only coercible references reach the batch load.
	plants.On("FindByIDs", mock.Anything, []primitive.ObjectID{livePlant.ID, deletedPlantID}).
		Return([]entity.Plant{livePlant}, nil)

	views, err := svc.ListForCustomer(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	// The deleted plant's order and the malformed reference are both omitted
	// without error.
	require.Len(t, views, 1)
	assert.Equal(t, livePlant.PlantName, views[0].PlantName)
	assert.Equal(t, livePlant.Image, views[0].PlantImage)
	assert.Equal(t, livePlant.Category, views[0].PlantCategory)
	assert.Equal(t, 2, views[0].Quantity)
}

func TestOrderService_ListForSeller(t *testing.T) {
	orders := new(MockOrderRepository)
	plants := new(MockPlantRepository)
	svc := newOrderService(orders, plants, new(MockSender))

	plant := entity.Plant{ID: primitive.NewObjectID(), PlantName: "Fiddle Leaf Fig"}
	stored := []entity.Order{
		{ID: primitive.NewObjectID(), Seller: "seller@example.com", PlantID: plant.ID.Hex(), Quantity: 3},
	}
	orders.On("ListBySeller", mock.Anything, "seller@example.com").Return(stored, nil)
	plants.On("FindByIDs", mock.Anything, []primitive.ObjectID{plant.ID}).Return([]entity.Plant{plant}, nil)

	views, err := svc.ListForSeller(context.Background(), "seller@example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Fiddle Leaf Fig", views[0].PlantName)
}

func TestOrderService_UpdateStatus_OwnershipEnforced(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockPlantRepository), new(MockSender))

	id := primitive.NewObjectID()
	orders.On("FindByID", mock.Anything, id).Return(&entity.Order{ID: id, Seller: "owner@example.com"}, nil)

	err := svc.UpdateStatus(context.Background(), id, entity.OrderProcessing, "intruder@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_UnrestrictedTransitions(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockPlantRepository), new(MockSender))

	id := primitive.NewObjectID()
	orders.On("FindByID", mock.Anything, id).Return(&entity.Order{ID: id, Seller: "seller@example.com", Status: entity.OrderDelivered}, nil)
	orders.On("UpdateStatus", mock.Anything, id, entity.OrderPending).Return(nil)

	// Delivered back to Pending is allowed.
	err := svc.UpdateStatus(context.Background(), id, entity.OrderPending, "seller@example.com")
	assert.NoError(t, err)
}

func TestOrderService_CancelByCustomer_DeliveredConflict(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockPlantRepository), new(MockSender))

	id := primitive.NewObjectID()
	orders.On("FindByID", mock.Anything, id).Return(&entity.Order{
		ID:       id,
		Customer: entity.Customer{Email: "buyer@example.com"},
		Status:   entity.OrderDelivered,
	}, nil)

	err := svc.CancelByCustomer(context.Background(), id, "buyer@example.com")
	assert.ErrorIs(t, err, ErrOrderDelivered)
	orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderService_CancelByCustomer_Pending(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockPlantRepository), new(MockSender))

	id := primitive.NewObjectID()
	orders.On("FindByID", mock.Anything, id).Return(&entity.Order{
		ID:       id,
		Customer: entity.Customer{Email: "buyer@example.com"},
		Status:   entity.OrderPending,
	}, nil)
	orders.On("Delete", mock.Anything, id).Return(nil)

	err := svc.CancelByCustomer(context.Background(), id, "buyer@example.com")
	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestOrderService_CancelBySeller_Unconditional(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockPlantRepository), new(MockSender))

	id := primitive.NewObjectID()
	orders.On("FindByID", mock.Anything, id).Return(&entity.Order{
		ID:     id,
		Seller: "seller@example.com",
		Status: entity.OrderDelivered,
	}, nil)
	orders.On("Delete", mock.Anything, id).Return(nil)

	err := svc.CancelBySeller(context.Background(), id, "seller@example.com")
	assert.NoError(t, err)
}
