package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/config"
	"github.com/tu-usuario/agroportal-api/pkg/jwt"
	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	repository.ProductRepository // métodos no usados entran en pánico
	product                      *entity.Product
	decremented                  int
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		cp := *r.product
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, _ int64, quantity int) error {
	if r.product == nil || r.product.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	r.product.Stock -= quantity
	r.decremented += quantity
	return nil
}

type fakeOrderRepo struct {
	repository.OrderRepository
	inserted []entity.Order
}

func (r *fakeOrderRepo) Insert(_ context.Context, o *entity.Order) error {
	o.ID = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, *o)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	for _, o := range r.inserted {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id int64, o *entity.Order) error {
	for i := range r.inserted {
		if r.inserted[i].ID == id {
			r.inserted[i] = *o
			r.inserted[i].ID = id
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner pasa los repos tal cual; registra si el callback falló para
// comprobar que nada quedó a medias.
type fakeTxRunner struct {
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	lastError error
}

func (r *fakeTxRunner) RunOrder(ctx context.Context, fn func(repository.OrderRepository, repository.ProductRepository) error) error {
	r.lastError = fn(r.orders, r.products)
	return r.lastError
}

type fakeNotifRepo struct {
	repository.NotificationRepository
	inserted []entity.Notification
}

func (r *fakeNotifRepo) Insert(_ context.Context, n *entity.Notification) error {
	r.inserted = append(r.inserted, *n)
	return nil
}

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (r *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func armarOrderUC(product *entity.Product) (*OrderUseCase, *fakeOrderRepo, *fakeProductRepo, *fakeNotifRepo) {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	orders := &fakeOrderRepo{}
	products := &fakeProductRepo{product: product}
	notifs := &fakeNotifRepo{}
	users := &fakeUsers{byEmail: map[string]*entity.User{
		"admin@agro.com": {ID: "admin-1", Email: "admin@agro.com"},
	}}
	notifier := NewNotifier(notifs, users, config.AdminConfig{Emails: []string{"admin@agro.com"}}, log)
	uc := NewOrderUseCase(orders, &fakeTxRunner{orders: orders, products: products}, notifier, log)
	return uc, orders, products, notifs
}

var comprador = jwt.Identity{UserID: "u-1", Email: "juan@agro.com", FullName: "Juan Pérez", Role: entity.RoleUser}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_DescuentaStockYCalculaTotal(t *testing.T) {
	uc, orders, products, notifs := armarOrderUC(&entity.Product{
		ID: 7, Name: "Miel de abeja", Price: decimal.RequireFromString("12.50"), Stock: 10,
	})

	order, err := uc.Create(context.Background(), comprador, dto.OrderRequest{ProductID: 7, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, "Miel de abeja", order.ProductName, "el nombre sale del producto, no del cliente")
	assert.True(t, decimal.RequireFromString("37.50").Equal(order.TotalPrice), "total = precio * cantidad, calculado en el servidor")
	assert.Equal(t, entity.OrderPending, order.OrderStatus)
	assert.Equal(t, "Juan Pérez", order.BuyerName)
	assert.Equal(t, 7, products.product.Stock, "el stock quedó descontado")
	require.Len(t, orders.inserted, 1)

	require.Len(t, notifs.inserted, 1, "los admins reciben la notificación del pedido")
	assert.Equal(t, NotifNewOrder, notifs.inserted[0].Type)
	assert.Equal(t, "admin-1", notifs.inserted[0].UserID)
}

func TestOrderCreate_StockInsuficienteNoPersisteNada(t *testing.T) {
	uc, orders, products, notifs := armarOrderUC(&entity.Product{
		ID: 7, Name: "Miel", Price: decimal.NewFromInt(10), Stock: 2,
	})

	_, err := uc.Create(context.Background(), comprador, dto.OrderRequest{ProductID: 7, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, orders.inserted)
	assert.Equal(t, 2, products.product.Stock)
	assert.Empty(t, notifs.inserted)
}

func TestOrderCreate_ProductoInexistente(t *testing.T) {
	uc, orders, _, _ := armarOrderUC(nil)

	_, err := uc.Create(context.Background(), comprador, dto.OrderRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, orders.inserted)
}

func TestOrderUpdateStatus_NotificaAlComprador(t *testing.T) {
	uc, orders, _, notifs := armarOrderUC(&entity.Product{
		ID: 7, Name: "Miel", Price: decimal.NewFromInt(10), Stock: 10,
	})
	ctx := context.Background()

	_, err := uc.Create(ctx, comprador, dto.OrderRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	notifs.inserted = nil

	order, err := uc.UpdateStatus(ctx, 1, entity.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, order.OrderStatus)
	assert.Equal(t, entity.OrderConfirmed, orders.inserted[0].OrderStatus)

	require.Len(t, notifs.inserted, 1)
	assert.Equal(t, NotifOrderStatus, notifs.inserted[0].Type)
	assert.Equal(t, comprador.UserID, notifs.inserted[0].UserID, "la notificación va al dueño del pedido")
}

func TestOrderUpdateStatus_PedidoInexistente(t *testing.T) {
	uc, _, _, _ := armarOrderUC(nil)
	_, err := uc.UpdateStatus(context.Background(), 42, entity.OrderCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
