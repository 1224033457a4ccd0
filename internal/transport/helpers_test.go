package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"samansetu/internal/domain"
	"samansetu/internal/mail"
	"samansetu/internal/middleware"
	"samansetu/internal/repository"
	"samansetu/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories so handler tests run the real service and
// middleware stack without a database.

type memUserRepository struct {
	users map[string]*domain.User
}

func (r *memUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrUserAlreadyExists
	}
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *memUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *memUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type memStorehouseRepository struct {
	storehouses map[uuid.UUID]*domain.Storehouse
}

func (r *memStorehouseRepository) Create(ctx context.Context, storehouse *domain.Storehouse) error {
	stored := *storehouse
	r.storehouses[storehouse.ID] = &stored
	return nil
}

func (r *memStorehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Storehouse, error) {
	storehouse, ok := r.storehouses[id]
	if !ok {
		return nil, repository.ErrStorehouseNotFound
	}
	copy := *storehouse
	return &copy, nil
}

func (r *memStorehouseRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Storehouse, error) {
	result := []*domain.Storehouse{}
	for _, s := range r.storehouses {
		if s.OwnerID == ownerID {
			copy := *s
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memStorehouseRepository) SearchByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Storehouse, error) {
	all, _ := r.ListByOwner(ctx, ownerID)
	needle := strings.ToLower(query)
	result := []*domain.Storehouse{}
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Name), needle) || strings.Contains(strings.ToLower(s.Location), needle) {
			result = append(result, s)
		}
	}
	return result, nil
}

type memProductRepository struct {
	products    map[uuid.UUID]*domain.Product
	users       *memUserRepository
	storehouses *memStorehouseRepository
}

func (r *memProductRepository) Create(ctx context.Context, product *domain.Product) error {
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *memProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *memProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copy := *product
	return &copy, nil
}

func (r *memProductRepository) withOwner(product *domain.Product) *domain.ProductWithOwner {
	joined := &domain.ProductWithOwner{Product: *product}
	if owner, err := r.users.FindByID(context.Background(), product.OwnerID); err == nil {
		joined.Owner = *owner
	}
	if storehouse, err := r.storehouses.FindByID(context.Background(), product.StorehouseID); err == nil {
		joined.Storehouse = *storehouse
	}
	return joined
}

func (r *memProductRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*domain.ProductWithOwner, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.withOwner(product), nil
}

func (r *memProductRepository) ListByStorehouse(ctx context.Context, storehouseID uuid.UUID) ([]*domain.Product, error) {
	result := []*domain.Product{}
	for _, p := range r.products {
		if p.StorehouseID == storehouseID {
			copy := *p
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memProductRepository) ListAllWithOwner(ctx context.Context) ([]*domain.ProductWithOwner, error) {
	result := []*domain.ProductWithOwner{}
	for _, p := range r.products {
		result = append(result, r.withOwner(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memProductRepository) Search(ctx context.Context, query string, ownerID *uuid.UUID) ([]*domain.ProductWithOwner, error) {
	all, _ := r.ListAllWithOwner(ctx)
	needle := strings.ToLower(query)
	result := []*domain.ProductWithOwner{}
	for _, p := range all {
		if ownerID != nil && p.OwnerID != *ownerID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
			result = append(result, p)
		}
	}
	return result, nil
}

type memInquiryRepository struct {
	inquiries []*domain.Inquiry
}

func (r *memInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	stored := *inquiry
	r.inquiries = append(r.inquiries, &stored)
	return nil
}

// recordingNotifier captures notifications; Err makes sends fail.
type recordingNotifier struct {
	sent []mail.InquiryNotification
	Err  error
}

func (n *recordingNotifier) SendInquiryNotification(ctx context.Context, notification mail.InquiryNotification) error {
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, notification)
	return nil
}

type testEnv struct {
	router      chi.Router
	authService service.AuthService
	users       *memUserRepository
	storehouses *memStorehouseRepository
	products    *memProductRepository
	inquiries   *memInquiryRepository
	notifier    *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &memUserRepository{users: make(map[string]*domain.User)}
	storehouses := &memStorehouseRepository{storehouses: make(map[uuid.UUID]*domain.Storehouse)}
	products := &memProductRepository{
		products:    make(map[uuid.UUID]*domain.Product),
		users:       users,
		storehouses: storehouses,
	}
	inquiries := &memInquiryRepository{}
	notifier := &recordingNotifier{}

	logger := zap.NewNop()
	authService := service.NewAuthService(users, "test-secret")
	storehouseService := service.NewStorehouseService(storehouses)
	productService := service.NewProductService(products)
	inquiryService := service.NewInquiryService(inquiries, notifier, logger)

	authMiddleware := middleware.AuthMiddleware(authService, logger)

	r := chi.NewRouter()
	NewAuthHandler(authService, logger).RegisterRoutes(r, nil)
	NewStorehouseHandler(storehouseService, logger).RegisterRoutes(r, authMiddleware)
	NewProductHandler(productService, storehouseService, logger).RegisterRoutes(r, authMiddleware)
	NewInquiryHandler(inquiryService, productService, logger).RegisterRoutes(r, authMiddleware)

	return &testEnv{
		router:      r,
		authService: authService,
		users:       users,
		storehouses: storehouses,
		products:    products,
		inquiries:   inquiries,
		notifier:    notifier,
	}
}

// newAccount signs up and logs in, returning the bearer token and user
func (env *testEnv) newAccount(t *testing.T, email string, role domain.Role) (string, *domain.User) {
	t.Helper()
	if _, err := env.authService.Signup(context.Background(), email, "password123", role); err != nil {
		t.Fatalf("signup for %s failed: %v", email, err)
	}
	token, user, err := env.authService.Login(context.Background(), email, "password123", role)
	if err != nil {
		t.Fatalf("login for %s failed: %v", email, err)
	}
	return token, user
}

func (env *testEnv) addStorehouse(t *testing.T, ownerID uuid.UUID, name, location string) *domain.Storehouse {
	t.Helper()
	storehouse := &domain.Storehouse{
		ID:        uuid.New(),
		Name:      name,
		Location:  location,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := env.storehouses.Create(context.Background(), storehouse); err != nil {
		t.Fatalf("failed to seed storehouse: %v", err)
	}
	return storehouse
}

func (env *testEnv) addProduct(t *testing.T, storehouse *domain.Storehouse, name string, totalQuantity, quantitySold int, pricePerUnit float64) *domain.Product {
	t.Helper()
	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          name,
		TotalQuantity: totalQuantity,
		QuantitySold:  quantitySold,
		PricePerUnit:  pricePerUnit,
		StorehouseID:  storehouse.ID,
		OwnerID:       storehouse.OwnerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.RecomputeRevenue()
	if err := env.products.Create(context.Background(), product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
