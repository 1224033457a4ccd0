package repository

import (
	"context"
	"math"
	"testing"
	"time"

	"samansetu/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateProduct(t *testing.T, storehouse *domain.Storehouse, name string, total, sold int, price float64) *domain.Product {
	t.Helper()

	now := time.Now()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          name,
		TotalQuantity: total,
		QuantitySold:  sold,
		PricePerUnit:  price,
		StorehouseID:  storehouse.ID,
		OwnerID:       storehouse.OwnerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.RecomputeRevenue()
	require.NoError(t, NewProductRepository(testDB).Create(context.Background(), product))
	return product
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-create@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Product Depot", "Surat")
	product := mustCreateProduct(t, storehouse, "Widget", 100, 10, 2.5)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, found.Revenue)
	assert.Equal(t, 90, found.AvailableQuantity())
	assert.Equal(t, owner.ID, found.OwnerID)
}

func TestProductRepository_FindWithOwnerJoinsInOneQuery(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-join@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Join Depot", "Jaipur")
	product := mustCreateProduct(t, storehouse, "Joined Widget", 50, 5, 4)

	joined, err := repo.FindByIDWithOwner(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.Email, joined.Owner.Email)
	assert.Equal(t, domain.RoleOwner, joined.Owner.Role)
	assert.Equal(t, storehouse.Name, joined.Storehouse.Name)
	assert.Equal(t, 20.0, joined.Revenue)
}

func TestProductRepository_ListByStorehouse(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-list@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "List Depot", "Goa")
	other := mustCreateStorehouse(t, owner, "Other Depot", "Goa")
	first := mustCreateProduct(t, storehouse, "Alpha", 10, 0, 1)
	second := mustCreateProduct(t, storehouse, "Beta", 10, 0, 1)
	mustCreateProduct(t, other, "Gamma", 10, 0, 1)

	products, err := repo.ListByStorehouse(ctx, storehouse.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	repo := NewProductRepository(testDB)

	missing := &domain.Product{ID: uuid.New(), UpdatedAt: time.Now()}
	err := repo.Update(context.Background(), missing)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_DeleteRemovesRow(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-del@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Delete Depot", "Nagpur")
	product := mustCreateProduct(t, storehouse, "Doomed", 10, 0, 1)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A second delete is a clean not-found, not a crash
	err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_SearchMatchesNameOrDescription(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-search@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Search Depot", "Indore")
	widget := mustCreateProduct(t, storehouse, "Search Widget", 100, 10, 2.5)

	described := mustCreateProduct(t, storehouse, "Plain Name", 10, 0, 1)
	described.Description = "a widget for searching"
	described.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, described))

	results, err := repo.Search(ctx, "WID", nil)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool)
	for _, p := range results {
		ids[p.ID] = true
	}
	assert.True(t, ids[widget.ID], "name match expected")
	assert.True(t, ids[described.ID], "description match expected")
}

func TestProductRepository_SearchOwnerFilter(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-filter1@example.com", domain.RoleOwner)
	other := mustCreateUser(t, "prod-filter2@example.com", domain.RoleOwner)
	mine := mustCreateStorehouse(t, owner, "Mine Depot", "Agra")
	theirs := mustCreateStorehouse(t, other, "Theirs Depot", "Agra")
	mustCreateProduct(t, mine, "Filterable Gadget", 10, 0, 1)
	mustCreateProduct(t, theirs, "Filterable Gadget", 10, 0, 1)

	all, err := repo.Search(ctx, "filterable gadget", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := repo.Search(ctx, "filterable gadget", &owner.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, owner.ID, scoped[0].OwnerID)
}

// Feature: samansetu, Property 4: Revenue survives the write/read round trip
// Validates: Requirements 4.2, 4.4
func TestProperty_RevenuePersistsAcrossRoundTrip(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	owner := mustCreateUser(t, "prod-prop@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Property Depot", "Kochi")

	properties := gopter.NewProperties(nil)

	properties.Property("stored revenue equals quantity_sold times price_per_unit", prop.ForAll(
		func(total int, sold int, cents int) bool {
			if sold > total {
				total, sold = sold, total
			}
			price := float64(cents) / 100

			now := time.Now()
			product := &domain.Product{
				ID:            uuid.New(),
				Name:          "Prop Widget",
				TotalQuantity: total,
				QuantitySold:  sold,
				PricePerUnit:  price,
				StorehouseID:  storehouse.ID,
				OwnerID:       owner.ID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			product.RecomputeRevenue()

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("Failed to create product: %v", err)
				return false
			}

			stored, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("Failed to read product back: %v", err)
				return false
			}

			// The revenue column rounds to 2 decimals, so compare
			// against the cent-rounded product
			expected := math.Round(float64(sold)*price*100) / 100
			if math.Abs(stored.Revenue-expected) > 0.005 {
				t.Logf("Revenue mismatch: stored %f, expected %f", stored.Revenue, expected)
				return false
			}

			return stored.AvailableQuantity() == total-sold
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 100000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// A sub-cent binary product like 3*0.10 must still read back as the
// 2-decimal value the column stores.
func TestProductRepository_RevenueRoundTripRoundsToCents(t *testing.T) {
	ctx := context.Background()

	owner := mustCreateUser(t, "cents-owner@example.com", domain.RoleOwner)
	storehouse := mustCreateStorehouse(t, owner, "Cents Depot", "Jaipur")
	product := mustCreateProduct(t, storehouse, "Cent Widget", 10, 3, 0.10)

	stored, err := NewProductRepository(testDB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, stored.Revenue, 0.005)
}

func TestInquiryRepository_Create(t *testing.T) {
	ctx := context.Background()

	owner := mustCreateUser(t, "inq-owner@example.com", domain.RoleOwner)
	buyer := mustCreateUser(t, "inq-buyer@example.com", domain.RoleBuyer)
	storehouse := mustCreateStorehouse(t, owner, "Inquiry Depot", "Lucknow")
	product := mustCreateProduct(t, storehouse, "Inquired Widget", 10, 0, 5)

	inquiry := &domain.Inquiry{
		ID:        uuid.New(),
		Message:   "Is this still available?",
		Quantity:  3,
		ProductID: product.ID,
		BuyerID:   buyer.ID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, NewInquiryRepository(testDB).Create(ctx, inquiry))

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM inquiries WHERE id = $1", inquiry.ID).Scan(&count))
	assert.Equal(t, 1, count)
}
