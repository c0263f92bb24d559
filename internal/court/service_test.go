package court

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newSeededService() Service {
	return NewService(NewMemoryRepository(DefaultCourts()...))
}

func TestListSeededCatalog(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService()

	courts, total, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, courts, 4)
	assert.Equal(t, "1", courts[0].ID)
	assert.Equal(t, int64(25000), courts[0].PricePerHour)

	available, total, err := svc.List(ctx, Filter{Status: string(StatusAvailable)})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	for _, c := range available {
		assert.True(t, c.Bookable())
	}

	tennis, _, err := svc.List(ctx, Filter{Category: string(CategoryTennis)})
	require.NoError(t, err)
	require.Len(t, tennis, 1)
	assert.Equal(t, "Tennis Court #1", tennis[0].Name)

	page2, total, err := svc.List(ctx, Filter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, page2, 1)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService()

	c, err := svc.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, CategoryTennis, c.Category)

	_, err = svc.GetByID(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedCourtsAreCopies(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService()

	c, err := svc.GetByID(ctx, "1")
	require.NoError(t, err)
	c.PricePerHour = 1
	c.Amenities[0] = "mutated"

	again, err := svc.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), again.PricePerHour)
	assert.Equal(t, "Synthetic turf", again.Amenities[0])
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService()

	valid := CreateRequest{Name: "Volley Sand", Category: "volleyball", Capacity: 12, PricePerHour: 12000}

	tests := []struct {
		name    string
		mutate  func(r *CreateRequest)
		wantErr error
	}{
		{"blank name", func(r *CreateRequest) { r.Name = "  " }, ErrNameRequired},
		{"unknown category", func(r *CreateRequest) { r.Category = "cricket" }, ErrInvalidCategory},
		{"zero capacity", func(r *CreateRequest) { r.Capacity = 0 }, ErrInvalidCapacity},
		{"negative price", func(r *CreateRequest) { r.PricePerHour = -1 }, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	c, err := svc.Create(ctx, CreateRequest{
		Name: " Volley Sand ", Category: "volleyball", Capacity: 12, PricePerHour: 0,
		Amenities: []string{"Sand", " ", "Net "},
	})
	require.NoError(t, err)
	assert.Equal(t, "5", c.ID)
	assert.Equal(t, "Volley Sand", c.Name)
	assert.Equal(t, StatusAvailable, c.Status)
	assert.Equal(t, []string{"Sand", "Net"}, c.Amenities)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService()

	c, err := svc.Update(ctx, "4", UpdateRequest{
		Status:       ptr(string(StatusAvailable)),
		PricePerHour: ptr(int64(19000)),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, c.Status)
	assert.Equal(t, int64(19000), c.PricePerHour)

	stored, err := svc.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, int64(19000), stored.PricePerHour)
	assert.Equal(t, "Multi-sport Court", stored.Name)

	_, err = svc.Update(ctx, "4", UpdateRequest{Status: ptr("demolished")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Update(ctx, "99", UpdateRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	counts, err := newSeededService().CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[StatusAvailable])
	assert.Equal(t, 1, counts[StatusMaintenance])
	assert.Equal(t, 0, counts[StatusClosed])
}
