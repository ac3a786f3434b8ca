package repository

import (
	"context"
	"testing"
	"time"

	"assetdesk/internal/database"
	"assetdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedItemAndRequest(t *testing.T, db *gorm.DB, itemStatus domain.ItemStatus) (*domain.InventoryItem, *domain.BorrowRequest) {
	items := NewItemRepository(db)
	requests := NewRequestRepository(db)
	ctx := context.Background()

	it := &domain.InventoryItem{
		Name:      "Thermal camera",
		Category:  "electronics",
		Condition: domain.ConditionGood,
		Status:    itemStatus,
	}
	require.NoError(t, items.Create(ctx, it))

	r := &domain.BorrowRequest{
		ItemID:             it.ID,
		BorrowerID:         7,
		DepartmentID:       3,
		RequestedDate:      time.Now(),
		ExpectedReturnDate: time.Now().Add(48 * time.Hour),
		Status:             domain.RequestPending,
		Purpose:            "Site inspection",
	}
	require.NoError(t, requests.Create(ctx, r))
	return it, r
}

func TestApprove_RollsBackWhenItemUnavailable(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	requests := NewRequestRepository(db)
	ctx := context.Background()

	it, r := seedItemAndRequest(t, db, domain.ItemAvailable)

	// item leaves circulation between submission and approval
	it.Status = domain.ItemMaintenance
	require.NoError(t, items.Update(ctx, it))

	_, err := requests.Approve(ctx, r.ID, 1, time.Now())
	assert.ErrorIs(t, err, ErrItemNotAvailable)

	got, err := requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, got.Status)
	assert.Nil(t, got.ApprovedBy)
	assert.Nil(t, got.ApprovedAt)

	kept, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemMaintenance, kept.Status)
}

func TestReturn_RollsBackWhenItemNotBorrowed(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	requests := NewRequestRepository(db)
	ctx := context.Background()

	it, r := seedItemAndRequest(t, db, domain.ItemAvailable)

	_, err := requests.Approve(ctx, r.ID, 1, time.Now())
	require.NoError(t, err)

	// item status drifts out from under the active request
	it.Status = domain.ItemRetired
	require.NoError(t, items.Update(ctx, it))

	_, err = requests.Return(ctx, r.ID, domain.ConditionFair, time.Now())
	assert.ErrorIs(t, err, ErrItemNotBorrowed)

	got, err := requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestActive, got.Status)
	assert.Nil(t, got.ActualReturnDate)
	assert.Nil(t, got.ReturnCondition)
}

func TestApprove_ThenReturnUpdatesItemCondition(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	requests := NewRequestRepository(db)
	ctx := context.Background()

	it, r := seedItemAndRequest(t, db, domain.ItemAvailable)

	approved, err := requests.Approve(ctx, r.ID, 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.RequestActive, approved.Status)

	borrowed, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemBorrowed, borrowed.Status)

	returned, err := requests.Return(ctx, r.ID, domain.ConditionFair, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.RequestReturned, returned.Status)
	require.NotNil(t, returned.ReturnCondition)
	assert.Equal(t, domain.ConditionFair, *returned.ReturnCondition)

	released, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemAvailable, released.Status)
	assert.Equal(t, domain.ConditionFair, released.Condition)
}
