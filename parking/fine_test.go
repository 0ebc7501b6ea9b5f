package parking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citypark/model"
)

func newFineFixture() (*FineService, *memFines, *memReceipts, time.Time) {
	fines := newMemFines()
	receipts := &memReceipts{}
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	svc := NewFineService(fines, receipts)
	svc.Now = func() time.Time { return now }
	return svc, fines, receipts, now
}

func TestOutstandingPicksNewestUnpaid(t *testing.T) {
	svc, fines, _, now := newFineFixture()
	ctx := context.Background()

	// An unpaid fine from yesterday and a paid one from today: the unpaid
	// one is outstanding regardless of date order.
	older := newFine("", "WP ABC-1234", false, now.Add(-24*time.Hour))
	require.NoError(t, fines.Insert(ctx, older))
	require.NoError(t, fines.Insert(ctx, newFine("", "WP ABC-1234", true, now)))

	got, err := svc.Outstanding(ctx, "WP ABC-1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, older.ID, got.ID)
}

func TestOutstandingPicksMostRecentOfSeveralUnpaid(t *testing.T) {
	svc, fines, _, now := newFineFixture()
	ctx := context.Background()

	require.NoError(t, fines.Insert(ctx, newFine("", "WP ABC-1234", false, now.Add(-48*time.Hour))))
	newest := newFine("", "WP ABC-1234", false, now.Add(-1*time.Hour))
	require.NoError(t, fines.Insert(ctx, newest))

	got, err := svc.Outstanding(ctx, "WP ABC-1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestOutstandingNoneWhenAllPaid(t *testing.T) {
	svc, fines, _, now := newFineFixture()
	ctx := context.Background()

	require.NoError(t, fines.Insert(ctx, newFine("", "WP ABC-1234", true, now)))

	got, err := svc.Outstanding(ctx, "WP ABC-1234")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOutstandingNormalizesPlate(t *testing.T) {
	svc, fines, _, now := newFineFixture()
	ctx := context.Background()

	require.NoError(t, fines.Insert(ctx, newFine("", "WP ABC-1234", false, now)))

	got, err := svc.Outstanding(ctx, "wp abc-1234")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestIssueFine(t *testing.T) {
	svc, _, _, now := newFineFixture()
	fine, err := svc.Issue(context.Background(), &model.Fine{
		VehicleNumber: "wp abc-1234",
		Reason:        "Parked without a ticket",
		Location:      "CMB01 - Galle Road",
		FineAmount:    500,
	})
	require.NoError(t, err)
	assert.Equal(t, "WP ABC-1234", fine.VehicleNumber)
	assert.False(t, fine.IsPaid)
	assert.Equal(t, now, fine.FineDate)
	assert.Equal(t, now, fine.CreatedAt)
	assert.False(t, fine.ID.IsZero())
}

func TestIssueFineRequiresVehicle(t *testing.T) {
	svc, _, _, _ := newFineFixture()
	_, err := svc.Issue(context.Background(), &model.Fine{Reason: "No plate"})
	assert.Equal(t, ErrVehicleRequired, err)
}

func TestPayFine(t *testing.T) {
	svc, fines, _, now := newFineFixture()
	ctx := context.Background()

	fine := newFine("PK-ABC123", "WP ABC-1234", false, now)
	fine.FineAmount = 300
	require.NoError(t, fines.Insert(ctx, fine))

	receipt, err := svc.Pay(ctx, fine.ID.Hex(), "pi_987", "card")
	require.NoError(t, err)
	assert.Equal(t, model.ReceiptTypeFine, receipt.Type)
	assert.Equal(t, 300, receipt.Amount)
	assert.Equal(t, "PK-ABC123", receipt.TicketID)
	assert.Equal(t, fine.ID.Hex(), receipt.FineID)

	stored, err := fines.FindByID(ctx, fine.ID.Hex())
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	assert.Equal(t, "pi_987", stored.PaymentID)
}

func TestPayFineIsOneWay(t *testing.T) {
	svc, fines, receipts, now := newFineFixture()
	ctx := context.Background()

	fine := newFine("", "WP ABC-1234", false, now)
	require.NoError(t, fines.Insert(ctx, fine))

	_, err := svc.Pay(ctx, fine.ID.Hex(), "pi_1", "card")
	require.NoError(t, err)
	_, err = svc.Pay(ctx, fine.ID.Hex(), "pi_2", "card")
	assert.Equal(t, ErrAlreadyPaid, err)
	assert.Len(t, receipts.receipts, 1)
}

func TestPayUnknownFine(t *testing.T) {
	svc, _, _, _ := newFineFixture()
	_, err := svc.Pay(context.Background(), "no-such-fine", "pi_1", "card")
	assert.Equal(t, ErrFineNotFound, err)
}
