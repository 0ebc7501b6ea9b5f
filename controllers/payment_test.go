package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
	"citypark/parking"
)

// In-memory stores standing in for Mongo so the payment plumbing can be
// exercised without a database.

type fakeTickets struct {
	byCode map[string]*model.Ticket
}

func (s *fakeTickets) Insert(_ context.Context, t *model.Ticket) error {
	clone := *t
	s.byCode[t.TicketID] = &clone
	return nil
}

func (s *fakeTickets) FindByTicketID(_ context.Context, ticketID string) (*model.Ticket, error) {
	t, ok := s.byCode[ticketID]
	if !ok {
		return nil, parking.ErrTicketNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *fakeTickets) FindByUser(_ context.Context, userID string) ([]*model.Ticket, error) {
	return nil, nil
}

func (s *fakeTickets) Apply(_ context.Context, ticketID string, expectedVersion int64, t *model.Ticket) error {
	stored, ok := s.byCode[ticketID]
	if !ok {
		return parking.ErrTicketNotFound
	}
	if stored.Version != expectedVersion {
		return parking.ErrConflict
	}
	clone := *t
	s.byCode[ticketID] = &clone
	return nil
}

type fakeFines struct {
	byID map[string]*model.Fine
}

func (s *fakeFines) Insert(_ context.Context, f *model.Fine) error {
	clone := *f
	s.byID[f.ID.Hex()] = &clone
	return nil
}

func (s *fakeFines) FindByID(_ context.Context, id string) (*model.Fine, error) {
	f, ok := s.byID[id]
	if !ok {
		return nil, parking.ErrFineNotFound
	}
	clone := *f
	return &clone, nil
}

func (s *fakeFines) FindByVehicle(_ context.Context, vehicleNumber string) ([]*model.Fine, error) {
	return nil, nil
}

func (s *fakeFines) FindByTicketID(_ context.Context, ticketID string) ([]*model.Fine, error) {
	return nil, nil
}

func (s *fakeFines) MarkPaid(_ context.Context, id, paymentID string, paidAt time.Time) error {
	f, ok := s.byID[id]
	if !ok {
		return parking.ErrFineNotFound
	}
	if f.IsPaid {
		return parking.ErrAlreadyPaid
	}
	f.IsPaid = true
	f.PaymentID = paymentID
	at := paidAt
	f.PaidAt = &at
	return nil
}

func (s *fakeFines) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

type fakeReceipts struct {
	receipts []*model.PaymentReceipt
}

func (s *fakeReceipts) Insert(_ context.Context, r *model.PaymentReceipt) error {
	clone := *r
	s.receipts = append(s.receipts, &clone)
	return nil
}

func (s *fakeReceipts) FindByVehicle(_ context.Context, vehicleNumber string) ([]*model.PaymentReceipt, error) {
	return nil, nil
}

type fakeZones struct{}

func (fakeZones) Insert(_ context.Context, z *model.Zone) error { return nil }

func (fakeZones) FindByLocation(_ context.Context, location string) (*model.Zone, error) {
	return nil, parking.ErrZoneNotFound
}

func (fakeZones) FindByCode(_ context.Context, code string) (*model.Zone, error) {
	return nil, parking.ErrZoneNotFound
}

func (fakeZones) All(_ context.Context) ([]*model.Zone, error) { return nil, nil }

func paymentFixture() (*fakeFines, *fakeReceipts) {
	fines := &fakeFines{byID: map[string]*model.Fine{}}
	receipts := &fakeReceipts{}
	zones := parking.NewZoneService(fakeZones{}, 0)
	tickets := parking.NewTicketService(&fakeTickets{byCode: map[string]*model.Ticket{}}, fines, receipts, zones)
	Setup(tickets, parking.NewFineService(fines, receipts), zones, receipts, nil, nil)
	return fines, receipts
}

func TestResolveAmountActiveTicket(t *testing.T) {
	paymentFixture()
	ctx := context.Background()
	ticket, err := ticketService.Create(ctx, "user-1", "WP ABC-1234", "CMB01 - Galle Road", "1 hour")
	require.NoError(t, err)

	kind, recordID, vehicle, amount, err := resolveAmount(ctx, paymentRequest{TicketID: ticket.TicketID})
	require.NoError(t, err)
	assert.Equal(t, paymentKindParking, kind)
	assert.Equal(t, ticket.TicketID, recordID)
	assert.Equal(t, "WP ABC-1234", vehicle)
	assert.Equal(t, ticket.ParkingFee, amount)
}

func TestResolveAmountRejectsPaidTicket(t *testing.T) {
	paymentFixture()
	ctx := context.Background()
	ticket, err := ticketService.Create(ctx, "user-1", "WP ABC-1234", "CMB01 - Galle Road", "1 hour")
	require.NoError(t, err)
	_, _, err = ticketService.Pay(ctx, ticket.TicketID, "pi_1", "card")
	require.NoError(t, err)

	// A repeat pay request must be stopped before the gateway is called, not
	// after the card has already been charged again.
	_, _, _, _, err = resolveAmount(ctx, paymentRequest{TicketID: ticket.TicketID})
	assert.Equal(t, parking.ErrAlreadyPaid, err)
}

func TestResolveAmountRejectsInactiveTicket(t *testing.T) {
	paymentFixture()
	ctx := context.Background()
	ticket, err := ticketService.Create(ctx, "user-1", "WP ABC-1234", "CMB01 - Galle Road", "1 hour")
	require.NoError(t, err)
	_, err = ticketService.ConvertToFine(ctx, ticket.TicketID)
	require.NoError(t, err)

	_, _, _, _, err = resolveAmount(ctx, paymentRequest{TicketID: ticket.TicketID})
	assert.Equal(t, parking.ErrTicketInactive, err)
}

func TestResolveAmountRejectsPaidFine(t *testing.T) {
	fines, _ := paymentFixture()
	ctx := context.Background()
	fine := &model.Fine{
		ID:            primitive.NewObjectID(),
		VehicleNumber: "WP ABC-1234",
		FineAmount:    300,
		IsPaid:        true,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, fines.Insert(ctx, fine))

	_, _, _, _, err := resolveAmount(ctx, paymentRequest{FineID: fine.ID.Hex()})
	assert.Equal(t, parking.ErrAlreadyPaid, err)
}

func TestSettlePendingPaymentIgnoresReplay(t *testing.T) {
	_, receipts := paymentFixture()
	ctx := context.Background()
	ticket, err := ticketService.Create(ctx, "user-1", "WP ABC-1234", "CMB01 - Galle Road", "1 hour")
	require.NoError(t, err)

	pending := &model.PendingPayment{Kind: paymentKindParking, RecordID: ticket.TicketID}
	require.NoError(t, settlePendingPayment(ctx, pending, "RCPT123", "mpesa"))

	// The gateway retries the callback; the second settle is a no-op, not an
	// error, and no second receipt is written.
	require.NoError(t, settlePendingPayment(ctx, pending, "RCPT123", "mpesa"))
	assert.Len(t, receipts.receipts, 1)
}
