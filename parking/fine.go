package parking

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
)

// FineService owns fine records: inspector-issued violations, pay-later fines
// generated from tickets, and their settlement.
type FineService struct {
	Fines    FineStore
	Receipts ReceiptStore

	Now func() time.Time
}

func NewFineService(fines FineStore, receipts ReceiptStore) *FineService {
	return &FineService{Fines: fines, Receipts: receipts, Now: time.Now}
}

func (s *FineService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Outstanding returns the most recently created unpaid fine for a vehicle, or
// nil when every fine is settled. Filtering and ordering happen here rather
// than in the store query; the fines collection has no compound index to order
// by paid-state and creation time server-side.
func (s *FineService) Outstanding(ctx context.Context, vehicleNumber string) (*model.Fine, error) {
	fines, err := s.Fines.FindByVehicle(ctx, NormalizeVehicleNumber(vehicleNumber))
	if err != nil {
		return nil, err
	}
	var latest *model.Fine
	for _, f := range fines {
		if f.IsPaid {
			continue
		}
		if latest == nil || f.CreatedAt.After(latest.CreatedAt) {
			latest = f
		}
	}
	return latest, nil
}

// Issue records an inspector-detected violation as a standalone fine.
func (s *FineService) Issue(ctx context.Context, f *model.Fine) (*model.Fine, error) {
	if NormalizeVehicleNumber(f.VehicleNumber) == "" {
		return nil, ErrVehicleRequired
	}
	now := s.now()
	f.ID = primitive.NewObjectID()
	f.VehicleNumber = NormalizeVehicleNumber(f.VehicleNumber)
	if f.FineDate.IsZero() {
		f.FineDate = now
	}
	f.IsPaid = false
	f.CreatedAt = now
	if err := s.Fines.Insert(ctx, f); err != nil {
		return nil, fmt.Errorf("issue fine: %w", err)
	}
	return f, nil
}

// Pay settles a fine with an already-authorised gateway payment and writes the
// receipt. A second pay attempt returns ErrAlreadyPaid.
func (s *FineService) Pay(ctx context.Context, fineID, paymentID, method string) (*model.PaymentReceipt, error) {
	f, err := s.Fines.FindByID(ctx, fineID)
	if err != nil {
		return nil, err
	}
	if f.IsPaid {
		return nil, ErrAlreadyPaid
	}
	now := s.now()
	if err := s.Fines.MarkPaid(ctx, fineID, paymentID, now); err != nil {
		return nil, err
	}
	receipt := &model.PaymentReceipt{
		ID:              primitive.NewObjectID(),
		TicketID:        f.TicketID,
		FineID:          f.ID.Hex(),
		VehicleNumber:   f.VehicleNumber,
		Amount:          f.FineAmount,
		PaymentMethod:   method,
		PaymentID:       paymentID,
		TransactionDate: now,
		Type:            model.ReceiptTypeFine,
	}
	if err := s.Receipts.Insert(ctx, receipt); err != nil {
		return nil, fmt.Errorf("pay fine %s: write receipt: %w", fineID, err)
	}
	return receipt, nil
}
