package parking

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
)

// In-memory stores mirroring the MongoDB semantics the services rely on:
// decoded copies on read, conditional writes on version/paid-state.

type memTickets struct {
	byCode map[string]*model.Ticket
	// onApply runs just before Apply's version check, standing in for a
	// concurrent writer sneaking in between read and write.
	onApply func()
}

func newMemTickets() *memTickets {
	return &memTickets{byCode: map[string]*model.Ticket{}}
}

func (s *memTickets) Insert(_ context.Context, t *model.Ticket) error {
	clone := *t
	s.byCode[t.TicketID] = &clone
	return nil
}

func (s *memTickets) FindByTicketID(_ context.Context, ticketID string) (*model.Ticket, error) {
	t, ok := s.byCode[ticketID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *memTickets) FindByUser(_ context.Context, userID string) ([]*model.Ticket, error) {
	var results []*model.Ticket
	for _, t := range s.byCode {
		if t.UserID == userID {
			clone := *t
			results = append(results, &clone)
		}
	}
	return results, nil
}

func (s *memTickets) Apply(_ context.Context, ticketID string, expectedVersion int64, t *model.Ticket) error {
	if s.onApply != nil {
		s.onApply()
		s.onApply = nil
	}
	stored, ok := s.byCode[ticketID]
	if !ok {
		return ErrTicketNotFound
	}
	if stored.Version != expectedVersion {
		return ErrConflict
	}
	clone := *t
	s.byCode[ticketID] = &clone
	return nil
}

type memFines struct {
	byID map[string]*model.Fine
	// failDeletes counts down per fine id so tests can make the first
	// delete attempt fail.
	failDeletes map[string]int
}

func newMemFines() *memFines {
	return &memFines{byID: map[string]*model.Fine{}, failDeletes: map[string]int{}}
}

func (s *memFines) Insert(_ context.Context, f *model.Fine) error {
	clone := *f
	s.byID[f.ID.Hex()] = &clone
	return nil
}

func (s *memFines) FindByID(_ context.Context, id string) (*model.Fine, error) {
	f, ok := s.byID[id]
	if !ok {
		return nil, ErrFineNotFound
	}
	clone := *f
	return &clone, nil
}

func (s *memFines) FindByVehicle(_ context.Context, vehicleNumber string) ([]*model.Fine, error) {
	var results []*model.Fine
	for _, f := range s.byID {
		if f.VehicleNumber == vehicleNumber {
			clone := *f
			results = append(results, &clone)
		}
	}
	return results, nil
}

func (s *memFines) FindByTicketID(_ context.Context, ticketID string) ([]*model.Fine, error) {
	var results []*model.Fine
	for _, f := range s.byID {
		if f.TicketID == ticketID {
			clone := *f
			results = append(results, &clone)
		}
	}
	return results, nil
}

func (s *memFines) MarkPaid(_ context.Context, id, paymentID string, paidAt time.Time) error {
	f, ok := s.byID[id]
	if !ok {
		return ErrFineNotFound
	}
	if f.IsPaid {
		return ErrAlreadyPaid
	}
	f.IsPaid = true
	f.PaymentID = paymentID
	at := paidAt
	f.PaidAt = &at
	return nil
}

func (s *memFines) Delete(_ context.Context, id string) error {
	if s.failDeletes[id] > 0 {
		s.failDeletes[id]--
		return errors.New("transient store error")
	}
	if _, ok := s.byID[id]; !ok {
		return ErrFineNotFound
	}
	delete(s.byID, id)
	return nil
}

type memReceipts struct {
	receipts []*model.PaymentReceipt
}

func (s *memReceipts) Insert(_ context.Context, r *model.PaymentReceipt) error {
	clone := *r
	s.receipts = append(s.receipts, &clone)
	return nil
}

func (s *memReceipts) FindByVehicle(_ context.Context, vehicleNumber string) ([]*model.PaymentReceipt, error) {
	var results []*model.PaymentReceipt
	for _, r := range s.receipts {
		if r.VehicleNumber == vehicleNumber {
			clone := *r
			results = append(results, &clone)
		}
	}
	return results, nil
}

type memZones struct {
	zones []*model.Zone
}

func (s *memZones) Insert(_ context.Context, z *model.Zone) error {
	clone := *z
	s.zones = append(s.zones, &clone)
	return nil
}

func (s *memZones) FindByLocation(_ context.Context, location string) (*model.Zone, error) {
	for _, z := range s.zones {
		if z.Location == location {
			clone := *z
			return &clone, nil
		}
	}
	return nil, ErrZoneNotFound
}

func (s *memZones) FindByCode(_ context.Context, code string) (*model.Zone, error) {
	for _, z := range s.zones {
		if z.ZoneCode == code {
			clone := *z
			return &clone, nil
		}
	}
	return nil, ErrZoneNotFound
}

func (s *memZones) All(_ context.Context) ([]*model.Zone, error) {
	return s.zones, nil
}

func newFine(ticketID, vehicle string, paid bool, createdAt time.Time) *model.Fine {
	return &model.Fine{
		ID:            primitive.NewObjectID(),
		TicketID:      ticketID,
		VehicleNumber: vehicle,
		IsPaid:        paid,
		CreatedAt:     createdAt,
	}
}
