package parking

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
	"citypark/util"
)

// CancelWindow is how long after creation a ticket may still be cancelled.
// The rule is recomputed from CreatedAt on every cancel attempt; the stored
// CanCancel flag is only a display hint for the apps.
const CancelWindow = 10 * time.Minute

// FineReasonPayLater is the reason written on fines generated from unpaid
// tickets.
const FineReasonPayLater = "Pay Later - Unpaid Parking Fee"

// Extension defaults, overridable through TicketService fields.
const (
	DefaultMaxExtensions  = 10
	DefaultMaxTicketHours = 24
)

// TicketService owns the parking-ticket lifecycle. All state lives in the
// stores; the service holds no ticket data between calls.
type TicketService struct {
	Tickets  TicketStore
	Fines    FineStore
	Receipts ReceiptStore
	Zones    *ZoneService

	// MaxExtensions caps how many times one ticket can be extended and
	// MaxTicketHours caps its total span. Zero means the default; negative
	// means unlimited.
	MaxExtensions  int
	MaxTicketHours int

	// Now is swappable for tests.
	Now func() time.Time
}

func NewTicketService(tickets TicketStore, fines FineStore, receipts ReceiptStore, zones *ZoneService) *TicketService {
	return &TicketService{
		Tickets:        tickets,
		Fines:          fines,
		Receipts:       receipts,
		Zones:          zones,
		MaxExtensions:  DefaultMaxExtensions,
		MaxTicketHours: DefaultMaxTicketHours,
		Now:            time.Now,
	}
}

func (s *TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TicketService) maxExtensions() int {
	if s.MaxExtensions == 0 {
		return DefaultMaxExtensions
	}
	return s.MaxExtensions
}

func (s *TicketService) maxTicketHours() int {
	if s.MaxTicketHours == 0 {
		return DefaultMaxTicketHours
	}
	return s.MaxTicketHours
}

// Create opens a new active ticket for a vehicle in a zone. The zone rate is
// snapshotted on the ticket so later extensions price at the rate the driver
// saw when parking.
func (s *TicketService) Create(ctx context.Context, userID, vehicleNumber, zoneDisplay, durationText string) (*model.Ticket, error) {
	if NormalizeVehicleNumber(vehicleNumber) == "" {
		return nil, ErrVehicleRequired
	}
	if zoneDisplay == "" {
		return nil, ErrZoneRequired
	}
	rate := s.Zones.RateFor(ctx, zoneDisplay)
	minutes := ParseDuration(durationText)
	now := s.now()
	t := &model.Ticket{
		ID:            primitive.NewObjectID(),
		TicketID:      NewTicketCode(),
		UserID:        userID,
		VehicleNumber: NormalizeVehicleNumber(vehicleNumber),
		ParkingZone:   zoneDisplay,
		StartTime:     now,
		EndTime:       now.Add(time.Duration(minutes) * time.Minute),
		Duration:      durationText,
		ParkingFee:    CalculateFee(durationText, rate),
		ParkingRate:   rate,
		IsActive:      true,
		CanCancel:     true,
		Version:       1,
		CreatedAt:     now,
	}
	s.refresh(t)
	if err := s.Tickets.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

// Get returns a ticket with its derived fields recomputed.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*model.Ticket, error) {
	t, err := s.Tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.refresh(t)
	return t, nil
}

// ForUser returns all tickets belonging to an owner account, derived fields
// recomputed.
func (s *TicketService) ForUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	tickets, err := s.Tickets.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		s.refresh(t)
	}
	return tickets, nil
}

// Extend adds time and fee to an active ticket. The write is conditional on
// the ticket version so a concurrent extend surfaces as ErrConflict instead of
// overwriting the other call's delta.
func (s *TicketService) Extend(ctx context.Context, ticketID, durationText string) (*model.Ticket, error) {
	t, err := s.Tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrTicketInactive
	}
	if max := s.maxExtensions(); max > 0 && t.Extensions >= max {
		return nil, ErrExtensionLimit
	}
	minutes := ParseDuration(durationText)
	newEnd := t.EndTime.Add(time.Duration(minutes) * time.Minute)
	if max := s.maxTicketHours(); max > 0 && newEnd.Sub(t.StartTime) > time.Duration(max)*time.Hour {
		return nil, ErrExtensionLimit
	}
	rate := t.ParkingRate
	if rate == 0 {
		rate = s.Zones.RateFor(ctx, t.ParkingZone)
		t.ParkingRate = rate
	}
	expected := t.Version
	t.ParkingFee += CalculateFee(durationText, rate)
	t.EndTime = newEnd
	t.Extensions++
	t.Version++
	s.refresh(t)
	if err := s.Tickets.Apply(ctx, ticketID, expected, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Cancel voids an active ticket inside the cancel window and removes every
// fine referencing it. Fines are deleted before the ticket is marked cancelled
// so a failure mid-cascade leaves the ticket active rather than orphaning
// fines; each delete is retried once and logged.
func (s *TicketService) Cancel(ctx context.Context, ticketID string) (*model.Ticket, error) {
	t, err := s.Tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrTicketInactive
	}
	now := s.now()
	if now.Sub(t.CreatedAt) >= CancelWindow {
		return nil, ErrCancelWindowClosed
	}
	fines, err := s.Fines.FindByTicketID(ctx, t.TicketID)
	if err != nil {
		return nil, fmt.Errorf("cancel ticket %s: list fines: %w", ticketID, err)
	}
	for _, f := range fines {
		if err := s.Fines.Delete(ctx, f.ID.Hex()); err != nil {
			util.Log("Retrying fine cascade delete:", f.ID.Hex(), err.Error())
			if err := s.Fines.Delete(ctx, f.ID.Hex()); err != nil {
				return nil, fmt.Errorf("cancel ticket %s: delete fine %s: %w", ticketID, f.ID.Hex(), err)
			}
		}
	}
	expected := t.Version
	t.IsCancelled = true
	t.IsActive = false
	t.CancelledAt = &now
	t.Version++
	s.refresh(t)
	if err := s.Tickets.Apply(ctx, ticketID, expected, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Pay settles an active ticket with an already-authorised gateway payment.
// Paying twice is rejected, so at most one receipt ever exists per ticket.
func (s *TicketService) Pay(ctx context.Context, ticketID, paymentID, method string) (*model.Ticket, *model.PaymentReceipt, error) {
	t, err := s.Tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if t.IsPaid {
		return nil, nil, ErrAlreadyPaid
	}
	if !t.IsActive {
		return nil, nil, ErrTicketInactive
	}
	now := s.now()
	expected := t.Version
	t.IsPaid = true
	t.IsActive = false
	t.PaidAt = &now
	t.PaymentID = paymentID
	t.PaymentMethod = method
	t.Version++
	s.refresh(t)
	if err := s.Tickets.Apply(ctx, ticketID, expected, t); err != nil {
		return nil, nil, err
	}
	receipt := &model.PaymentReceipt{
		ID:              primitive.NewObjectID(),
		TicketID:        t.TicketID,
		VehicleNumber:   t.VehicleNumber,
		Amount:          t.ParkingFee,
		PaymentMethod:   method,
		PaymentID:       paymentID,
		TransactionDate: now,
		Type:            model.ReceiptTypeParking,
	}
	if err := s.Receipts.Insert(ctx, receipt); err != nil {
		return nil, nil, fmt.Errorf("pay ticket %s: write receipt: %w", ticketID, err)
	}
	return t, receipt, nil
}

// ConvertToFine is the pay-later transition: the unpaid ticket is closed and
// its fee carried over onto a new fine for the vehicle. If the ticket update
// loses to a concurrent write, the fine is removed again so a retried convert
// cannot leave a duplicate behind.
func (s *TicketService) ConvertToFine(ctx context.Context, ticketID string) (*model.Fine, error) {
	t, err := s.Tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrTicketInactive
	}
	now := s.now()
	fine := &model.Fine{
		ID:            primitive.NewObjectID(),
		TicketID:      t.TicketID,
		VehicleNumber: t.VehicleNumber,
		EntryTime:     t.StartTime,
		ExitTime:      t.EndTime,
		Duration:      t.Duration,
		FineDate:      now,
		Reason:        FineReasonPayLater,
		Location:      t.ParkingZone,
		FineAmount:    t.ParkingFee,
		CreatedAt:     now,
	}
	if err := s.Fines.Insert(ctx, fine); err != nil {
		return nil, fmt.Errorf("convert ticket %s: %w", ticketID, err)
	}
	expected := t.Version
	t.IsActive = false
	t.ConvertedToFine = true
	t.FineID = fine.ID.Hex()
	t.Version++
	s.refresh(t)
	if err := s.Tickets.Apply(ctx, ticketID, expected, t); err != nil {
		if derr := s.Fines.Delete(ctx, fine.ID.Hex()); derr != nil {
			util.Log("Retrying fine rollback delete:", fine.ID.Hex(), derr.Error())
			if derr := s.Fines.Delete(ctx, fine.ID.Hex()); derr != nil {
				util.Log("Could not remove fine", fine.ID.Hex(), "after failed convert:", derr.Error())
			}
		}
		return nil, err
	}
	return fine, nil
}

// refresh recomputes the derived fields from EndTime and CreatedAt.
func (s *TicketService) refresh(t *model.Ticket) {
	now := s.now()
	remaining := int64(t.EndTime.Sub(now) / time.Second)
	if remaining < 0 || !t.IsActive {
		remaining = 0
	}
	t.TimeRemaining = remaining
	t.CanCancel = t.IsActive && now.Sub(t.CreatedAt) < CancelWindow
}
