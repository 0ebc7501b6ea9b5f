package parking

import (
	"context"
	"time"

	"citypark/model"
)

// TicketStore is the tickets collection. Apply replaces the stored ticket only
// when the stored version still equals expectedVersion, returning ErrConflict
// otherwise; that is what keeps two concurrent extends from silently losing an
// update.
type TicketStore interface {
	Insert(ctx context.Context, t *model.Ticket) error
	FindByTicketID(ctx context.Context, ticketID string) (*model.Ticket, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Ticket, error)
	Apply(ctx context.Context, ticketID string, expectedVersion int64, t *model.Ticket) error
}

// FineStore is the fines collection. MarkPaid must only touch an unpaid fine,
// returning ErrAlreadyPaid when the fine was settled in the meantime.
type FineStore interface {
	Insert(ctx context.Context, f *model.Fine) error
	FindByID(ctx context.Context, id string) (*model.Fine, error)
	FindByVehicle(ctx context.Context, vehicleNumber string) ([]*model.Fine, error)
	FindByTicketID(ctx context.Context, ticketID string) ([]*model.Fine, error)
	MarkPaid(ctx context.Context, id, paymentID string, paidAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// ReceiptStore is the receipts collection. Receipts are insert-only.
type ReceiptStore interface {
	Insert(ctx context.Context, r *model.PaymentReceipt) error
	FindByVehicle(ctx context.Context, vehicleNumber string) ([]*model.PaymentReceipt, error)
}
