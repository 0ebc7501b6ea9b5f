package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket is a time-boxed parking authorisation for one vehicle in one zone.
// EndTime is the source of truth for expiry; TimeRemaining and CanCancel are
// recomputed on every read and never written back as authoritative state.
type Ticket struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	TicketID        string             `bson:"ticketId" json:"ticketId"`
	UserID          string             `bson:"userId" json:"userId"`
	VehicleNumber   string             `bson:"vehicleNumber" json:"vehicleNumber"`
	ParkingZone     string             `bson:"parkingZone" json:"parkingZone"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         time.Time          `bson:"endTime" json:"endTime"`
	Duration        string             `bson:"duration" json:"duration"`
	ParkingFee      int                `bson:"parkingFee" json:"parkingFee"`
	ParkingRate     int                `bson:"parkingRate" json:"parkingRate"`
	TimeRemaining   int64              `bson:"timeRemaining" json:"timeRemaining"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	IsCancelled     bool               `bson:"isCancelled" json:"isCancelled"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CanCancel       bool               `bson:"canCancel" json:"canCancel"`
	ConvertedToFine bool               `bson:"convertedToFine" json:"convertedToFine"`
	FineID          string             `bson:"fineId,omitempty" json:"fineId,omitempty"`
	Extensions      int                `bson:"extensions" json:"extensions"`
	Version         int64              `bson:"version" json:"-"`
	PaymentID       string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentMethod   string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CancelledAt     *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Fine is a monetary penalty record, either inspector-issued or generated from
// an unpaid ticket via the pay-later flow.
type Fine struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	TicketID      string             `bson:"ticketId,omitempty" json:"ticketId,omitempty"`
	VehicleNumber string             `bson:"vehicleNumber" json:"vehicleNumber"`
	EntryTime     time.Time          `bson:"entryTime" json:"entryTime"`
	ExitTime      time.Time          `bson:"exitTime" json:"exitTime"`
	Duration      string             `bson:"duration" json:"duration"`
	ActualArrival string             `bson:"actualArrival,omitempty" json:"actualArrival,omitempty"`
	FineDuration  string             `bson:"fineDuration,omitempty" json:"fineDuration,omitempty"`
	FineDate      time.Time          `bson:"fineDate" json:"fineDate"`
	Reason        string             `bson:"reason" json:"reason"`
	Location      string             `bson:"location" json:"location"`
	FineAmount    int                `bson:"fineAmount" json:"fineAmount"`
	IsPaid        bool               `bson:"isPaid" json:"isPaid"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentID     string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// PaymentReceipt is written once when a ticket or fine payment succeeds and is
// never updated afterwards.
type PaymentReceipt struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	TicketID        string             `bson:"ticketId,omitempty" json:"ticketId,omitempty"`
	FineID          string             `bson:"fineId,omitempty" json:"fineId,omitempty"`
	VehicleNumber   string             `bson:"vehicleNumber" json:"vehicleNumber"`
	Amount          int                `bson:"amount" json:"amount"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentID       string             `bson:"paymentId" json:"paymentId"`
	TransactionDate time.Time          `bson:"transactionDate" json:"transactionDate"`
	Type            string             `bson:"type" json:"type"`
}

// Receipt types.
const (
	ReceiptTypeParking = "parking"
	ReceiptTypeFine    = "fine"
)

// Zone is a named parking area. ParkingRate is kept as the free text entered in
// the officer console ("Rs. 150 per hour"); the numeric rate is extracted on use.
type Zone struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	ZoneCode    string             `bson:"zoneCode" json:"zoneCode"`
	Location    string             `bson:"location" json:"location"`
	ParkingRate string             `bson:"parkingRate" json:"parkingRate"`
}
