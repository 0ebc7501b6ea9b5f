package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a citizen account in the owner app.
type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	Firstname   string             `bson:"firstName" json:"firstName"`
	Lastname    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	NICNumber   string             `bson:"nicNumber" json:"nicNumber"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Password    string             `bson:"password" json:"password,omitempty"`
	Token       string             `bson:"-" json:"token,omitempty"`
	Exp         int                `bson:"-" json:"exp,omitempty"`
	FCMToken    string             `bson:"fcmtoken" json:"fcmtoken"`
}

// Vehicle is a plate registered under an owner account.
type Vehicle struct {
	VehicleID          primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	RegistrationNumber string             `bson:"registrationNumber" json:"registrationNumber"`
	VehicleClass       string             `bson:"vehicleClass" json:"vehicleClass"`
	VehicleModel       string             `bson:"vehicleModel" json:"vehicleModel"`
	UserID             string             `bson:"userId" json:"userId"`
}

// Inspector is a council parking inspector. Inspector records live in the
// DynamoDB table, keyed by InspectorID.
type Inspector struct {
	InspectorID  string `json:"inspectorId" dynamodbav:"inspectorId"`
	Name         string `json:"name" dynamodbav:"name"`
	Email        string `json:"email" dynamodbav:"email"`
	PhoneNumber  string `json:"phoneNumber" dynamodbav:"phoneNumber"`
	AssignedZone string `json:"assignedZone" dynamodbav:"assignedZone"`
	BadgeNumber  string `json:"badgeNumber" dynamodbav:"badgeNumber"`
}

// PendingPayment tracks an M-Pesa STK push between the initial request and the
// gateway callback. Kind says whether it settles a ticket or a fine.
type PendingPayment struct {
	PaymentID          primitive.ObjectID `bson:"_id" json:"_id,omitempty"`
	UserID             string             `bson:"userId" json:"userId"`
	Kind               string             `bson:"kind" json:"kind"`
	RecordID           string             `bson:"recordId" json:"recordId"`
	VehicleNumber      string             `bson:"vehicleNumber" json:"vehicleNumber"`
	Amount             int                `bson:"amount" json:"amount"`
	IsSuccessful       bool               `bson:"isSuccessful" json:"isSuccessful"`
	MpesaReceiptNumber string             `bson:"mpesaReceiptNumber,omitempty" json:"mpesaReceiptNumber,omitempty"`
	ResultDesc         string             `bson:"resultDesc,omitempty" json:"resultDesc,omitempty"`
	CheckoutRequestID  string             `bson:"checkoutRequestID,omitempty" json:"checkoutRequestID,omitempty"`
	TransactionDate    string             `bson:"transactionDate,omitempty" json:"transactionDate,omitempty"`
}

// ResponseResult is the JSON envelope returned by every handler.
type ResponseResult struct {
	Error  string `json:"error,omitempty"`
	Result string `json:"result,omitempty"`
}
