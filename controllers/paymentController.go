package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AndroidStudyOpenSource/mpesa-api-go"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
	"citypark/parking"
	"citypark/util"
)

// Payment kinds for pending M-Pesa payments.
const (
	paymentKindParking = "parking"
	paymentKindFine    = "fine"
)

type paymentRequest struct {
	TicketID        string `json:"ticketId,omitempty"`
	FineID          string `json:"fineId,omitempty"`
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
}

// resolveAmount figures out what the request is paying for and how much is
// owed. A record that is already settled or no longer payable is rejected
// here, before any gateway call, so a repeat request never charges the card
// a second time.
func resolveAmount(ctx context.Context, req paymentRequest) (kind, recordID, vehicle string, amount int, err error) {
	switch {
	case req.TicketID != "":
		ticket, terr := ticketService.Get(ctx, req.TicketID)
		if terr != nil {
			return "", "", "", 0, terr
		}
		if ticket.IsPaid {
			return "", "", "", 0, parking.ErrAlreadyPaid
		}
		if !ticket.IsActive {
			return "", "", "", 0, parking.ErrTicketInactive
		}
		return paymentKindParking, ticket.TicketID, ticket.VehicleNumber, ticket.ParkingFee, nil
	case req.FineID != "":
		fine, ferr := fineService.Fines.FindByID(ctx, req.FineID)
		if ferr != nil {
			return "", "", "", 0, ferr
		}
		if fine.IsPaid {
			return "", "", "", 0, parking.ErrAlreadyPaid
		}
		return paymentKindFine, fine.ID.Hex(), fine.VehicleNumber, fine.FineAmount, nil
	default:
		return "", "", "", 0, fmt.Errorf("ticketId or fineId is required")
	}
}

// completePayment records a confirmed gateway payment against the ticket or
// fine it settles.
func completePayment(ctx context.Context, kind, recordID, paymentID, method string) (*model.PaymentReceipt, error) {
	if kind == paymentKindFine {
		return fineService.Pay(ctx, recordID, paymentID, method)
	}
	_, receipt, err := ticketService.Pay(ctx, recordID, paymentID, method)
	return receipt, err
}

// settlePendingPayment marks the record behind a confirmed push as paid.
// Gateways replay callbacks, so a record that was already settled counts as
// success rather than an error.
func settlePendingPayment(ctx context.Context, pending *model.PendingPayment, paymentID, method string) error {
	_, err := completePayment(ctx, pending.Kind, pending.RecordID, paymentID, method)
	if errors.Is(err, parking.ErrAlreadyPaid) {
		util.Log("Callback replayed for settled", pending.Kind, pending.RecordID)
		return nil
	}
	return err
}

// MakePaymentHandler charges a card through Stripe and, on success, marks the
// ticket or fine paid with the PaymentIntent id as the stored payment
// reference.
func MakePaymentHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PaymentMethodID == "" {
		util.RespondWithError(w, http.StatusBadRequest, "paymentMethodId is required")
		return
	}
	kind, recordID, _, amount, err := resolveAmount(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	stripe.Key = util.GoDotEnvVariable("STRIPE_SECRET_KEY")
	currency := util.GoDotEnvVariable("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "lkr"
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(amount) * 100),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String(req.PaymentMethodID),
		Confirm:            stripe.Bool(true),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String("CityPark " + kind + " payment " + recordID),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		util.Log("Stripe error:", err.Error())
		util.RespondWithError(w, http.StatusBadGateway, "Payment failed, Try Again Later")
		return
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		util.RespondWithJSON(w, http.StatusAccepted, map[string]interface{}{
			"paymentId": pi.ID,
			"status":    string(pi.Status),
		})
		return
	}
	receipt, err := completePayment(r.Context(), kind, recordID, pi.ID, "card")
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if owner, uerr := findUserByID(r.Context(), userID); uerr == nil {
		util.SendNotification(owner.FCMToken, "Your CityPark payment was successful.")
	}
	util.Log("Card payment completed:", pi.ID, kind, recordID)
	util.RespondWithJSON(w, http.StatusOK, receipt)
}

// MpesaPaymentHandler starts an STK push for a ticket or fine. The pending
// payment is stored first; the gateway confirms (or not) through /rcb.
func MpesaPaymentHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, recordID, vehicle, amount, err := resolveAmount(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	owner, err := findUserByID(r.Context(), userID)
	if err != nil {
		util.RespondWithError(w, http.StatusNotFound, "User not Found!")
		return
	}

	pending := model.PendingPayment{
		PaymentID:     primitive.NewObjectID(),
		UserID:        userID,
		Kind:          kind,
		RecordID:      recordID,
		VehicleNumber: vehicle,
		Amount:        amount,
	}
	paymentCollection, err := util.GetCollection("payments")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	if _, err := paymentCollection.InsertOne(r.Context(), pending); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}

	svc, err := mpesa.New(
		util.GoDotEnvVariable("MPESA_APP_KEY"),
		util.GoDotEnvVariable("MPESA_APP_SECRET"),
		mpesa.SANDBOX,
	)
	if err != nil {
		util.Log("Mpesa init error:", err.Error())
		util.RespondWithError(w, http.StatusBadGateway, "Payment failed, Try Again Later")
		return
	}
	shortCode := util.GoDotEnvVariable("MPESA_SHORT_CODE")
	callback := util.GoDotEnvVariable("PAYMENT_CALLBACK_URL") + "?paymentid=" + pending.PaymentID.Hex()
	res, err := svc.Simulation(mpesa.Express{
		BusinessShortCode: shortCode,
		Password:          util.GoDotEnvVariable("MPESA_PASSWORD"),
		Timestamp:         util.GoDotEnvVariable("MPESA_TIMESTAMP"),
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            owner.PhoneNumber,
		PartyB:            shortCode,
		PhoneNumber:       owner.PhoneNumber,
		CallBackURL:       callback,
		AccountReference:  "CityPark",
		TransactionDesc:   "CityPark " + kind + " payment",
	})
	if err != nil {
		util.Log("STK push not sent:", err.Error())
		util.RespondWithError(w, http.StatusBadGateway, "Payment failed, Try Again Later")
		return
	}
	var resMap map[string]interface{}
	if err := json.Unmarshal([]byte(res), &resMap); err != nil {
		util.Log("Error decoding STK response")
	}
	if code := fmt.Sprintf("%v", resMap["ResponseCode"]); code != "0" {
		desc := fmt.Sprintf("%v", resMap["ResponseDescription"])
		util.SendNotification(owner.FCMToken, desc)
	}
	util.RespondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"result":    "Payment Initiated",
		"paymentId": pending.PaymentID.Hex(),
	})
}

type mpesaCallback struct {
	Body struct {
		StkCallback struct {
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func (c *mpesaCallback) metadata(name string) string {
	for _, item := range c.Body.StkCallback.CallbackMetadata.Item {
		if item.Name == name {
			return fmt.Sprintf("%v", item.Value)
		}
	}
	return ""
}

// CallBackHandler is called by the M-Pesa gateway once the customer confirms
// or rejects the push. A confirmed payment settles the ticket or fine it was
// opened for.
func CallBackHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	util.Log("Callback called by mpesa...")
	var cb mpesaCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		util.Log("Error parsing callback:", err.Error())
		util.RespondWithError(w, http.StatusBadRequest, "Unable to read request")
		return
	}
	paymentID := r.URL.Query().Get("paymentid")
	pid, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		util.RespondWithError(w, http.StatusBadRequest, "Invalid payment id")
		return
	}
	paymentCollection, err := util.GetCollection("payments")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	var pending model.PendingPayment
	if err := paymentCollection.FindOne(r.Context(), bson.M{"_id": pid}).Decode(&pending); err != nil {
		util.RespondWithError(w, http.StatusNotFound, "Payment not Found!")
		return
	}
	if pending.IsSuccessful {
		util.Log("Callback replayed for payment", pid.Hex())
		util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Payment updated"})
		return
	}
	owner, _ := findUserByID(r.Context(), pending.UserID)

	stk := cb.Body.StkCallback
	if stk.ResultCode != 0 {
		util.Log("Payment not successful:", stk.ResultDesc)
		update := bson.M{"$set": bson.M{"resultDesc": stk.ResultDesc}}
		if _, err := paymentCollection.UpdateOne(r.Context(), bson.M{"_id": pid}, update); err != nil {
			util.Log("Error updating payment:", err.Error())
		}
		if owner != nil {
			util.SendNotification(owner.FCMToken, stk.ResultDesc)
		}
		util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Payment not successful"})
		return
	}

	receiptNumber := cb.metadata("MpesaReceiptNumber")
	update := bson.M{"$set": bson.M{
		"isSuccessful":       true,
		"mpesaReceiptNumber": receiptNumber,
		"resultDesc":         stk.ResultDesc,
		"checkoutRequestID":  stk.CheckoutRequestID,
		"transactionDate":    cb.metadata("TransactionDate"),
	}}
	if _, err := paymentCollection.UpdateOne(r.Context(), bson.M{"_id": pid}, update); err != nil {
		util.Log("Error updating payment:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	if err := settlePendingPayment(r.Context(), &pending, receiptNumber, "mpesa"); err != nil {
		util.Log("Error settling", pending.Kind, pending.RecordID, ":", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	if owner != nil {
		util.SendNotification(owner.FCMToken, "Your CityPark payment was successful.")
	}
	util.Log("Payment updated successfully...")
	util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Payment updated"})
}
