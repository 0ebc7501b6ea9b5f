package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"citypark/model"
	"citypark/parking"
	"citypark/util"
)

// OutstandingFineHandler tells the inspector app whether a plate has an unpaid
// fine. "clear" means the vehicle may park.
func OutstandingFineHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	fine, err := fineService.Outstanding(r.Context(), params["vehicleReg"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if fine == nil {
		util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "clear"})
		return
	}
	util.RespondWithJSON(w, http.StatusOK, fine)
}

// IssueFineHandler records an inspector-detected violation.
func IssueFineHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var fine model.Fine
	if err := json.NewDecoder(r.Body).Decode(&fine); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	issued, err := fineService.Issue(r.Context(), &fine)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Fine issued:", issued.ID.Hex(), "for", issued.VehicleNumber)
	util.RespondWithJSON(w, http.StatusCreated, issued)
}

// PayFineHandler settles a fine after the gateway has confirmed payment.
func PayFineHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	params := mux.Vars(r)
	var req struct {
		PaymentID     string `json:"paymentId"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PaymentID == "" {
		util.RespondWithError(w, http.StatusBadRequest, "paymentId is required")
		return
	}
	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}
	receipt, err := fineService.Pay(r.Context(), params["id"], req.PaymentID, method)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Fine paid:", params["id"])
	util.RespondWithJSON(w, http.StatusOK, receipt)
}

// VehicleReceiptsHandler lists the payment history for a plate.
func VehicleReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	receipts, err := receiptStore.FindByVehicle(r.Context(), parking.NormalizeVehicleNumber(params["vehicleReg"]))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if receipts == nil {
		receipts = []*model.PaymentReceipt{}
	}
	util.RespondWithJSON(w, http.StatusOK, receipts)
}
