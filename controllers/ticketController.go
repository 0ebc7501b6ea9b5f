package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"citypark/parking"
	"citypark/util"
)

type ticketRequest struct {
	VehicleNumber string `json:"vehicleNumber"`
	ParkingZone   string `json:"parkingZone"`
	Duration      string `json:"duration"`
}

// respondDomainError maps the parking sentinel errors onto the response
// envelope.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, parking.ErrTicketNotFound),
		errors.Is(err, parking.ErrFineNotFound),
		errors.Is(err, parking.ErrZoneNotFound):
		util.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, parking.ErrVehicleRequired),
		errors.Is(err, parking.ErrZoneRequired):
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, parking.ErrCancelWindowClosed),
		errors.Is(err, parking.ErrAlreadyPaid),
		errors.Is(err, parking.ErrTicketInactive),
		errors.Is(err, parking.ErrExtensionLimit),
		errors.Is(err, parking.ErrConflict):
		util.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		util.Log("Unexpected error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
	}
}

// CreateTicketHandler opens a ticket for the authenticated owner. A vehicle
// with an outstanding fine cannot park until the fine is cleared.
func CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	outstanding, err := fineService.Outstanding(r.Context(), req.VehicleNumber)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if outstanding != nil {
		util.RespondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "Outstanding fine must be cleared before parking",
			"fine":  outstanding,
		})
		return
	}
	ticket, err := ticketService.Create(r.Context(), userID, req.VehicleNumber, req.ParkingZone, req.Duration)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Ticket created:", ticket.TicketID, "for", ticket.VehicleNumber)
	util.RespondWithJSON(w, http.StatusCreated, ticket)
}

// GetTicketHandler is...
func GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	ticket, err := ticketService.Get(r.Context(), params["ticketId"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.RespondWithJSON(w, http.StatusOK, ticket)
}

// UserTicketsHandler lists the authenticated owner's tickets.
func UserTicketsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	tickets, err := ticketService.ForUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.RespondWithJSON(w, http.StatusOK, tickets)
}

// ExtendTicketHandler adds time to an active ticket.
func ExtendTicketHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	params := mux.Vars(r)
	var req struct {
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	ticket, err := ticketService.Extend(r.Context(), params["ticketId"], req.Duration)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Ticket extended:", ticket.TicketID, "until", ticket.EndTime)
	util.RespondWithJSON(w, http.StatusOK, ticket)
}

// CancelTicketHandler voids a ticket while the cancel window is open. The
// 10-minute rule is enforced here on the server clock, not on a flag the app
// wrote earlier.
func CancelTicketHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	ticket, err := ticketService.Cancel(r.Context(), params["ticketId"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Ticket cancelled:", ticket.TicketID)
	util.RespondWithJSON(w, http.StatusOK, ticket)
}

// ConvertToFineHandler is the pay-later flow: the unpaid ticket becomes a fine
// and the owner is told by SMS and push.
func ConvertToFineHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	ticket, err := ticketService.Get(r.Context(), params["ticketId"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	fine, err := ticketService.ConvertToFine(r.Context(), params["ticketId"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if owner, err := findUserByID(r.Context(), ticket.UserID); err == nil {
		msg := "Your parking fee for " + ticket.VehicleNumber + " was not paid and has been recorded as a fine. Please settle it before parking again."
		util.SendSMS(owner.PhoneNumber, msg)
		util.SendNotification(owner.FCMToken, msg)
	}
	util.Log("Ticket converted to fine:", ticket.TicketID, "->", fine.ID.Hex())
	util.RespondWithJSON(w, http.StatusOK, fine)
}
