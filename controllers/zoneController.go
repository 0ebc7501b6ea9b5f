package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"citypark/model"
	"citypark/util"
)

// ZonesHandler lists the parking zones for the apps' zone picker.
func ZonesHandler(w http.ResponseWriter, r *http.Request) {
	zones, err := zoneService.Zones.All(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if zones == nil {
		zones = []*model.Zone{}
	}
	util.RespondWithJSON(w, http.StatusOK, zones)
}

// AddZoneHandler lets the officer console create a zone. The rate stays as the
// free text entered ("Rs. 150 per hour"); parsing happens when it is used.
func AddZoneHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var zone model.Zone
	if err := json.NewDecoder(r.Body).Decode(&zone); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if zone.ZoneCode == "" || zone.Location == "" {
		util.RespondWithError(w, http.StatusBadRequest, "zoneCode and location are required")
		return
	}
	zone.ID = primitive.NewObjectID()
	if err := zoneService.Zones.Insert(r.Context(), &zone); err != nil {
		respondDomainError(w, err)
		return
	}
	util.Log("Zone added:", zone.ZoneCode, "-", zone.Location)
	util.RespondWithJSON(w, http.StatusCreated, zone)
}
