package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"citypark/util"
)

// RecognizePlateHandler runs the inspector's camera frame through text
// detection and returns the best plate guess with its confidence. The app
// shows the result for the inspector to confirm before any lookup.
func RecognizePlateHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		util.RespondWithError(w, http.StatusBadRequest, "image must be base64 encoded")
		return
	}
	plate, confidence, err := util.DetectPlate(ocrClient, image)
	if err != nil {
		util.Log("Text detection error:", err.Error())
		util.RespondWithError(w, http.StatusBadGateway, "Error, Try Again Later")
		return
	}
	if plate == "" {
		util.RespondWithError(w, http.StatusNotFound, "No plate detected")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"vehicleNumber": plate,
		"confidence":    confidence,
	})
}
