package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"citypark/model"
	"citypark/parking"
	"citypark/util"
)

// AddVehicleHandler registers a plate under the authenticated owner.
func AddVehicleHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var vehicle model.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	vehicle.RegistrationNumber = parking.NormalizeVehicleNumber(vehicle.RegistrationNumber)
	if vehicle.RegistrationNumber == "" {
		util.RespondWithError(w, http.StatusBadRequest, parking.ErrVehicleRequired.Error())
		return
	}
	collection, err := util.GetCollection("vehicles")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	err = collection.FindOne(r.Context(), bson.M{"registrationNumber": vehicle.RegistrationNumber}).Err()
	if err == nil {
		util.RespondWithError(w, http.StatusConflict, "Vehicle already Exists!!")
		return
	}
	if err != mongo.ErrNoDocuments {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	vehicle.VehicleID = primitive.NewObjectID()
	vehicle.UserID = userID
	if _, err := collection.InsertOne(r.Context(), vehicle); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error While Adding Vehicle, Try Again")
		return
	}
	util.RespondWithJSON(w, http.StatusCreated, vehicle)
}

// UserVehiclesHandler is...
func UserVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	collection, err := util.GetCollection("vehicles")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	cur, err := collection.Find(r.Context(), bson.M{"userId": userID})
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	defer cur.Close(r.Context())
	results := []*model.Vehicle{}
	for cur.Next(r.Context()) {
		var v model.Vehicle
		if err := cur.Decode(&v); err != nil {
			util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
			return
		}
		results = append(results, &v)
	}
	util.RespondWithJSON(w, http.StatusOK, results)
}

// DeleteVehicleHandler is...
func DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	params := mux.Vars(r)
	oid, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		util.RespondWithError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}
	collection, err := util.GetCollection("vehicles")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	res, err := collection.DeleteOne(r.Context(), bson.M{"_id": oid, "userId": userID})
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	if res.DeletedCount == 0 {
		util.RespondWithError(w, http.StatusNotFound, "Vehicle not Found!")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Vehicle Deleted Successfully"})
}
