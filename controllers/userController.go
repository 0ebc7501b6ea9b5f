package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"citypark/model"
	"citypark/util"
)

const tokenLifetimeSeconds = 60 * 60

func findUserByID(ctx context.Context, userID string) (*model.User, error) {
	collection, err := util.GetCollection("users")
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func signToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID.Hex(),
		"email": user.Email,
	})
	return token.SignedString(jwtSecret())
}

// RegisterHandler creates an owner account and returns a signed token.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	collection, err := util.GetCollection("users")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	err = collection.FindOne(r.Context(), bson.M{"email": user.Email}).Err()
	if err == nil {
		util.RespondWithError(w, http.StatusConflict, "Account already Exists!!")
		return
	}
	if err != mongo.ErrNoDocuments {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error While Hashing Password, Try Again Later")
		return
	}
	user.Password = string(hash)
	user.ID = primitive.NewObjectID()
	if _, err := collection.InsertOne(r.Context(), user); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error While Creating User, Try Again")
		return
	}
	tokenString, err := signToken(&user)
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error while generating token, Try again")
		return
	}
	user.Token = tokenString
	user.Exp = tokenLifetimeSeconds
	user.Password = ""
	util.Log("Registered:", user.Email)
	util.RespondWithJSON(w, http.StatusCreated, user)
}

// LoginHandler is...
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var creds model.User
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	collection, err := util.GetCollection("users")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	var user model.User
	err = collection.FindOne(r.Context(), bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	tokenString, err := signToken(&user)
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error while generating token, Try again")
		return
	}
	user.Token = tokenString
	user.Exp = tokenLifetimeSeconds
	user.Password = ""
	util.RespondWithJSON(w, http.StatusOK, user)
}

// ProfileHandler is...
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	user, err := findUserByID(r.Context(), userID)
	if err != nil {
		util.RespondWithError(w, http.StatusNotFound, "User not Found!")
		return
	}
	user.Password = ""
	util.RespondWithJSON(w, http.StatusOK, user)
}

// FCMTokenHandler stores the device token used for payment and fine pushes.
func FCMTokenHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	params := mux.Vars(r)
	var body struct {
		FCMToken string `json:"fcmtoken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	collection, err := util.GetCollection("users")
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	oid, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		util.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	update := bson.M{"$set": bson.M{"fcmtoken": body.FCMToken}}
	if _, err := collection.UpdateOne(r.Context(), bson.M{"_id": oid}, update); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "FCMToken Added Successfully"})
}
