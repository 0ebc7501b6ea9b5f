package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/gorilla/mux"

	"citypark/model"
	"citypark/util"
)

func inspectorKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"inspectorId": {S: aws.String(id)},
	}
}

// AddInspectorHandler is the officer console creating an inspector record in
// the DynamoDB table.
func AddInspectorHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	var inspector model.Inspector
	if err := json.NewDecoder(r.Body).Decode(&inspector); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if inspector.InspectorID == "" {
		util.RespondWithError(w, http.StatusBadRequest, "inspectorId is required")
		return
	}
	item, err := dynamodbattribute.MarshalMap(inspector)
	if err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	_, err = dynamoClient.PutItemWithContext(r.Context(), &dynamodb.PutItemInput{
		TableName: aws.String(util.InspectorsTable()),
		Item:      item,
	})
	if err != nil {
		util.Log("Dynamo put error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusCreated, inspector)
}

// ListInspectorsHandler is...
func ListInspectorsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	out, err := dynamoClient.ScanWithContext(r.Context(), &dynamodb.ScanInput{
		TableName: aws.String(util.InspectorsTable()),
	})
	if err != nil {
		util.Log("Dynamo scan error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	inspectors := []model.Inspector{}
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &inspectors); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, inspectors)
}

// GetInspectorHandler is...
func GetInspectorHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	params := mux.Vars(r)
	out, err := dynamoClient.GetItemWithContext(r.Context(), &dynamodb.GetItemInput{
		TableName: aws.String(util.InspectorsTable()),
		Key:       inspectorKey(params["id"]),
	})
	if err != nil {
		util.Log("Dynamo get error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	if out.Item == nil {
		util.RespondWithError(w, http.StatusNotFound, "Inspector not Found!")
		return
	}
	var inspector model.Inspector
	if err := dynamodbattribute.UnmarshalMap(out.Item, &inspector); err != nil {
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, inspector)
}

// UpdateInspectorHandler updates the mutable fields of an inspector record.
func UpdateInspectorHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	params := mux.Vars(r)
	var inspector model.Inspector
	if err := json.NewDecoder(r.Body).Decode(&inspector); err != nil {
		util.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := dynamoClient.UpdateItemWithContext(r.Context(), &dynamodb.UpdateItemInput{
		TableName: aws.String(util.InspectorsTable()),
		Key:       inspectorKey(params["id"]),
		UpdateExpression: aws.String(
			"SET #name = :name, email = :email, phoneNumber = :phone, assignedZone = :zone, badgeNumber = :badge"),
		ExpressionAttributeNames: map[string]*string{
			"#name": aws.String("name"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":name":  {S: aws.String(inspector.Name)},
			":email": {S: aws.String(inspector.Email)},
			":phone": {S: aws.String(inspector.PhoneNumber)},
			":zone":  {S: aws.String(inspector.AssignedZone)},
			":badge": {S: aws.String(inspector.BadgeNumber)},
		},
		ConditionExpression: aws.String("attribute_exists(inspectorId)"),
	})
	if err != nil {
		util.Log("Dynamo update error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Inspector Updated Successfully"})
}

// DeleteInspectorHandler is...
func DeleteInspectorHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromRequest(r); err != nil {
		util.RespondWithError(w, http.StatusUnauthorized, "You are not Authorized!")
		return
	}
	params := mux.Vars(r)
	_, err := dynamoClient.DeleteItemWithContext(r.Context(), &dynamodb.DeleteItemInput{
		TableName: aws.String(util.InspectorsTable()),
		Key:       inspectorKey(params["id"]),
	})
	if err != nil {
		util.Log("Dynamo delete error:", err.Error())
		util.RespondWithError(w, http.StatusInternalServerError, "Error, Try Again Later")
		return
	}
	util.RespondWithJSON(w, http.StatusOK, model.ResponseResult{Result: "Inspector Deleted Successfully"})
}
