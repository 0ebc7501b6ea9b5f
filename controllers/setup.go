package controllers

import (
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/rekognition"

	"citypark/parking"
)

// Shared service instances, wired once from app.Run. Handlers are plain
// functions (mux style), so dependencies live at package level.
var (
	ticketService *parking.TicketService
	fineService   *parking.FineService
	zoneService   *parking.ZoneService
	receiptStore  parking.ReceiptStore
	dynamoClient  *dynamodb.DynamoDB
	ocrClient     *rekognition.Rekognition
)

// Setup is...
func Setup(
	tickets *parking.TicketService,
	fines *parking.FineService,
	zones *parking.ZoneService,
	receipts parking.ReceiptStore,
	dynamo *dynamodb.DynamoDB,
	ocr *rekognition.Rekognition,
) {
	ticketService = tickets
	fineService = fines
	zoneService = zones
	receiptStore = receipts
	dynamoClient = dynamo
	ocrClient = ocr
}
