package app

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kyokomi/emoji"

	"citypark/controllers"
	"citypark/parking"
	"citypark/routes"
	"citypark/store"
	"citypark/util"
)

// Run wires the stores and services together and starts the HTTP server.
func Run() {
	godotenv.Load()
	util.InitLogger()

	if err := util.InitDB(); err != nil {
		log.Fatal("Cannot connect to MongoDB: ", err)
	}

	tickets, _ := util.GetCollection("tickets")
	fines, _ := util.GetCollection("fines")
	receipts, _ := util.GetCollection("receipts")
	zones, _ := util.GetCollection("zones")

	ticketStore := store.NewTicketStore(tickets)
	fineStore := store.NewFineStore(fines)
	receiptStore := store.NewReceiptStore(receipts)
	zoneStore := store.NewZoneStore(zones)

	zoneService := parking.NewZoneService(zoneStore, util.EnvInt("DEFAULT_ZONE_RATE", parking.DefaultZoneRate))
	ticketService := parking.NewTicketService(ticketStore, fineStore, receiptStore, zoneService)
	ticketService.MaxExtensions = util.EnvInt("MAX_EXTENSIONS", parking.DefaultMaxExtensions)
	ticketService.MaxTicketHours = util.EnvInt("MAX_TICKET_HOURS", parking.DefaultMaxTicketHours)
	fineService := parking.NewFineService(fineStore, receiptStore)

	controllers.Setup(
		ticketService,
		fineService,
		zoneService,
		receiptStore,
		util.NewDynamoClient(),
		util.NewRekognitionClient(),
	)

	util.Log(emoji.Sprint("Starting citypark on port :car:"), util.GetPort())
	routes.Routes()
}
