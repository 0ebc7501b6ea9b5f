package routes

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"citypark/controllers"
	"citypark/util"
)

// Routes is...
func Routes() {
	r := mux.NewRouter()

	// Owner accounts
	r.HandleFunc("/register", controllers.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", controllers.LoginHandler).Methods("POST")
	r.HandleFunc("/profile", controllers.ProfileHandler).Methods("GET")
	r.HandleFunc("/token/{id}", controllers.FCMTokenHandler).Methods("PUT")

	// Vehicles
	r.HandleFunc("/addVehicle", controllers.AddVehicleHandler).Methods("POST")
	r.HandleFunc("/userVehicles", controllers.UserVehiclesHandler).Methods("GET")
	r.HandleFunc("/deleteVehicle/{id}", controllers.DeleteVehicleHandler).Methods("DELETE")

	// Tickets
	r.HandleFunc("/tickets", controllers.CreateTicketHandler).Methods("POST")
	r.HandleFunc("/tickets/{ticketId}", controllers.GetTicketHandler).Methods("GET")
	r.HandleFunc("/userTickets", controllers.UserTicketsHandler).Methods("GET")
	r.HandleFunc("/tickets/{ticketId}/extend", controllers.ExtendTicketHandler).Methods("PUT")
	r.HandleFunc("/tickets/{ticketId}/cancel", controllers.CancelTicketHandler).Methods("PUT")
	r.HandleFunc("/tickets/{ticketId}/convertToFine", controllers.ConvertToFineHandler).Methods("PUT")

	// Fines
	r.HandleFunc("/fines", controllers.IssueFineHandler).Methods("POST")
	r.HandleFunc("/fines/{id}/pay", controllers.PayFineHandler).Methods("PUT")
	r.HandleFunc("/outstandingFine/{vehicleReg}", controllers.OutstandingFineHandler).Methods("GET")
	r.HandleFunc("/receipts/{vehicleReg}", controllers.VehicleReceiptsHandler).Methods("GET")

	// Plate recognition
	r.HandleFunc("/recognizePlate", controllers.RecognizePlateHandler).Methods("POST")

	// Payments
	r.HandleFunc("/makePayment", controllers.MakePaymentHandler).Methods("POST")
	r.HandleFunc("/mpesaPayment", controllers.MpesaPaymentHandler).Methods("POST")
	r.HandleFunc("/rcb", controllers.CallBackHandler).Methods("POST")

	// Zones
	r.HandleFunc("/zones", controllers.ZonesHandler).Methods("GET")
	r.HandleFunc("/zones", controllers.AddZoneHandler).Methods("POST")

	// Inspectors (officer console, DynamoDB)
	r.HandleFunc("/inspectors", controllers.AddInspectorHandler).Methods("POST")
	r.HandleFunc("/inspectors", controllers.ListInspectorsHandler).Methods("GET")
	r.HandleFunc("/inspectors/{id}", controllers.GetInspectorHandler).Methods("GET")
	r.HandleFunc("/inspectors/{id}", controllers.UpdateInspectorHandler).Methods("PUT")
	r.HandleFunc("/inspectors/{id}", controllers.DeleteInspectorHandler).Methods("DELETE")

	log.Fatal(http.ListenAndServe(util.GetPort(), r))
}
