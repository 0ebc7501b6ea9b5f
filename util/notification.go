package util

import (
	"github.com/appleboy/go-fcm"
)

// SendNotification pushes a message to one device. Delivery failures are
// logged and swallowed; a missed push never fails the operation that
// triggered it.
func SendNotification(fcmToken string, notificationBody string) {
	if fcmToken == "" {
		return
	}
	client, err := fcm.NewClient(GoDotEnvVariable("FCM_SERVER_KEY"))
	if err != nil {
		Log("FCM client error:", err.Error())
		return
	}
	msg := &fcm.Message{
		To: fcmToken,
		Notification: &fcm.Notification{
			Title: "CityPark",
			Body:  notificationBody,
		},
	}
	if _, err := client.Send(msg); err != nil {
		Log("FCM send error:", err.Error())
	}
}
