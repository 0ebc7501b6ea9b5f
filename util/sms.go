package util

import (
	"github.com/AndroidStudyOpenSource/africastalking-go/sms"
)

// SendSMS texts a phone number through Africa's Talking. Like push, SMS is
// best effort only.
func SendSMS(phoneNumber string, message string) {
	if phoneNumber == "" {
		return
	}
	var (
		username = GoDotEnvVariable("AT_USERNAME")
		apiKey   = GoDotEnvVariable("AT_API_KEY")
		env      = GoDotEnvVariable("AT_ENV")
	)
	if env == "" {
		env = "sandbox"
	}
	smsService := sms.NewService(username, apiKey, env)
	if _, err := smsService.Send("", "+"+phoneNumber, message); err != nil {
		Log("SMS send error:", err.Error())
	}
}
