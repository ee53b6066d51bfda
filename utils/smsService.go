package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// SendOTPToMobile delivers an OTP through the SMS gateway
func SendOTPToMobile(mobile, otp string) error {
	client := resty.New().SetTimeout(10 * time.Second)

	// OTP and validity window in minutes, pipe-separated per gateway template
	variables := fmt.Sprintf("%s|10", otp)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.SmsApiKey,
			"route":            "dlt",
			"sender_id":        config.AppConfig.SmsSenderID,
			"variables_values": variables,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.SmsApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
