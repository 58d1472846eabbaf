package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"calsync/internal/entities"
	"calsync/internal/repository"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

var bookingEmailTmpl = template.Must(template.New("booking_email").Parse(`
<html>
  <body style="font-family:sans-serif">
    <p>Hello {{.InviteeName}},</p>
    <p>Your meeting <strong>{{.EventTitle}}</strong> with {{.HostName}} is {{.Status}}.</p>
    <ul>
      <li>Booking code: {{.Data.BookingCode}}</li>
      <li>Starts: {{.Data.StartTimeFormatted}}</li>
      <li>Ends: {{.Data.EndTimeFormatted}}</li>
      <li>Where: {{.Data.VideoCallSoftware}}</li>
    </ul>
    <p>CalSync. All rights reserved, {{.Data.CurrentYear}}.</p>
  </body>
</html>`))

// SendBookingEmail notifies the invitee that their booking reached the given
// status (confirmed, canceled). The send runs in the background; delivery
// failures are logged, never surfaced to the booking flow.
func (s *SenderService) SendBookingEmail(data entities.BookingEmailData, toEmail, status string) {
	subject := fmt.Sprintf("Your meeting %q with %s is %s - Code: %s",
		data.EventTitle, data.HostName, status, data.BookingCode)

	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour meeting %q with %s is %s.\n\n"+
			"Booking details:\n"+
			"Booking code: %s\n"+
			"Starts: %s\n"+
			"Ends: %s\n"+
			"Where: %s\n\n"+
			"CalSync. All rights reserved.",
		data.InviteeName, data.EventTitle, data.HostName, status,
		data.BookingCode, data.StartTimeFormatted, data.EndTimeFormatted, data.VideoCallSoftware,
	)

	var htmlBodyBuffer bytes.Buffer
	err := bookingEmailTmpl.Execute(&htmlBodyBuffer, struct {
		InviteeName, HostName, EventTitle, Status string
		Data                                      entities.BookingEmailData
	}{data.InviteeName, data.HostName, data.EventTitle, status, data})
	if err != nil {
		log.Printf("ALERT: error rendering booking email HTML for %s: %v", data.BookingCode, err)
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, toName, subject, plainBody, htmlBody string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); errEmail != nil {
			log.Printf("ALERT (async): email for booking %s failed: %v", data.BookingCode, errEmail)
		}
	}(toEmail, data.InviteeName, subject, plainTextBody, htmlBody)
}

// SendReminderEmail mails the invitee shortly before the meeting starts.
// Unlike confirmations this runs synchronously; the cron pass only marks the
// reminder sent when delivery succeeded.
func (s *SenderService) SendReminderEmail(info repository.ReminderInfo) error {
	subject := fmt.Sprintf("Reminder: %q with %s starts at %s",
		info.EventTitle, info.HostName, info.StartTime.Format("15:04"))

	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder of your upcoming meeting %q with %s.\n\n"+
			"Starts: %s\n"+
			"Ends: %s\n"+
			"Where: %s\n"+
			"Booking code: %s\n\n"+
			"CalSync. All rights reserved.",
		info.InviteeName, info.EventTitle, info.HostName,
		info.StartTime.Format("02 Jan 2006 15:04"),
		info.EndTime.Format("02 Jan 2006 15:04"),
		info.VideoCallSoftware, info.Code,
	)

	return SendEmailWithSendGrid(info.InviteeEmail, info.InviteeName, subject, body, "")
}

// SendReminderSMS texts the host if a phone number is on file.
func (s *SenderService) SendReminderSMS(info repository.ReminderInfo) {
	if !info.HostPhone.Valid || info.HostPhone.String == "" {
		return
	}

	message := fmt.Sprintf("CalSync: %q with %s starts at %s.\nDetails in your calendar.",
		info.EventTitle, info.InviteeName, info.StartTime.Format("02/01 15:04"))

	if errSMS := SendSMS(info.HostPhone.String, message); errSMS != nil {
		log.Printf("ALERT: reminder SMS for booking %s to %s failed: %v", info.Code, info.HostPhone.String, errSMS)
	}
}
