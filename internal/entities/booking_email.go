package entities

type BookingEmailData struct {
	InviteeName        string
	HostName           string
	EventTitle         string
	BookingCode        string
	StartTimeFormatted string
	EndTimeFormatted   string
	VideoCallSoftware  string
	CurrentYear        int
}
