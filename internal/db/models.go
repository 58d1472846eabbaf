package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	UserName     sql.NullString
	Image        sql.NullString
	Phone        sql.NullString
	GrantEmail   sql.NullString
	GrantToken   []byte // OAuth token JSON; nil until a calendar is connected
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Availability struct {
	ID       int
	UserID   string
	Day      string // weekday name, "Monday" .. "Sunday"
	FromTime string // "HH:mm"
	TillTime string // "HH:mm"
	IsActive bool
}

type EventType struct {
	ID                string
	UserID            string
	Title             string
	URL               string
	Description       string
	Duration          int // minutes
	VideoCallSoftware string
	Active            bool
	CreatedAt         time.Time
}

type Booking struct {
	ID              int
	Code            string
	EventTypeID     string
	UserID          string
	InviteeName     string
	InviteeEmail    string
	StartTime       time.Time
	EndTime         time.Time
	Status          string
	CalendarEventID sql.NullString
	ReminderSent    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
