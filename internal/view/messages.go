// Package view holds the screen state of the tracker: which partition is
// shown, the clients in it, and the banner text for failures.
package view

import (
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
)

var messages = map[string]string{
	"invalid_credentials":  "Email or password is incorrect.",
	"email_already_in_use": "That email is already registered.",
	"weak_password":        "Password must be at least 6 characters.",
	"invalid_email":        "Enter a valid email address.",
	"password_too_long":    "Password is too long (72 bytes at most).",
	"password_mismatch":    "Passwords do not match.",
	"unauthorized":         "Your session has expired. Sign in again.",
	"invalid_client":       "Name and address are required.",
	"client_too_long":      "Name is limited to 200 characters and address to 300.",
	"invalid_client_id":    "That client id is not valid.",
	"invalid_day":          "Pick a day of the week.",
	"invalid_partition":    "Sign in to see your clients.",
	"client_not_found":     "That client no longer exists.",
	"subscription_failed":  "Live updates stopped. Reopen the list to try again.",
}

// Message translates err into text for the user, or fallback when the
// error carries no known code.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if m, ok := messages[httperr.CodeOf(err)]; ok {
		return m
	}
	return fallback
}
