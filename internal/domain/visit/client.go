package visit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column widths of the stored record, in characters.
const (
	MaxNameLength    = 200
	MaxAddressLength = 300
	MaxIDLength      = 36
)

// Client is one entry of a partition. ID is assigned by the backend.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Visited bool   `json:"visited"`
}

// Data strips the identifier, leaving the stored record.
func (c Client) Data() ClientData {
	return ClientData{Name: c.Name, Address: c.Address, Visited: c.Visited}
}

// ClientData is the record stored under a client identifier.
type ClientData struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Visited bool   `json:"visited"`
}

// Normalize trims name and address and rejects empty or oversized values.
func (d ClientData) Normalize() (ClientData, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	if d.Name == "" || d.Address == "" {
		return d, ErrInvalidClient
	}
	if utf8.RuneCountInString(d.Name) > MaxNameLength ||
		utf8.RuneCountInString(d.Address) > MaxAddressLength {
		return d, ErrClientTooLong
	}
	return d, nil
}

// ValidateID rejects identifiers that cannot name a stored record.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrClientNotFound
	}
	if utf8.RuneCountInString(id) > MaxIDLength {
		return ErrInvalidClientID
	}
	return nil
}

// Partition isolates one user's one day's collection.
type Partition struct {
	UserID string
	Day    Day
}

func (p Partition) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrInvalidPartition
	}
	if !p.Day.Valid() {
		return ErrInvalidDay
	}
	return nil
}

// Path is the logical location of the partition's collection. It doubles
// as the change-notification topic.
func (p Partition) Path() string {
	return fmt.Sprintf("users/%s/clients/%s", p.UserID, p.Day)
}

// Reversed returns a copy of clients in reverse order.
func Reversed(clients []Client) []Client {
	out := make([]Client, len(clients))
	for i, c := range clients {
		out[len(clients)-1-i] = c
	}
	return out
}

// Find returns the client with the given id.
func Find(clients []Client, id string) (Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}
