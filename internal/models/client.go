package models

import "time"

// Client is one row of a (user, day) partition. Seq records insertion
// order; Key is the identifier handed out to callers.
type Client struct {
	Seq    uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_clients_partition_key,priority:1" json:"user_id"`
	Day    string `gorm:"size:3;not null;uniqueIndex:idx_clients_partition_key,priority:2" json:"day"`
	Key    string `gorm:"column:client_key;size:36;not null;uniqueIndex:idx_clients_partition_key,priority:3" json:"id"`

	Name    string `gorm:"size:200;not null" json:"name"`
	Address string `gorm:"size:300;not null" json:"address"`
	Visited bool   `gorm:"not null" json:"visited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
