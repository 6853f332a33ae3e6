package model

import (
	"strings"
	"time"
)

// Client is one row of the clients table. The client number is the business
// key; the backing store does not enforce uniqueness, so the first matching
// row is treated as canonical.
type Client struct {
	Number     string
	Sector     string
	Name       string
	Address    string
	Phone      string
	Seal       string
	ID         string
	ModifiedAt time.Time
}

// ClientFromRow materializes a client from a padded clients-table row.
func ClientFromRow(row []string, loc *time.Location) Client {
	c := Client{
		Number:  strings.TrimSpace(row[ClientColNumber]),
		Sector:  strings.TrimSpace(row[ClientColSector]),
		Name:    row[ClientColName],
		Address: row[ClientColAddress],
		Phone:   strings.TrimSpace(row[ClientColPhone]),
		Seal:    strings.TrimSpace(row[ClientColSeal]),
		ID:      strings.TrimSpace(row[ClientColID]),
	}
	if t, err := ParseTime(row[ClientColModified], loc); err == nil {
		c.ModifiedAt = t
	}
	return c
}

// Row renders the client as a full clients-table row for an append.
func (c Client) Row() []string {
	row := make([]string, ClientColumnCount)
	row[ClientColNumber] = c.Number
	row[ClientColSector] = c.Sector
	row[ClientColName] = c.Name
	row[ClientColAddress] = c.Address
	row[ClientColPhone] = c.Phone
	row[ClientColSeal] = c.Seal
	row[ClientColID] = c.ID
	row[ClientColModified] = FormatTime(c.ModifiedAt)
	return row
}
