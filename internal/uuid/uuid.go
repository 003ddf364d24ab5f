// Package uuid provides a UUID that can be used as a command line flag.
package uuid

import (
	"fmt"

	google_uuid "github.com/google/uuid"
	"github.com/spf13/pflag"
)

// UUID implements pflag.Value. An empty flag value is the Nil UUID.
type UUID struct {
	google_uuid.UUID
}

var _ pflag.Value = (*UUID)(nil)

// Set implements the pflag.Value interface.
func (u *UUID) Set(p string) error {
	if p == "" {
		u.UUID = google_uuid.Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return fmt.Errorf("%q is not a valid UUID: %w", p, err)
	}

	u.UUID = parsed
	return nil
}

// String returns the UUID, or an empty string for the Nil UUID.
func (u *UUID) String() string {
	if u.UUID == google_uuid.Nil {
		return ""
	}

	return u.UUID.String()
}

// Type implements the pflag.Value interface.
func (u *UUID) Type() string {
	return "uuid"
}
