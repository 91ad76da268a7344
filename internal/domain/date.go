package domain

import (
	"bytes"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Date is a time accepted from clients in any common layout: RFC3339
// timestamps from scripts and bare calendar dates from HTML date inputs.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	t, err := dateparse.ParseIn(string(b), time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", b, err)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return d.Time.MarshalJSON()
}

func NewDate(t time.Time) *Date { return &Date{Time: t} }
