package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Device is the device class of a visitor.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// Visitor is a single page-visit record.
type Visitor struct {
	IP        string    `bson:"ip" json:"ip"`
	Country   string    `bson:"country" json:"country"`
	Browser   string    `bson:"browser" json:"browser"`
	Device    Device    `bson:"device" json:"device"`
	VisitDate time.Time `bson:"visitDate" json:"visitDate"`
}

// Validate checks the required visitor fields.
func (v Visitor) Validate() error {
	var missing []string
	if strings.TrimSpace(v.IP) == "" {
		missing = append(missing, "ip")
	}
	if strings.TrimSpace(v.Country) == "" {
		missing = append(missing, "country")
	}
	if strings.TrimSpace(v.Browser) == "" {
		missing = append(missing, "browser")
	}
	if len(missing) > 0 {
		return fmt.Errorf("visitor is missing %s", strings.Join(missing, ", "))
	}
	if v.Device != DeviceMobile && v.Device != DeviceDesktop {
		return errors.New("device must be one of mobile, desktop")
	}
	return nil
}

// Analytics is the visit log embedded in every template.
// TotalVisits always equals len(Visitors); both are written by one update.
type Analytics struct {
	Visitors    []Visitor `bson:"visitors" json:"visitors"`
	TotalVisits int       `bson:"totalVisits" json:"totalVisits"`
}

// NewAnalytics returns an empty analytics block.
func NewAnalytics() Analytics {
	return Analytics{Visitors: []Visitor{}}
}
