package models

import (
	"time"
)

// PoleStatus is the fixed set of pole-condition labels.
type PoleStatus string

const (
	StatusNormal     PoleStatus = "Normal"
	StatusLeaning    PoleStatus = "Leaning"
	StatusCracked    PoleStatus = "Cracked"
	StatusWarped     PoleStatus = "Warped"
	StatusVegetation PoleStatus = "Vegetation"
)

// AllStatuses returns the five condition labels in a fixed order.
func AllStatuses() []PoleStatus {
	return []PoleStatus{StatusNormal, StatusLeaning, StatusCracked, StatusWarped, StatusVegetation}
}

func (s PoleStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusLeaning, StatusCracked, StatusWarped, StatusVegetation:
		return true
	}
	return false
}

// TypeFlags are the five boolean columns kept redundant with status for
// query convenience. Exactly one is true.
type TypeFlags struct {
	NormalPole     bool `json:"normal_pole"`
	LeaningPole    bool `json:"leaning_pole"`
	CrackedPole    bool `json:"cracked_pole"`
	WarpedPole     bool `json:"warped_pole"`
	VegetationPole bool `json:"vegetation_pole"`
}

// Flags returns the boolean columns matching s.
func (s PoleStatus) Flags() TypeFlags {
	return TypeFlags{
		NormalPole:     s == StatusNormal,
		LeaningPole:    s == StatusLeaning,
		CrackedPole:    s == StatusCracked,
		WarpedPole:     s == StatusWarped,
		VegetationPole: s == StatusVegetation,
	}
}

// Pole is one observed pole capture. There is no surrogate primary key;
// rows are identified by taker_id together with created_at or image_uri.
type Pole struct {
	TakerID   string    `gorm:"column:taker_id;index" json:"taker_id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	// Latitude/Longitude of 0 can mean "fix unavailable", not a real
	// coordinate; the capture path writes 0 when location resolution fails.
	Latitude        float64    `gorm:"column:latitude" json:"latitude"`
	Longitude       float64    `gorm:"column:longitude" json:"longitude"`
	ImageURI        string     `gorm:"column:image_uri;index" json:"image_uri"`
	Status          PoleStatus `gorm:"column:status;type:text" json:"status"`
	LowerConfidence float64    `gorm:"column:lower_confidence" json:"lower_confidence"`
	UpperConfidence float64    `gorm:"column:upper_confidence" json:"upper_confidence"`
	NormalPole      bool       `gorm:"column:normal_pole" json:"normal_pole"`
	LeaningPole     bool       `gorm:"column:leaning_pole" json:"leaning_pole"`
	CrackedPole     bool       `gorm:"column:cracked_pole" json:"cracked_pole"`
	WarpedPole      bool       `gorm:"column:warped_pole" json:"warped_pole"`
	VegetationPole  bool       `gorm:"column:vegetation_pole" json:"vegetation_pole"`
}

func (Pole) TableName() string { return "PolesCaptured" }

// SetFlags overwrites the boolean columns to match Status.
func (p *Pole) SetFlags() {
	f := p.Status.Flags()
	p.NormalPole = f.NormalPole
	p.LeaningPole = f.LeaningPole
	p.CrackedPole = f.CrackedPole
	p.WarpedPole = f.WarpedPole
	p.VegetationPole = f.VegetationPole
}
