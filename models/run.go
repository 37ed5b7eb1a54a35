package models

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

// Sources a run can originate from.
const (
	SourceCLI     = "cli"
	SourceDiscord = "discord"
)

// A Run records a single equalization pass.
type Run struct {
	gorm.Model
	Input         string
	Output        string
	Source        string
	Width         int
	Height        int
	ColorSpace    string
	Workers       int
	EntropyBefore float64
	EntropyAfter  float64
}

func (r Run) String() string {
	return fmt.Sprintf("Run{input=%v, %dx%d %v, entropy %.3f -> %.3f}",
		r.Input, r.Width, r.Height, r.ColorSpace, r.EntropyBefore, r.EntropyAfter)
}

// BeforeSave is executed just before a Run is saved into the DB
func (r *Run) BeforeSave() error {
	if r.Input == "" {
		return errors.New("missing run input")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", r.Width, r.Height)
	}
	return nil
}

// Create creates a new run in the DB
func (r *Run) Create(db *gorm.DB) error {
	return db.Create(r).Error
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns
// all of them.
func ListRuns(db *gorm.DB, limit int) (runs []Run, err error) {
	q := db.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err = q.Find(&runs).Error
	return
}

// Migrate creates or updates the tables backing the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Run{}).Error
}
