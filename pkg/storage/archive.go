package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/synaptica-ai/scribe/pkg/report"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ArchivedReport struct {
	ID        string         `gorm:"primaryKey;column:id" json:"id"`
	Handle    string         `gorm:"column:handle;index" json:"handle"`
	SessionID string         `gorm:"column:session_id;index" json:"session_id"`
	PatientID string         `gorm:"column:patient_id" json:"patient_id"`
	Report    datatypes.JSON `gorm:"column:report" json:"report"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ArchivedReport) TableName() string {
	return "final_reports"
}

// Archive keeps every exported FinalReport. Exports mint fresh ids, so each
// call is a new row.
type Archive struct {
	db *gorm.DB
}

func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) AutoMigrate() error {
	return a.db.AutoMigrate(&ArchivedReport{})
}

func (a *Archive) Save(ctx context.Context, handle string, final report.FinalReport) error {
	payload, err := json.Marshal(final)
	if err != nil {
		return err
	}
	row := ArchivedReport{
		ID:        uuid.New().String(),
		Handle:    handle,
		SessionID: final.SessionID,
		PatientID: final.PatientID,
		Report:    datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	return a.db.WithContext(ctx).Create(&row).Error
}

// ListByHandle returns the newest exports first.
func (a *Archive) ListByHandle(ctx context.Context, handle string, limit int) ([]ArchivedReport, error) {
	if limit <= 0 {
		limit = 25
	}
	var rows []ArchivedReport
	result := a.db.WithContext(ctx).
		Where("handle = ?", handle).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows)
	return rows, result.Error
}
