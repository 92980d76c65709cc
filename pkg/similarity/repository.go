package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository stores the case corpus in Postgres.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&CaseRow{})
}

// Upsert writes records keyed by patient id. Position preserves input order
// so ranking ties stay stable after a round trip.
func (r *Repository) Upsert(ctx context.Context, records []CaseRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]CaseRow, 0, len(records))
	for i, record := range records {
		if record.PatientID == "" {
			return fmt.Errorf("case record %d: missing patient_id", i)
		}
		demographics, err := json.Marshal(record.Demographics)
		if err != nil {
			return err
		}
		encounters, err := json.Marshal(record.Encounters)
		if err != nil {
			return err
		}
		rows = append(rows, CaseRow{
			PatientID:    record.PatientID,
			Position:     i,
			Demographics: datatypes.JSON(demographics),
			Encounters:   datatypes.JSON(encounters),
			UpdatedAt:    now,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "patient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "demographics", "encounters", "updated_at"}),
		}).
		CreateInBatches(rows, 100).Error
}

// LoadCases implements Source. Rows that fail to decode are skipped.
func (r *Repository) LoadCases(ctx context.Context) ([]CaseRecord, error) {
	var rows []CaseRow
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]CaseRecord, 0, len(rows))
	for _, row := range rows {
		record := CaseRecord{PatientID: row.PatientID}
		if len(row.Demographics) > 0 {
			if err := json.Unmarshal(row.Demographics, &record.Demographics); err != nil {
				logger.Log.WithError(err).WithField("patient_id", row.PatientID).Warn("skipping case record with bad demographics")
				continue
			}
		}
		if len(row.Encounters) > 0 {
			if err := json.Unmarshal(row.Encounters, &record.Encounters); err != nil {
				logger.Log.WithError(err).WithField("patient_id", row.PatientID).Warn("skipping case record with bad encounters")
				continue
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CaseRow{}).Count(&n).Error
	return n, err
}
