package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nostrcal"
	"nostrcal/internal/infra/database/models"
	"nostrcal/internal/usecase"
)

// RecordRepository persists resolved records. Tags are stored as a JSON
// blob; nothing queries into them, the mirror exists for offline replay.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Put(ctx context.Context, rec nostrcal.Record) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return err
	}

	row := models.Record{
		ID:        rec.ID,
		Author:    rec.Author,
		Kind:      rec.Kind,
		CreatedAt: rec.CreatedAt,
		Content:   rec.Content,
		Tags:      string(tags),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&row).Error
}

func (r *RecordRepository) GetAll(ctx context.Context) ([]nostrcal.Record, error) {
	var rows []models.Record
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]nostrcal.Record, 0, len(rows))
	for _, row := range rows {
		var tags []nostrcal.Tag
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			continue
		}
		records = append(records, nostrcal.Record{
			ID:        row.ID,
			Author:    row.Author,
			Kind:      row.Kind,
			CreatedAt: row.CreatedAt,
			Content:   row.Content,
			Tags:      tags,
		})
	}
	return records, nil
}

var _ usecase.RecordCache = (*RecordRepository)(nil)
