package state

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRecord is the durable row holding one namespace's JSON document.
type CollectionRecord struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName keeps the table aligned with the storage layout: one top-level
// key per collection.
func (CollectionRecord) TableName() string {
	return "collection_records"
}

// GormRepository persists collection documents through GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository constructs a repository bound to the provided DB.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Get returns the stored payload, or nil when the namespace has no row yet.
func (r *GormRepository) Get(ctx context.Context, namespace string) ([]byte, error) {
	var record CollectionRecord
	err := r.db.WithContext(ctx).
		Where("namespace = ?", namespace).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.Payload, nil
}

// Put replaces the namespace's payload in a single upsert.
func (r *GormRepository) Put(ctx context.Context, namespace string, payload []byte) error {
	record := CollectionRecord{Namespace: namespace, Payload: payload}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}
