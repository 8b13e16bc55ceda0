package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionGrant is the persisted notification permission of one installation.
type PermissionGrant struct {
	InstallationID string `gorm:"primaryKey"`
	Status         string
	UpdatedAt      time.Time
}

type PermissionStore struct {
	db        *gorm.DB
	tableName string
}

func NewPermissionStore(db *gorm.DB, tableName string) *PermissionStore {
	if tableName == "" {
		tableName = "permission_grants"
	}
	return &PermissionStore{
		db:        db,
		tableName: tableName,
	}
}

// Migrate creates or updates the grant table.
func (s *PermissionStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).Table(s.tableName).AutoMigrate(&PermissionGrant{})
}

// Load returns the stored status, or false when the installation never answered.
func (s *PermissionStore) Load(ctx context.Context, installationID string) (string, bool, error) {
	var grant PermissionGrant
	err := s.db.WithContext(ctx).Table(s.tableName).
		Where("installation_id = ?", installationID).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return grant.Status, true, nil
}

func (s *PermissionStore) Save(ctx context.Context, installationID, status string) error {
	grant := PermissionGrant{
		InstallationID: installationID,
		Status:         status,
		UpdatedAt:      time.Now(),
	}
	return s.db.WithContext(ctx).Table(s.tableName).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "installation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&grant).Error
}
