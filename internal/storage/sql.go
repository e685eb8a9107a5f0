package storage

import (
	"context"
	"errors"

	"github.com/bookstore/services/storefront/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps string values in the kv_entries table
type SQLStore struct {
	db  *db.DB
	log *zap.Logger
}

// NewSQLStore creates a key/value store on the given database
func NewSQLStore(database *db.DB, log *zap.Logger) *SQLStore {
	return &SQLStore{db: database, log: log}
}

// Get returns the value stored under key
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry db.KVEntry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		s.log.Error("Failed to get key", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set overwrites the value under key
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	entry := db.KVEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		s.log.Error("Failed to set key", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("name = ?", key).Delete(&db.KVEntry{}).Error
}

// Ping reports whether the database is reachable
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.Ping()
}
