// Package store is the gorm-backed data access layer for categories and
// campaigns.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kickstarter-campaigns/internal/sections"
	"kickstarter-campaigns/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrMissingCategory is returned by Insert when the database rejects a
	// campaign whose category_id has no matching category.
	ErrMissingCategory = errors.New("referenced category does not exist")
)

const (
	mysqlForeignKeyViolation    = 1452
	postgresForeignKeyViolation = "23503"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns a pointer to a slice holding every row of the section, ordered
// by id.
func (s *Store) List(ctx context.Context, section sections.Section) (any, error) {
	rows := section.NewRows()
	if err := s.db.WithContext(ctx).Order("id").Find(rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", section, err)
	}
	return rows, nil
}

func (s *Store) Find(ctx context.Context, section sections.Section, id int64) (any, error) {
	row := section.NewRow()
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", section, id, err)
	}
	return row, nil
}

// Insert creates the row and fills in its id and timestamps.
func (s *Store) Insert(ctx context.Context, record models.Record) (int64, error) {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrMissingCategory
		}
		return 0, fmt.Errorf("insert %T: %w", record, err)
	}
	return record.PrimaryKey(), nil
}

// Delete removes the row with the given id and reports how many rows went away.
func (s *Store) Delete(ctx context.Context, section sections.Section, id int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(section.NewRow())
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s %d: %w", section, id, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count categories %d: %w", id, err)
	}
	return count > 0, nil
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlForeignKeyViolation {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresForeignKeyViolation {
		return true
	}
	// sqlite builds without error translation only expose the message
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
