package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

var _ visit.Repository = (*ClientGormRepository)(nil)

func (r *ClientGormRepository) partition(ctx context.Context, p visit.Partition) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("user_id = ? AND day = ?", p.UserID, string(p.Day))
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *ClientGormRepository) ListPartition(
	ctx context.Context,
	p visit.Partition,
) ([]visit.Client, error) {

	var rows []models.Client
	if err := r.partition(ctx, p).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]visit.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, visit.Client{
			ID:      row.Key,
			Name:    row.Name,
			Address: row.Address,
			Visited: row.Visited,
		})
	}
	return out, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *ClientGormRepository) Create(
	ctx context.Context,
	p visit.Partition,
	id string,
	data visit.ClientData,
) error {

	row := models.Client{
		UserID:  p.UserID,
		Day:     string(p.Day),
		Key:     id,
		Name:    data.Name,
		Address: data.Address,
		Visited: data.Visited,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Replace overwrites every field of the record, creating it when absent.
// A single upsert keyed on the partition index, so concurrent writers
// cannot both miss the row and collide on insert. Seq survives the
// update, keeping the record in place.
func (r *ClientGormRepository) Replace(
	ctx context.Context,
	p visit.Partition,
	id string,
	data visit.ClientData,
) error {

	row := models.Client{
		UserID:  p.UserID,
		Day:     string(p.Day),
		Key:     id,
		Name:    data.Name,
		Address: data.Address,
		Visited: data.Visited,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "client_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "address", "visited", "updated_at",
			}),
		}).
		Create(&row).Error
}

// SetVisited updates the single visited column in one statement.
func (r *ClientGormRepository) SetVisited(
	ctx context.Context,
	p visit.Partition,
	id string,
	visited bool,
) error {

	res := r.partition(ctx, p).
		Where("client_key = ?", id).
		Update("visited", visited)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return visit.ErrClientNotFound
	}
	return nil
}

// Delete succeeds whether or not the record exists.
func (r *ClientGormRepository) Delete(
	ctx context.Context,
	p visit.Partition,
	id string,
) error {

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND client_key = ?", p.UserID, string(p.Day), id).
		Delete(&models.Client{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
