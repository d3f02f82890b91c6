package repository

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type RecordRepository interface {
	Create(record *model.Record) error
	GetByID(id uint) (*model.Record, error)
	GetByTrackingNumber(tracking string) (*model.Record, error)
	GetByFileID(fileID uint) ([]model.Record, error)
	GetByFileIDs(fileIDs []uint) ([]model.Record, error)
	Update(record *model.Record) error
	// TransitionStatus moves the record only if it is still in from and
	// returns the number of rows changed.
	TransitionStatus(id uint, from, to model.RecordStatus) (int64, error)
	CountByStatus() (map[model.RecordStatus]int64, error)
	Delete(id uint) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db}
}

func (r *recordRepository) Create(record *model.Record) error {
	return r.db.Create(record).Error
}

func (r *recordRepository) GetByID(id uint) (*model.Record, error) {
	var record model.Record
	err := r.db.First(&record, id).Error
	return &record, err
}

func (r *recordRepository) GetByTrackingNumber(tracking string) (*model.Record, error) {
	var record model.Record
	err := r.db.Where("tracking_number = ?", tracking).First(&record).Error
	return &record, err
}

func (r *recordRepository) GetByFileID(fileID uint) ([]model.Record, error) {
	var list []model.Record
	err := r.db.Where("file_id = ?", fileID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *recordRepository) GetByFileIDs(fileIDs []uint) ([]model.Record, error) {
	var list []model.Record
	if len(fileIDs) == 0 {
		return list, nil
	}
	err := r.db.Where("file_id IN ?", fileIDs).Order("id asc").Find(&list).Error
	return list, err
}

func (r *recordRepository) Update(record *model.Record) error {
	return r.db.Omit("Forwards").Save(record).Error
}

func (r *recordRepository) TransitionStatus(id uint, from, to model.RecordStatus) (int64, error) {
	res := r.db.Model(&model.Record{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *recordRepository) CountByStatus() (map[model.RecordStatus]int64, error) {
	var rows []struct {
		Status model.RecordStatus
		Count  int64
	}
	err := r.db.Model(&model.Record{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.RecordStatus]int64{}
	for _, s := range recordStatusOrder {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

var recordStatusOrder = []model.RecordStatus{
	model.RecordPending, model.RecordForwarded, model.RecordAccepted, model.RecordRejected, model.RecordCompleted,
}

// Delete removes the record with its forwards and their reviews.
func (r *recordRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var record model.Record
		if err := tx.Select("id").First(&record, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("record_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("record_id = ?", id).Delete(&model.ForwardedRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Record{}, id).Error
	})
}
