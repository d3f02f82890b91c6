package repository

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type ForwardRepository interface {
	Create(fw *model.ForwardedRecord) error
	GetByID(id uint) (*model.ForwardedRecord, error)
	GetByRecipient(recipientID uint, status model.ForwardStatus) ([]model.ForwardedRecord, error)
	GetBySender(senderID uint) ([]model.ForwardedRecord, error)
	GetByRecordID(recordID uint) ([]model.ForwardedRecord, error)
	GetByRecordIDs(recordIDs []uint) ([]model.ForwardedRecord, error)
	// TransitionStatus moves the forward only if it is still in from.
	TransitionStatus(id uint, from, to model.ForwardStatus) (int64, error)
	CountPendingForRecipient(recipientID uint) (int64, error)
	CreateReview(review *model.Review) error
	GetReviewsByRecordID(recordID uint) ([]model.Review, error)
}

type forwardRepository struct {
	db *gorm.DB
}

func NewForwardRepository(db *gorm.DB) ForwardRepository {
	return &forwardRepository{db}
}

func (r *forwardRepository) Create(fw *model.ForwardedRecord) error {
	return r.db.Create(fw).Error
}

func (r *forwardRepository) GetByID(id uint) (*model.ForwardedRecord, error) {
	var fw model.ForwardedRecord
	err := r.db.Preload("Record").Preload("Sender").Preload("Recipient").First(&fw, id).Error
	return &fw, err
}

func (r *forwardRepository) GetByRecipient(recipientID uint, status model.ForwardStatus) ([]model.ForwardedRecord, error) {
	var list []model.ForwardedRecord
	query := r.db.Where("recipient_id = ?", recipientID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Preload("Record").Preload("Sender").
		Order("forwarded_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (r *forwardRepository) GetBySender(senderID uint) ([]model.ForwardedRecord, error) {
	var list []model.ForwardedRecord
	err := r.db.Where("forwarded_by = ?", senderID).
		Preload("Record").Preload("Recipient").
		Order("forwarded_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (r *forwardRepository) GetByRecordID(recordID uint) ([]model.ForwardedRecord, error) {
	var list []model.ForwardedRecord
	err := r.db.Where("record_id = ?", recordID).
		Preload("Sender").Preload("Recipient").Preload("Reviews").
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *forwardRepository) GetByRecordIDs(recordIDs []uint) ([]model.ForwardedRecord, error) {
	var list []model.ForwardedRecord
	if len(recordIDs) == 0 {
		return list, nil
	}
	err := r.db.Where("record_id IN ?", recordIDs).Order("id asc").Find(&list).Error
	return list, err
}

func (r *forwardRepository) TransitionStatus(id uint, from, to model.ForwardStatus) (int64, error) {
	res := r.db.Model(&model.ForwardedRecord{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *forwardRepository) CountPendingForRecipient(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ForwardedRecord{}).
		Where("recipient_id = ? AND status = ?", recipientID, model.ForwardPending).
		Count(&count).Error
	return count, err
}

func (r *forwardRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *forwardRepository) GetReviewsByRecordID(recordID uint) ([]model.Review, error) {
	var list []model.Review
	err := r.db.Where("record_id = ?", recordID).Order("id asc").Find(&list).Error
	return list, err
}
