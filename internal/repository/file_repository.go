package repository

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

type FileFilter struct {
	Type    model.FileType
	OwnerID uint
}

type FileRepository interface {
	Create(file *model.File) error
	GetByID(id uint) (*model.File, error)
	GetByNumber(fileNumber string) (*model.File, error)
	Exists(id uint) (bool, error)
	GetAll(filter FileFilter) ([]model.File, error)
	Update(file *model.File) error
	Delete(id uint) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db}
}

func (r *fileRepository) Create(file *model.File) error {
	return r.db.Create(file).Error
}

func (r *fileRepository) GetByID(id uint) (*model.File, error) {
	var file model.File
	err := r.db.Preload("Owner").
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("records.id asc") }).
		First(&file, id).Error
	if err != nil {
		return nil, err
	}
	file.RecordCount = int64(len(file.Records))
	return &file, nil
}

func (r *fileRepository) GetByNumber(fileNumber string) (*model.File, error) {
	var file model.File
	err := r.db.Where("file_number = ?", fileNumber).First(&file).Error
	return &file, err
}

func (r *fileRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.File{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetAll returns files with record_count computed from the records table.
func (r *fileRepository) GetAll(filter FileFilter) ([]model.File, error) {
	var files []model.File
	query := r.db.Model(&model.File{}).
		Select("files.*, (SELECT COUNT(*) FROM records WHERE records.file_id = files.id AND records.deleted_at IS NULL) AS record_count")

	if filter.Type != "" {
		query = query.Where("files.type = ?", filter.Type)
	}
	if filter.OwnerID != 0 {
		query = query.Where("files.owner_id = ?", filter.OwnerID)
	}

	err := query.Order("files.created_at desc, files.id desc").Find(&files).Error
	return files, err
}

func (r *fileRepository) Update(file *model.File) error {
	return r.db.Omit("Records", "Owner").Save(file).Error
}

// Delete removes the file together with its records, their forwards and the
// reviews of those forwards.
func (r *fileRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var file model.File
		if err := tx.Select("id").First(&file, id).Error; err != nil {
			return err
		}

		var recordIDs []uint
		if err := tx.Model(&model.Record{}).Where("file_id = ?", id).Pluck("id", &recordIDs).Error; err != nil {
			return err
		}
		if len(recordIDs) > 0 {
			if err := tx.Unscoped().Where("record_id IN ?", recordIDs).Delete(&model.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("record_id IN ?", recordIDs).Delete(&model.ForwardedRecord{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("file_id = ?", id).Delete(&model.Record{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.File{}, id).Error
	})
}
