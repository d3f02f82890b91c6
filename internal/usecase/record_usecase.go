package usecase

import (
	"fmt"
	"strings"
	"time"

	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/repository"
	"office-records-backend/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordUsecase owns files, records and the forward/review workflow. Every
// state change runs in a transaction with a conditional status update, so of
// two concurrent forwards or reviews only one succeeds.
type RecordUsecase struct {
	db       *gorm.DB
	notifier *notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewRecordUsecase(db *gorm.DB, notifier *notify.Notifier, log *zap.Logger) *RecordUsecase {
	return &RecordUsecase{db: db, notifier: notifier, log: log, now: time.Now}
}

type FileInput struct {
	FileNumber  string
	Name        string
	Type        model.FileType
	Description string
}

func (u *RecordUsecase) CreateFile(ownerID uint, in FileInput) (*model.File, error) {
	file := &model.File{
		FileNumber:  strings.TrimSpace(in.FileNumber),
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		OwnerID:     ownerID,
		Description: in.Description,
	}
	err := u.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.File{}).Where("file_number = ?", file.FileNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: file number %s already exists", ErrConflict, file.FileNumber)
		}
		return repository.NewFileRepository(tx).Create(file)
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (u *RecordUsecase) ListFiles(filter repository.FileFilter) ([]model.File, error) {
	return repository.NewFileRepository(u.db).GetAll(filter)
}

func (u *RecordUsecase) GetFile(id uint) (*model.File, error) {
	file, err := repository.NewFileRepository(u.db).GetByID(id)
	if err != nil {
		return nil, notFound(err, "file")
	}
	return file, nil
}

func (u *RecordUsecase) UpdateFile(id uint, in FileInput) (*model.File, error) {
	var updated *model.File
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewFileRepository(tx)
		file, err := repo.GetByID(id)
		if err != nil {
			return notFound(err, "file")
		}
		if in.FileNumber != "" && in.FileNumber != file.FileNumber {
			if _, err := repo.GetByNumber(in.FileNumber); err == nil {
				return fmt.Errorf("%w: file number %s already exists", ErrConflict, in.FileNumber)
			}
			file.FileNumber = strings.TrimSpace(in.FileNumber)
		}
		if in.Name != "" {
			file.Name = strings.TrimSpace(in.Name)
		}
		if in.Type != "" {
			file.Type = in.Type
		}
		file.Description = in.Description
		if err := repo.Update(file); err != nil {
			return err
		}
		updated = file
		return nil
	})
	return updated, err
}

// DeleteFile removes the file and everything filed under it.
func (u *RecordUsecase) DeleteFile(id uint) error {
	if err := repository.NewFileRepository(u.db).Delete(id); err != nil {
		return notFound(err, "file")
	}
	u.log.Info("file deleted", zap.Uint("file_id", id))
	return nil
}

// FileTree returns the nested file -> record -> forward view.
func (u *RecordUsecase) FileTree(filter repository.FileFilter) ([]workflow.FileNode, error) {
	files, err := repository.NewFileRepository(u.db).GetAll(filter)
	if err != nil {
		return nil, err
	}
	fileIDs := make([]uint, 0, len(files))
	for _, f := range files {
		fileIDs = append(fileIDs, f.ID)
	}

	records, err := repository.NewRecordRepository(u.db).GetByFileIDs(fileIDs)
	if err != nil {
		return nil, err
	}
	recordIDs := make([]uint, 0, len(records))
	for _, r := range records {
		recordIDs = append(recordIDs, r.ID)
	}

	forwards, err := repository.NewForwardRepository(u.db).GetByRecordIDs(recordIDs)
	if err != nil {
		return nil, err
	}
	return workflow.BuildTree(files, records, forwards), nil
}

type RecordInput struct {
	Type       string
	Date       string
	From       string
	To         string
	Subject    string
	Content    string
	Attachment string
	Reference  string
}

func (u *RecordUsecase) CreateRecord(fileID, creatorID uint, in RecordInput) (*model.Record, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, invalid("subject is required")
	}
	if in.Date == "" {
		in.Date = u.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}

	record := &model.Record{
		FileID:         fileID,
		UniqueNumber:   uuid.NewString(),
		Type:           in.Type,
		Date:           in.Date,
		From:           in.From,
		To:             in.To,
		Subject:        strings.TrimSpace(in.Subject),
		Content:        in.Content,
		Attachment:     in.Attachment,
		Status:         model.RecordPending,
		Reference:      in.Reference,
		TrackingNumber: u.trackingNumber(),
		CreatedBy:      creatorID,
	}

	err := u.db.Transaction(func(tx *gorm.DB) error {
		exists, err := repository.NewFileRepository(tx).Exists(fileID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("file %w", ErrNotFound)
		}
		return repository.NewRecordRepository(tx).Create(record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// trackingNumber looks like TRK-20240101-1A2B3C4D.
func (u *RecordUsecase) trackingNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TRK-%s-%s", u.now().Format("20060102"), suffix)
}

func (u *RecordUsecase) GetRecord(id uint) (*model.Record, error) {
	record, err := repository.NewRecordRepository(u.db).GetByID(id)
	if err != nil {
		return nil, notFound(err, "record")
	}
	return record, nil
}

func (u *RecordUsecase) TrackRecord(tracking string) (*model.Record, error) {
	record, err := repository.NewRecordRepository(u.db).GetByTrackingNumber(strings.TrimSpace(tracking))
	if err != nil {
		return nil, notFound(err, "record")
	}
	return record, nil
}

// UpdateRecord edits the record body. Only pending records can be edited.
func (u *RecordUsecase) UpdateRecord(id uint, in RecordInput) (*model.Record, error) {
	var updated *model.Record
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRecordRepository(tx)
		record, err := repo.GetByID(id)
		if err != nil {
			return notFound(err, "record")
		}
		if record.Status != model.RecordPending {
			return fmt.Errorf("%w: only pending records can be edited", ErrInvalidTransition)
		}
		if in.Date != "" {
			if _, err := time.Parse(dateLayout, in.Date); err != nil {
				return invalid("date must be YYYY-MM-DD")
			}
			record.Date = in.Date
		}
		if in.Subject != "" {
			record.Subject = strings.TrimSpace(in.Subject)
		}
		if in.Type != "" {
			record.Type = in.Type
		}
		if in.From != "" {
			record.From = in.From
		}
		if in.To != "" {
			record.To = in.To
		}
		if in.Content != "" {
			record.Content = in.Content
		}
		if in.Attachment != "" {
			record.Attachment = in.Attachment
		}
		if in.Reference != "" {
			record.Reference = in.Reference
		}
		if err := repo.Update(record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	return updated, err
}

func (u *RecordUsecase) DeleteRecord(id uint) error {
	if err := repository.NewRecordRepository(u.db).Delete(id); err != nil {
		return notFound(err, "record")
	}
	return nil
}

type RecordHistory struct {
	Record   *model.Record           `json:"record"`
	Forwards []model.ForwardedRecord `json:"forwards"`
	Next     []workflow.Action       `json:"next_actions"`
}

func (u *RecordUsecase) History(recordID uint) (*RecordHistory, error) {
	record, err := u.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	forwards, err := repository.NewForwardRepository(u.db).GetByRecordID(recordID)
	if err != nil {
		return nil, err
	}
	return &RecordHistory{Record: record, Forwards: forwards, Next: workflow.Allowed(record.Status)}, nil
}

// Forward routes a pending record to recipientID.
func (u *RecordUsecase) Forward(recordID, senderID, recipientID uint, notes string) (*model.ForwardedRecord, error) {
	if recipientID == senderID {
		return nil, invalid("a record cannot be forwarded to its sender")
	}

	var (
		fw        *model.ForwardedRecord
		record    *model.Record
		sender    *model.Admin
		recipient *model.Admin
	)
	err := u.db.Transaction(func(tx *gorm.DB) error {
		records := repository.NewRecordRepository(tx)
		admins := repository.NewAdminRepository(tx)

		var err error
		record, err = records.GetByID(recordID)
		if err != nil {
			return notFound(err, "record")
		}
		recipient, err = admins.FindByID(recipientID)
		if err != nil {
			return notFound(err, "recipient")
		}
		if !recipient.IsActive {
			return invalid("recipient account is inactive")
		}
		sender, err = admins.FindByID(senderID)
		if err != nil {
			return notFound(err, "sender")
		}

		next, err := workflow.Next(record.Status, workflow.ActionForward)
		if err != nil {
			return err
		}
		if err := transitionRecord(records, record, next); err != nil {
			return err
		}

		fw = &model.ForwardedRecord{
			RecordID:      record.ID,
			FileID:        record.FileID,
			ForwardedBy:   senderID,
			RecipientID:   recipientID,
			RecipientType: recipient.Role,
			Status:        model.ForwardPending,
			Notes:         notes,
			ForwardedAt:   u.now(),
		}
		return repository.NewForwardRepository(tx).Create(fw)
	})
	if err != nil {
		return nil, err
	}

	recordsForwarded.Inc()
	u.log.Info("record forwarded",
		zap.Uint("record_id", recordID), zap.Uint("from", senderID), zap.Uint("to", recipientID))
	u.notifier.Notify(notify.RecordForwarded(recipient.Email, recipient.Name, sender.Name, record.Subject, record.TrackingNumber, notes))

	fw.Record = record
	return fw, nil
}

// Complete closes a pending record without routing it anywhere.
func (u *RecordUsecase) Complete(recordID uint) (*model.Record, error) {
	var record *model.Record
	err := u.db.Transaction(func(tx *gorm.DB) error {
		records := repository.NewRecordRepository(tx)
		var err error
		record, err = records.GetByID(recordID)
		if err != nil {
			return notFound(err, "record")
		}
		next, err := workflow.Next(record.Status, workflow.ActionComplete)
		if err != nil {
			return err
		}
		return transitionRecord(records, record, next)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Inbox lists records forwarded to recipientID, optionally by status.
func (u *RecordUsecase) Inbox(recipientID uint, status model.ForwardStatus) ([]model.ForwardedRecord, error) {
	return repository.NewForwardRepository(u.db).GetByRecipient(recipientID, status)
}

func (u *RecordUsecase) Outbox(senderID uint) ([]model.ForwardedRecord, error) {
	return repository.NewForwardRepository(u.db).GetBySender(senderID)
}

type ReviewInput struct {
	Decision   model.ReviewDecision
	Note       string
	Department string
}

// Review records the recipient's accept/reject decision. A forward can be
// reviewed once; a second attempt returns ErrInvalidTransition and changes
// nothing.
func (u *RecordUsecase) Review(forwardID, reviewerID uint, reviewerRole model.Role, in ReviewInput) (*model.ForwardedRecord, error) {
	var (
		fw       *model.ForwardedRecord
		review   *model.Review
		reviewer *model.Admin
	)
	err := u.db.Transaction(func(tx *gorm.DB) error {
		forwards := repository.NewForwardRepository(tx)
		records := repository.NewRecordRepository(tx)

		var err error
		fw, err = forwards.GetByID(forwardID)
		if err != nil {
			return notFound(err, "forwarded record")
		}
		if fw.RecipientID != reviewerID && reviewerRole != model.RoleSuperAdmin {
			return fmt.Errorf("%w: only the recipient can review this record", ErrForbidden)
		}
		if fw.Status != model.ForwardPending {
			return fmt.Errorf("%w: forward already %s", ErrInvalidTransition, strings.ToLower(string(fw.Status)))
		}

		reviewer, err = repository.NewAdminRepository(tx).FindByID(reviewerID)
		if err != nil {
			return notFound(err, "reviewer")
		}

		record, err := records.GetByID(fw.RecordID)
		if err != nil {
			return notFound(err, "record")
		}
		next, err := workflow.Next(record.Status, workflow.ActionForDecision(in.Decision))
		if err != nil {
			return err
		}

		target := workflow.ForwardStatusFor(in.Decision)
		rows, err := forwards.TransitionStatus(fw.ID, model.ForwardPending, target)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: forward was reviewed concurrently", ErrInvalidTransition)
		}
		fw.Status = target

		if err := transitionRecord(records, record, next); err != nil {
			return err
		}
		fw.Record = record

		department := in.Department
		if department == "" && reviewer.DepartmentID != nil {
			if dept, err := repository.NewDepartmentRepository(tx).GetByID(*reviewer.DepartmentID); err == nil {
				department = dept.Name
			}
		}
		review = &model.Review{
			ForwardedRecordID: fw.ID,
			RecordID:          record.ID,
			ReviewerID:        reviewerID,
			Decision:          in.Decision,
			Note:              in.Note,
			Department:        department,
		}
		return forwards.CreateReview(review)
	})
	if err != nil {
		return nil, err
	}

	recordReviews.WithLabelValues(string(in.Decision)).Inc()
	u.log.Info("record reviewed",
		zap.Uint("forward_id", forwardID), zap.Uint("reviewer_id", reviewerID), zap.String("decision", string(in.Decision)))
	if fw.Sender != nil {
		u.notifier.Notify(notify.RecordReviewed(fw.Sender.Email, fw.Sender.Name, reviewer.Name, fw.Record.Subject, string(fw.Status), in.Note))
	}

	fw.Reviews = []model.Review{*review}
	return fw, nil
}

func transitionRecord(repo repository.RecordRepository, record *model.Record, next model.RecordStatus) error {
	rows, err := repo.TransitionStatus(record.ID, record.Status, next)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: record %d changed concurrently", ErrInvalidTransition, record.ID)
	}
	record.Status = next
	return nil
}
