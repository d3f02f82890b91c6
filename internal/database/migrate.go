package database

import (
	"office-records-backend/internal/model"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
var Models = []interface{}{
	&model.Department{},
	&model.Admin{},
	&model.File{},
	&model.Record{},
	&model.ForwardedRecord{},
	&model.Review{},
	&model.LeaveApplication{},
	&model.Task{},
	&model.FinishedTask{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
