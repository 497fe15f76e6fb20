package tasksequencestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	NextNumber(year int) (seq int, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// NextNumber выдает следующий номер в рамках года.
// Строка счетчика блокируется FOR UPDATE, вызывать только внутри транзакции.
func (i impl) NextNumber(year int) (int, error) {
	rec := dbmodels.TaskSequence{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = dbmodels.TaskSequence{
				Year:       year,
				LastNumber: 1,
			}
			if err = i.db.Create(&rec).Error; err != nil {
				return 0, err
			}
			return rec.LastNumber, nil
		}
		return 0, err
	}
	rec.LastNumber++
	err = i.db.
		Model(&dbmodels.TaskSequence{}).
		Where("year = ?", year).
		Update("last_number", rec.LastNumber).
		Error
	if err != nil {
		return 0, err
	}
	return rec.LastNumber, nil
}
