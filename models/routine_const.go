package models

import "github.com/pkg/errors"

type RecurrenceType string

const (
	RecurrenceTypeDaily   RecurrenceType = "daily"
	RecurrenceTypeWeekly  RecurrenceType = "weekly"
	RecurrenceTypeMonthly RecurrenceType = "monthly"
)

var recurrenceTypeHumanName = map[RecurrenceType]string{
	RecurrenceTypeDaily:   "Ежедневно",
	RecurrenceTypeWeekly:  "Еженедельно",
	RecurrenceTypeMonthly: "Ежемесячно",
}

func (r RecurrenceType) ToHuman() string {
	if human, exist := recurrenceTypeHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r RecurrenceType) Validate() error {
	switch r {
	case RecurrenceTypeDaily, RecurrenceTypeWeekly, RecurrenceTypeMonthly:
		return nil
	}
	return errors.Errorf("неизвестный тип повторения (%v)", string(r))
}
