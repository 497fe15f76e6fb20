package recurrence

import (
	"time"

	"github.com/pkg/errors"

	"shop-tasks-backend/models"
)

// IsDue проверяет, выпадает ли регулярная задача на указанную дату.
// Для ежемесячных правил с днем больше числа дней в месяце
// срабатывает последний день месяца (31-е в апреле -> 30 апреля)
func IsDue(recType models.RecurrenceType, recDay *int, date time.Time) (bool, error) {
	switch recType {
	case models.RecurrenceTypeDaily:
		return true, nil
	case models.RecurrenceTypeWeekly:
		if recDay == nil {
			return false, errors.New("для еженедельного правила не задан день недели")
		}
		return weekdayNumber(date.Weekday()) == *recDay, nil
	case models.RecurrenceTypeMonthly:
		if recDay == nil {
			return false, errors.New("для ежемесячного правила не задан день месяца")
		}
		last := lastDayOfMonth(date)
		day := *recDay
		if day > last {
			day = last
		}
		return date.Day() == day, nil
	default:
		return false, errors.Errorf("неизвестный тип повторения: %s", recType)
	}
}

// NextOccurrence возвращает ближайшую дату срабатывания строго после from
func NextOccurrence(recType models.RecurrenceType, recDay *int, from time.Time) (time.Time, error) {
	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()).AddDate(0, 0, 1)
	// ежемесячное правило гарантированно срабатывает в пределах 31 дня
	for i := 0; i < 31; i++ {
		due, err := IsDue(recType, recDay, date)
		if err != nil {
			return time.Time{}, err
		}
		if due {
			return date, nil
		}
		date = date.AddDate(0, 0, 1)
	}
	return time.Time{}, errors.New("не удалось вычислить дату следующего срабатывания")
}

// ValidateDay проверяет согласованность типа повторения и дня
func ValidateDay(recType models.RecurrenceType, recDay *int) error {
	switch recType {
	case models.RecurrenceTypeDaily:
		if recDay != nil {
			return errors.New("для ежедневного правила день не указывается")
		}
	case models.RecurrenceTypeWeekly:
		if recDay == nil {
			return errors.New("не указан день недели (1 - понедельник, 7 - воскресенье)")
		}
		if *recDay < 1 || *recDay > 7 {
			return errors.New("день недели должен быть в диапазоне от 1 до 7")
		}
	case models.RecurrenceTypeMonthly:
		if recDay == nil {
			return errors.New("не указан день месяца")
		}
		if *recDay < 1 || *recDay > 31 {
			return errors.New("день месяца должен быть в диапазоне от 1 до 31")
		}
	default:
		return errors.Errorf("неизвестный тип повторения: %s", recType)
	}
	return nil
}

// weekdayNumber приводит time.Weekday к нумерации ISO: 1 - понедельник ... 7 - воскресенье
func weekdayNumber(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

func lastDayOfMonth(date time.Time) int {
	firstOfNext := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
