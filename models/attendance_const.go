package models

import "github.com/pkg/errors"

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
	AttendanceStatusLeave   AttendanceStatus = "leave"
)

var attendanceStatusHumanName = map[AttendanceStatus]string{
	AttendanceStatusPresent: "Присутствует",
	AttendanceStatusAbsent:  "Отсутствует",
	AttendanceStatusHalfDay: "Полдня",
	AttendanceStatusLeave:   "Отпуск",
}

func (s AttendanceStatus) ToHuman() string {
	if human, exist := attendanceStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s AttendanceStatus) Validate() error {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent,
		AttendanceStatusHalfDay, AttendanceStatusLeave:
		return nil
	}
	return errors.Errorf("неизвестный статус посещаемости (%v)", string(s))
}
