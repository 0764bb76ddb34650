package service

import "time"

// Calendar - "오늘"의 경계를 정한다. 하루는 loc 기준 자정부터 시작한다.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc, now: time.Now}
}

func (c Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// StartOfToday - 오늘 0시 (loc 기준)
func (c Calendar) StartOfToday() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}
