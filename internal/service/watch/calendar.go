package watch

import "time"

// formatCalendar 기준 시각(now)과의 날짜 차이에 따라 상대적인 표현으로 시각을 나타냅니다.
//
//	어제      -> "Yesterday 18:30"
//	오늘      -> "Today 18:30"
//	내일      -> "Tomorrow 18:30"
//	지난 6일  -> "Last Week Monday 18:30"
//	다음 6일  -> "Friday 18:30"
//	그 외     -> "03/14/2024"
func formatCalendar(t, now time.Time, loc *time.Location) string {
	t = t.In(loc)
	now = now.In(loc)

	// 서머타임 전환일에도 하루가 24시간이 되도록 벽시계 시각을 UTC로 옮겨 비교한다.
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := wall.Sub(startOfToday).Hours() / 24

	switch {
	case days < -6:
		return t.Format("01/02/2006")
	case days < -1:
		return "Last Week " + t.Format("Monday 15:04")
	case days < 0:
		return "Yesterday " + t.Format("15:04")
	case days < 1:
		return "Today " + t.Format("15:04")
	case days < 2:
		return "Tomorrow " + t.Format("15:04")
	case days < 7:
		return t.Format("Monday 15:04")
	default:
		return t.Format("01/02/2006")
	}
}
