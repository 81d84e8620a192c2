package utils

import "time"

// ParseDate interpreta datas dos provedores como meia-noite UTC
func ParseDate(layout, dateStr string) (time.Time, error) {
	date, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, err
	}

	return TruncateDay(date), nil
}

// TruncateDay descarta o horário mantendo o dia em UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateWindow retorna o intervalo de daysBack dias que termina no dia de now
func DateWindow(now time.Time, daysBack int) (start, end time.Time) {
	end = TruncateDay(now)
	start = end.AddDate(0, 0, -daysBack)
	return start, end
}
