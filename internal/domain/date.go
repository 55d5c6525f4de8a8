package domain

import "time"

const day = 24 * time.Hour

// Date 截断到 UTC 的自然日零点。通知只精确到日期
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateFromMillis 存储层用毫秒时间戳保存日期
func DateFromMillis(ms int64) time.Time {
	return Date(time.UnixMilli(ms))
}

// DateMillis 日期对应的毫秒时间戳
func DateMillis(t time.Time) int64 {
	return Date(t).UnixMilli()
}

// AddDays 在日期上加若干天
func AddDays(t time.Time, days int) time.Time {
	return Date(t).Add(time.Duration(days) * day)
}
