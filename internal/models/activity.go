package models

import "time"

// ActivitySummary структурированный результат внешнего декодера
// файлов активности (FIT/TCX). Сам бинарный разбор выполняется вне
// приложения, здесь описан только потребляемый результат.
type ActivitySummary struct {
	StartTime time.Time     `json:"startTime"`
	Sport     string        `json:"sport"`
	Laps      []ActivityLap `json:"laps"`
}

// ActivityLap один круг/отрезок активности
type ActivityLap struct {
	StartTime       time.Time `json:"startTime"`
	DurationSeconds int       `json:"durationSeconds"`
	DistanceMeters  float64   `json:"distanceMeters"`
	AvgHeartRate    int       `json:"avgHeartRate,omitempty"`
}
