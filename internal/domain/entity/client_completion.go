package entity

import "time"

// ClientCompletion marca de finalización (advisory) de un cliente en una fecha.
// No bloquea escaneos posteriores.
type ClientCompletion struct {
	Date       string
	Client     string
	FinishedAt *time.Time
}
