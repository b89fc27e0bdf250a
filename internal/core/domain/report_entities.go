package domain

import "time"

// BatchDeliveryResult — итог доставки одного батча на границу инжеста.
// Живет только до конца запуска, нужен для сводки.
type BatchDeliveryResult struct {
	Attempted  int
	Accepted   int
	Rejected   int
	FirstError string
}

// RunSummary — сводка одного запуска пайплайна.
// Содержит счетчики по всем стадиям и первое диагностическое сообщение
// на каждую категорию сбоев — сводка не должна молча сообщать об успехе,
// если какая-то стадия деградировала.
type RunSummary struct {
	RunID   string
	Elapsed time.Duration

	Discovered     int
	ScrapedOK      int
	ScrapeFailed   int
	DeliveredOK    int
	DeliveryFailed int

	FirstDiscoveryError string
	FirstScrapeError    string
	FirstDeliveryError  string
}

// NoteDiscoveryError запоминает первую ошибку стадии discovery.
func (s *RunSummary) NoteDiscoveryError(err error) {
	if err != nil && s.FirstDiscoveryError == "" {
		s.FirstDiscoveryError = err.Error()
	}
}

// NoteScrapeError запоминает первую ошибку стадии обхода деталей.
func (s *RunSummary) NoteScrapeError(reason string) {
	if reason != "" && s.FirstScrapeError == "" {
		s.FirstScrapeError = reason
	}
}

// NoteDeliveryError запоминает первую ошибку стадии доставки.
func (s *RunSummary) NoteDeliveryError(reason string) {
	if reason != "" && s.FirstDeliveryError == "" {
		s.FirstDeliveryError = reason
	}
}

// Degraded сообщает, была ли в запуске хоть одна деградация.
func (s *RunSummary) Degraded() bool {
	return s.ScrapeFailed > 0 || s.DeliveryFailed > 0 ||
		s.FirstDiscoveryError != "" || s.FirstScrapeError != "" || s.FirstDeliveryError != ""
}
