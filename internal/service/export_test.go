package service

import "time"

// SetNow подменяет источник времени в тестах.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}
