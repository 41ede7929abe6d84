package api

import "sync/atomic"

// AdminSecret holds the admin password. The config watcher swaps it at
// runtime; requests read it on every call.
type AdminSecret struct {
	value atomic.Pointer[string]
}

func NewAdminSecret(password string) *AdminSecret {
	s := &AdminSecret{}
	s.Set(password)
	return s
}

func (s *AdminSecret) Set(password string) {
	s.value.Store(&password)
}

func (s *AdminSecret) Get() string {
	if p := s.value.Load(); p != nil {
		return *p
	}
	return ""
}
