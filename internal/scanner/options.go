package scanner

import "time"

// Option configures a Scanner.
type Option func(*Scanner)

// WithStrictMode makes any warning, including Info, fail the scan.
func WithStrictMode(strict bool) Option {
	return func(s *Scanner) {
		s.strictMode = strict
	}
}

// WithClock overrides the clock used for ScannedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		if now != nil {
			s.now = now
		}
	}
}
