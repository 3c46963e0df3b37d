package repository

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithMaxJobs bounds how many jobs the store retains before evicting the
// oldest ones.
func WithMaxJobs(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.maxJobs = n
		}
	}
}
