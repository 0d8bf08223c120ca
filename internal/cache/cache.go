package cache

// Cache defines the port for keyed response storage.
// This interface follows the port-adapter pattern, allowing memory, filesystem
// and LevelDB tiers to be combined without changing the HTTP client chain.
type Cache[V any] interface {
	// Put stores value under key, overwriting any previous value, and returns it.
	Put(key string, value V) (V, error)

	// Get returns the value under key and true, or the zero value and false.
	// Unreadable or corrupt entries are reported as absent.
	Get(key string) (V, bool)

	// Clear removes every entry.
	Clear() error
}
