// Package service owns the load/save logic for each entity type. A
// service mediates between the handlers, the PostgreSQL store and the
// local fallback cache: reads try the database first and degrade to the
// cache, writes that fail against the database land in the cache instead
// and are reported as degraded so the UI can show a "saved locally"
// notice. Failed calls never retry automatically.
package service

// Source reports where a read was served from.
type Source int

const (
	SourceRemote Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "remote"
}

// Degraded returns true when the read did not come from the database.
func (s Source) Degraded() bool { return s == SourceFallback }

// SaveLocation reports where a write landed.
type SaveLocation int

const (
	SavedRemote SaveLocation = iota
	SavedLocal
)

func (l SaveLocation) String() string {
	if l == SavedLocal {
		return "local"
	}
	return "remote"
}

// Degraded returns true when the write only reached the fallback cache.
func (l SaveLocation) Degraded() bool { return l == SavedLocal }
