package draft

// Discard is the demo-mode store: saves and clears succeed without writing
// anything, and loads always report absent. Wiring a session with Discard
// keeps the controller free of demo-mode branches.
type Discard struct{}

func (Discard) Save(key string, d Draft) error { return nil }

func (Discard) Load(key string) (Draft, bool) { return Draft{}, false }

func (Discard) Clear(key string) error { return nil }
