package projector

// KeyValueMap holds the values defined locally on one directory.
type KeyValueMap map[string]string

// Data is the persisted store: directory path to that directory's local map.
type Data struct {
	Projector map[string]KeyValueMap `json:"projector"`
}

// NewData returns an empty store.
func NewData() Data {
	return Data{Projector: map[string]KeyValueMap{}}
}

// Len returns the number of directories with a local map.
func (d Data) Len() int {
	return len(d.Projector)
}

// Projector resolves values against a store as if run from one directory.
type Projector struct {
	data Data
	pwd  string
}

// New creates a Projector over data, resolving from pwd.
// pwd is used as given; callers normalize it with NormalizePath.
func New(data Data, pwd string) *Projector {
	if data.Projector == nil {
		data.Projector = map[string]KeyValueMap{}
	}
	return &Projector{data: data, pwd: pwd}
}

// Pwd returns the directory lookups are resolved from.
func (p *Projector) Pwd() string {
	return p.pwd
}

// Data returns the underlying store for persistence.
func (p *Projector) Data() Data {
	return p.data
}

// GetValues returns every key visible from pwd.
//
// Ancestor maps are merged root first so that a directory closer to pwd
// overrides the same key set further up.
func (p *Projector) GetValues() map[string]string {
	chain := Ancestors(p.pwd)
	values := make(map[string]string)

	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range p.data.Projector[chain[i]] {
			values[k] = v
		}
	}

	return values
}

// GetValue resolves a single key without building the merged map.
func (p *Projector) GetValue(key string) (string, bool) {
	value, _, ok := p.Lookup(key)
	return value, ok
}

// Lookup resolves key and also reports the directory that supplied it.
func (p *Projector) Lookup(key string) (value, dir string, ok bool) {
	for _, d := range Ancestors(p.pwd) {
		if value, ok := p.data.Projector[d][key]; ok {
			return value, d, true
		}
	}
	return "", "", false
}

// SetValue sets key on pwd's own map, creating the map if needed.
func (p *Projector) SetValue(key, value string) {
	local := p.data.Projector[p.pwd]
	if local == nil {
		local = KeyValueMap{}
		p.data.Projector[p.pwd] = local
	}
	local[key] = value
}

// RemoveValue deletes key from pwd's own map. Missing directories and keys
// are ignored. An ancestor's value for key becomes visible again.
func (p *Projector) RemoveValue(key string) {
	if local, ok := p.data.Projector[p.pwd]; ok {
		delete(local, key)
	}
}
