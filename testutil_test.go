package sixtyasm

import "fmt"

// mapSource is an in-memory SourceProvider for tests, avoiding any real
// file-system dependency.
type mapSource map[string][]byte

func (m mapSource) Read(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return data, nil
}
