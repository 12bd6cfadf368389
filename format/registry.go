package format

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps format names to their implementations. Plugins register
// themselves in init(), so DefaultRegistry is fully populated once the
// plugin packages are imported.
type Registry struct {
	formats map[string]Format
}

// DefaultRegistry is the registry the package-level helpers operate on.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

func (r *Registry) Register(f Format) {
	r.formats[f.Name()] = f
}

// Get looks up a format by name, case-insensitively.
func (r *Registry) Get(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// GetParser looks up a format and requires that it can read manuscripts.
func (r *Registry) GetParser(name string) (Parser, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	p, ok := f.(Parser)
	if !ok {
		return nil, fmt.Errorf("format %s does not support parsing", name)
	}
	return p, nil
}

// GetSerializer looks up a format and requires that it can write manuscripts.
func (r *Registry) GetSerializer(name string) (Serializer, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	s, ok := f.(Serializer)
	if !ok {
		return nil, fmt.Errorf("format %s does not support serialization", name)
	}
	return s, nil
}

// List returns the registered format names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectFormat picks a format for a file, by extension first and by
// content sniffing when no extension matches.
func (r *Registry) DetectFormat(filename string, peek []byte) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, f := range r.formats {
		for _, fext := range f.Extensions() {
			if ext == fext {
				return f, nil
			}
		}
	}

	if len(peek) > 0 {
		for _, f := range r.formats {
			if f.CanParse(peek) {
				return f, nil
			}
		}
	}

	return nil, fmt.Errorf("could not detect format for %s", filename)
}

// DetectFromContent picks a format by content sniffing alone.
func (r *Registry) DetectFromContent(peek []byte) (Format, error) {
	peek = bytes.TrimSpace(peek)

	for _, f := range r.formats {
		if f.CanParse(peek) {
			return f, nil
		}
	}

	return nil, fmt.Errorf("could not detect format from content")
}

// Register adds a format to DefaultRegistry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

func GetParser(name string) (Parser, error) {
	return DefaultRegistry.GetParser(name)
}

func GetSerializer(name string) (Serializer, error) {
	return DefaultRegistry.GetSerializer(name)
}

func DetectFormat(filename string, peek []byte) (Format, error) {
	return DefaultRegistry.DetectFormat(filename, peek)
}
