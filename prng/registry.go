package prng

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"lukechampine.com/uint128"
)

var (
	// ErrDuplicateXor is returned when a constant is registered twice for the
	// same key type.
	ErrDuplicateXor = errors.New("stream constant already registered for key type")
	// ErrZeroXor is returned when a stream with a zero constant is registered.
	ErrZeroXor = errors.New("stream constant is zero")
	// ErrDuplicateName is returned when a stream name is registered twice.
	ErrDuplicateName = errors.New("stream name already registered")
)

// Entry describes one registered stream.
type Entry struct {
	Name    string
	KeyType reflect.Type
	Xor     uint128.Uint128
}

type registryKey struct {
	keyType reflect.Type
	xor     uint128.Uint128
}

// Registry records stream declarations so that reused constants are caught
// at startup. Generation never consults it.
type Registry struct {
	mu     sync.Mutex
	byXor  map[registryKey]string
	byName map[string]Entry
	logger *log.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report registrations.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byXor:  make(map[registryKey]string),
		byName: make(map[string]Entry),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records stream under name and returns it unchanged.
func Register[K Key, T any](r *Registry, name string, stream Stream[K, T]) (Stream[K, T], error) {
	entry := Entry{
		Name:    name,
		KeyType: reflect.TypeFor[K](),
		Xor:     stream.Xor(),
	}
	if err := r.add(entry); err != nil {
		return Stream[K, T]{}, err
	}
	return stream, nil
}

// MustRegister is Register for package-level declarations. It panics on
// error.
func MustRegister[K Key, T any](r *Registry, name string, stream Stream[K, T]) Stream[K, T] {
	s, err := Register(r, name, stream)
	if err != nil {
		panic(err)
	}
	return s
}

func (r *Registry) add(e Entry) error {
	if e.Xor.IsZero() {
		return fmt.Errorf("register %q: %w", e.Name, ErrZeroXor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[e.Name]; ok {
		return fmt.Errorf("register %q: %w", e.Name, ErrDuplicateName)
	}
	k := registryKey{keyType: e.KeyType, xor: e.Xor}
	if prev, ok := r.byXor[k]; ok {
		return fmt.Errorf("register %q: %w (used by %q for %s)", e.Name, ErrDuplicateXor, prev, e.KeyType)
	}

	r.byXor[k] = e.Name
	r.byName[e.Name] = e
	r.logger.Debug("registered stream", "name", e.Name, "key", e.KeyType.String(), "xor", NewSeed(e.Xor).String())
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[name]
	return e, ok
}

// Entries returns all registrations sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	entries := make([]Entry, 0, len(r.byName))
	for _, e := range r.byName {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}
