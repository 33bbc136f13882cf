// Package profile defines keybind profiles and the operations the UI and
// CLI layers perform on them: importing keybind/alias files, exporting
// game-loadable text, and stabilization bookkeeping. Persistence is
// behind the Repository interface.
package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/stobind/internal/keybind"
)

// Environment is a bindset scope within a profile. The game keeps
// separate binds for space and ground.
type Environment string

const (
	EnvSpace  Environment = "space"
	EnvGround Environment = "ground"
)

// ValidEnvironment reports whether env is a known bindset scope.
func ValidEnvironment(env Environment) bool {
	return env == EnvSpace || env == EnvGround
}

// Bindset is the key map for one environment.
type Bindset map[string]keybind.Binding

// KeyMetadata is per-key profile metadata.
type KeyMetadata struct {
	StabilizeExecutionOrder bool
}

// Profile owns per-environment bindsets, globally scoped aliases, and
// per-key metadata.
type Profile struct {
	ID           int64
	GUID         string
	Name         string
	Environments map[Environment]Bindset
	Aliases      map[string]keybind.Alias
	Metadata     map[Environment]map[string]KeyMetadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates an empty profile with a fresh GUID and initialized maps.
func New(name string) *Profile {
	now := time.Now()
	return &Profile{
		GUID:         uuid.NewString(),
		Name:         name,
		Environments: map[Environment]Bindset{EnvSpace: {}, EnvGround: {}},
		Aliases:      make(map[string]keybind.Alias),
		Metadata:     make(map[Environment]map[string]KeyMetadata),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Bindings returns the bindset for env, creating it on first use.
func (p *Profile) Bindings(env Environment) Bindset {
	if p.Environments == nil {
		p.Environments = make(map[Environment]Bindset)
	}
	if _, ok := p.Environments[env]; !ok {
		p.Environments[env] = Bindset{}
	}
	return p.Environments[env]
}

// StabilizationFlags collects the stabilize-execution-order flags for env
// in the form the exporter consumes.
func (p *Profile) StabilizationFlags(env Environment) keybind.StabilizationFlags {
	flags := keybind.StabilizationFlags{}
	for key, meta := range p.Metadata[env] {
		if meta.StabilizeExecutionOrder {
			flags[key] = true
		}
	}
	return flags
}

// SetStabilization records the flag for one key. The flag is only ever
// set for bindings with more than one command; setting it on anything
// else is rejected.
func (p *Profile) SetStabilization(env Environment, key string, stabilize bool) error {
	binding, ok := p.Bindings(env)[key]
	if !ok {
		return fmt.Errorf("no binding for key %q in %s", key, env)
	}
	if stabilize && len(binding.Commands) <= 1 {
		return fmt.Errorf("key %q has %d command(s); stabilization needs more than one", key, len(binding.Commands))
	}
	if p.Metadata == nil {
		p.Metadata = make(map[Environment]map[string]KeyMetadata)
	}
	if p.Metadata[env] == nil {
		p.Metadata[env] = make(map[string]KeyMetadata)
	}
	meta := p.Metadata[env][key]
	meta.StabilizeExecutionOrder = stabilize
	p.Metadata[env][key] = meta
	return nil
}

// Repository is the persistence boundary for profiles.
type Repository interface {
	Save(p *Profile) error
	FindByName(name string) (*Profile, error)
	FindByGUID(guid string) (*Profile, error)
	List() ([]*Profile, error)
	Delete(name string) error
}

// NotFoundError is returned when a named profile does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Name)
}

// AlreadyExistsError is returned when creating a profile whose name is
// taken.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("profile %q already exists", e.Name)
}

// InvalidEnvironmentError is returned for an unknown bindset scope.
type InvalidEnvironmentError struct {
	Environment Environment
}

func (e *InvalidEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q (want %q or %q)", e.Environment, EnvSpace, EnvGround)
}
