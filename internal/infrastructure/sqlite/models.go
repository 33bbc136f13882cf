package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/profile"
)

// ProfileModel is the database row for the profiles table. Timestamps
// are Unix seconds.
type ProfileModel struct {
	ID        int64
	GUID      string
	Name      string
	CreatedAt int64
	UpdatedAt int64
}

func toProfileModel(p *profile.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        p.ID,
		GUID:      p.GUID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Unix(),
		UpdatedAt: p.UpdatedAt.Unix(),
	}
}

func (m *ProfileModel) toDomain() *profile.Profile {
	return &profile.Profile{
		ID:           m.ID,
		GUID:         m.GUID,
		Name:         m.Name,
		Environments: make(map[profile.Environment]profile.Bindset),
		Aliases:      make(map[string]keybind.Alias),
		Metadata:     make(map[profile.Environment]map[string]profile.KeyMetadata),
		CreatedAt:    time.Unix(m.CreatedAt, 0),
		UpdatedAt:    time.Unix(m.UpdatedAt, 0),
	}
}

// BindingModel is the database row for the bindings table. Commands are
// stored JSON encoded.
type BindingModel struct {
	ProfileID   int64
	Environment string
	Key         string
	Commands    string
	SourceLine  int
	Raw         string
}

func toBindingModel(profileID int64, env profile.Environment, b keybind.Binding) (*BindingModel, error) {
	encoded, err := json.Marshal(b.Commands)
	if err != nil {
		return nil, fmt.Errorf("encoding commands for key %q: %w", b.Key, err)
	}
	return &BindingModel{
		ProfileID:   profileID,
		Environment: string(env),
		Key:         b.Key,
		Commands:    string(encoded),
		SourceLine:  b.Line,
		Raw:         b.Raw,
	}, nil
}

func (m *BindingModel) toDomain() (keybind.Binding, error) {
	var commands []keybind.CommandEntry
	if err := json.Unmarshal([]byte(m.Commands), &commands); err != nil {
		return keybind.Binding{}, fmt.Errorf("decoding commands for key %q: %w", m.Key, err)
	}
	return keybind.Binding{
		Key:      m.Key,
		Commands: commands,
		Line:     m.SourceLine,
		Raw:      m.Raw,
	}, nil
}
