package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/profile"
)

// profileRepository implements profile.Repository using SQLite.
type profileRepository struct {
	db *sql.DB
}

func newProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{db: db}
}

// Ensure profileRepository implements profile.Repository.
var _ profile.Repository = (*profileRepository)(nil)

// Save persists a profile and all of its bindings, aliases and metadata.
// New profiles (ID == 0) are inserted and get their ID set; existing ones
// are updated. Child rows are replaced wholesale inside one transaction;
// profiles are small enough that diffing rows is not worth it.
func (r *profileRepository) Save(p *profile.Profile) error {
	model := toProfileModel(p)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if p.ID == 0 {
		result, err := tx.Exec(
			`INSERT INTO profiles (guid, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			model.GUID, model.Name, model.CreatedAt, model.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting profile: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading insert id: %w", err)
		}
		p.ID = id
	} else {
		if _, err := tx.Exec(
			`UPDATE profiles SET name = ?, updated_at = ? WHERE id = ?`,
			model.Name, model.UpdatedAt, model.ID,
		); err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
	}

	for _, table := range []string{"bindings", "aliases", "key_metadata"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE profile_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for env, bindset := range p.Environments {
		for _, binding := range bindset {
			bm, err := toBindingModel(p.ID, env, binding)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				`INSERT INTO bindings (profile_id, environment, key, commands, source_line, raw)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				bm.ProfileID, bm.Environment, bm.Key, bm.Commands, bm.SourceLine, bm.Raw,
			); err != nil {
				return fmt.Errorf("inserting binding %q: %w", binding.Key, err)
			}
		}
	}

	for _, alias := range p.Aliases {
		if _, err := tx.Exec(
			`INSERT INTO aliases (profile_id, name, commands, description) VALUES (?, ?, ?, ?)`,
			p.ID, alias.Name, alias.Commands, alias.Description,
		); err != nil {
			return fmt.Errorf("inserting alias %q: %w", alias.Name, err)
		}
	}

	for env, keys := range p.Metadata {
		for key, meta := range keys {
			if _, err := tx.Exec(
				`INSERT INTO key_metadata (profile_id, environment, key, stabilize_execution_order)
				 VALUES (?, ?, ?, ?)`,
				p.ID, string(env), key, meta.StabilizeExecutionOrder,
			); err != nil {
				return fmt.Errorf("inserting metadata for %q: %w", key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profile: %w", err)
	}
	return nil
}

// FindByName retrieves a profile and its full contents by name.
// Returns profile.NotFoundError when it does not exist.
func (r *profileRepository) FindByName(name string) (*profile.Profile, error) {
	return r.findWhere(`name = ?`, name, name)
}

// FindByGUID retrieves a profile by its GUID.
func (r *profileRepository) FindByGUID(guid string) (*profile.Profile, error) {
	return r.findWhere(`guid = ?`, guid, guid)
}

func (r *profileRepository) findWhere(clause string, arg any, label string) (*profile.Profile, error) {
	row := r.db.QueryRow(
		`SELECT id, guid, name, created_at, updated_at FROM profiles WHERE `+clause, arg,
	)

	var model ProfileModel
	err := row.Scan(&model.ID, &model.GUID, &model.Name, &model.CreatedAt, &model.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &profile.NotFoundError{Name: label}
	}
	if err != nil {
		return nil, fmt.Errorf("finding profile: %w", err)
	}

	p := model.toDomain()
	if err := r.loadContents(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) loadContents(p *profile.Profile) error {
	rows, err := r.db.Query(
		`SELECT environment, key, commands, source_line, raw FROM bindings WHERE profile_id = ?`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("loading bindings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var bm BindingModel
		if err := rows.Scan(&bm.Environment, &bm.Key, &bm.Commands, &bm.SourceLine, &bm.Raw); err != nil {
			return fmt.Errorf("scanning binding: %w", err)
		}
		binding, err := bm.toDomain()
		if err != nil {
			return err
		}
		p.Bindings(profile.Environment(bm.Environment))[bm.Key] = binding
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating bindings: %w", err)
	}

	aliasRows, err := r.db.Query(
		`SELECT name, commands, description FROM aliases WHERE profile_id = ?`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("loading aliases: %w", err)
	}
	defer aliasRows.Close()
	for aliasRows.Next() {
		var a keybind.Alias
		if err := aliasRows.Scan(&a.Name, &a.Commands, &a.Description); err != nil {
			return fmt.Errorf("scanning alias: %w", err)
		}
		p.Aliases[a.Name] = a
	}
	if err := aliasRows.Err(); err != nil {
		return fmt.Errorf("iterating aliases: %w", err)
	}

	metaRows, err := r.db.Query(
		`SELECT environment, key, stabilize_execution_order FROM key_metadata WHERE profile_id = ?`, p.ID,
	)
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var env, key string
		var stabilize bool
		if err := metaRows.Scan(&env, &key, &stabilize); err != nil {
			return fmt.Errorf("scanning metadata: %w", err)
		}
		e := profile.Environment(env)
		if p.Metadata[e] == nil {
			p.Metadata[e] = make(map[string]profile.KeyMetadata)
		}
		p.Metadata[e][key] = profile.KeyMetadata{StabilizeExecutionOrder: stabilize}
	}
	if err := metaRows.Err(); err != nil {
		return fmt.Errorf("iterating metadata: %w", err)
	}

	return nil
}

// List returns every profile ordered by name, contents included.
func (r *profileRepository) List() ([]*profile.Profile, error) {
	rows, err := r.db.Query(`SELECT id, guid, name, created_at, updated_at FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		var model ProfileModel
		if err := rows.Scan(&model.ID, &model.GUID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}

	for _, p := range profiles {
		if err := r.loadContents(p); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// Delete removes a profile and, via foreign keys, all of its contents.
func (r *profileRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return &profile.NotFoundError{Name: name}
	}
	return nil
}
