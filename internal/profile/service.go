package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/stobind/internal/cachemanager"
	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/log"
)

var tracer = otel.Tracer("stobind/profile")

// ImportResult reports what an import operation did. It is returned even
// when individual lines or entries failed; the operation as a whole only
// fails on structural errors (missing profile, bad environment), which
// come back as a separate error value.
type ImportResult struct {
	Success     bool
	Imported    int
	Skipped     int
	Overwritten int
	Cleared     int
	LineErrors  []keybind.ParseError
	EntryErrors []keybind.MergeError
}

// Service implements the import/export operations over a Repository.
// All methods are synchronous; the context is used for tracing and the
// parse cache only.
type Service struct {
	repo       Repository
	parseCache *cachemanager.ReadThroughCache[string, *keybind.ParseResult, string]
}

// NewService creates a Service backed by repo with an in-memory parse
// cache keyed by content hash.
func NewService(repo Repository) *Service {
	backing := cachemanager.NewInMemoryCacheManager[string, *keybind.ParseResult](
		"keybind-parse", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	parse := func(ctx context.Context, content string) (*keybind.ParseResult, error) {
		return keybind.ParseFile(content), nil
	}

	return &Service{
		repo:       repo,
		parseCache: cachemanager.NewReadThroughCache(backing, parse, false),
	}
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (s *Service) parse(ctx context.Context, content string) *keybind.ParseResult {
	result, _ := s.parseCache.Get(ctx, contentHash(content), content, cachemanager.DefaultExpiration)
	return result
}

// ImportKeybindFile parses content and merges its bindings into the named
// profile's bindset for env under the chosen strategy. Mirrored chains
// are detected, halved back to their original command list, and recorded
// in the profile's stabilization metadata. Valid entries commit even when
// other lines fail; there is no rollback.
func (s *Service) ImportKeybindFile(ctx context.Context, profileName string, env Environment, content string, strategy keybind.MergeStrategy) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "import_keybind_file")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile", profileName),
		attribute.String("environment", string(env)),
		attribute.String("strategy", strategy.String()),
	)

	if !ValidEnvironment(env) {
		return nil, &InvalidEnvironmentError{Environment: env}
	}
	prof, err := s.repo.FindByName(profileName)
	if err != nil {
		return nil, err
	}

	parsed := s.parse(ctx, content)

	incoming := make(Bindset, len(parsed.Bindings))
	stabilized := make(map[string]bool, len(parsed.Bindings))
	for key, binding := range parsed.Bindings {
		commands, mirrored := keybind.DetectAndUnmirror(binding.Raw)
		if mirrored {
			entries := make([]keybind.CommandEntry, len(commands))
			for i, c := range commands {
				entries[i] = keybind.NewCommandEntry(c)
			}
			binding.Commands = entries
		}
		stabilized[key] = mirrored
		incoming[key] = binding
	}

	existing := prof.Bindings(env)
	merged, stats, entryErrs := keybind.ResolveMerge(existing, incoming, strategy, keybind.KindKey)
	prof.Environments[env] = merged

	if strategy == keybind.OverwriteAll {
		delete(prof.Metadata, env)
	}
	for key, inserted := range insertedKeys(existing, incoming, strategy, entryErrs) {
		if !inserted {
			continue
		}
		if stabilized[key] {
			if err := prof.SetStabilization(env, key, true); err != nil {
				log.Warn(log.CatMerge, "could not flag stabilization", "key", key, "error", err)
			}
		} else if prof.Metadata[env] != nil {
			delete(prof.Metadata[env], key)
		}
	}

	prof.UpdatedAt = time.Now()
	if err := s.repo.Save(prof); err != nil {
		return nil, err
	}

	log.Info(log.CatMerge, "keybind import",
		"profile", profileName, "env", env, "strategy", strategy,
		"imported", stats.Imported, "skipped", stats.Skipped,
		"overwritten", stats.Overwritten, "cleared", stats.Cleared,
		"line_errors", len(parsed.Errors), "entry_errors", len(entryErrs))
	span.SetAttributes(attribute.Int("imported", stats.Imported))

	return &ImportResult{
		Success:     true,
		Imported:    stats.Imported,
		Skipped:     stats.Skipped,
		Overwritten: stats.Overwritten,
		Cleared:     stats.Cleared,
		LineErrors:  parsed.Errors,
		EntryErrors: entryErrs,
	}, nil
}

// insertedKeys reports which incoming keys were actually written by the
// merge, so only their stabilization metadata is touched.
func insertedKeys(existing Bindset, incoming Bindset, strategy keybind.MergeStrategy, entryErrs []keybind.MergeError) map[string]bool {
	invalid := make(map[string]struct{}, len(entryErrs))
	for _, e := range entryErrs {
		invalid[e.Name] = struct{}{}
	}

	inserted := make(map[string]bool, len(incoming))
	for key := range incoming {
		if _, bad := invalid[key]; bad {
			continue
		}
		// MergeKeep leaves collisions untouched; everything else writes
		// every valid incoming entry.
		_, collided := existing[key]
		inserted[key] = strategy != keybind.MergeKeep || !collided
	}
	return inserted
}

// ImportAliasFile parses content and merges its alias declarations into
// the profile's global alias map.
func (s *Service) ImportAliasFile(ctx context.Context, profileName string, content string, strategy keybind.MergeStrategy) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "import_alias_file")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile", profileName),
		attribute.String("strategy", strategy.String()),
	)

	prof, err := s.repo.FindByName(profileName)
	if err != nil {
		return nil, err
	}

	parsed := s.parse(ctx, content)

	merged, stats, entryErrs := keybind.ResolveMerge(prof.Aliases, parsed.Aliases, strategy, keybind.KindAlias)
	prof.Aliases = merged
	prof.UpdatedAt = time.Now()
	if err := s.repo.Save(prof); err != nil {
		return nil, err
	}

	log.Info(log.CatMerge, "alias import",
		"profile", profileName, "strategy", strategy,
		"imported", stats.Imported, "skipped", stats.Skipped,
		"overwritten", stats.Overwritten, "cleared", stats.Cleared)

	return &ImportResult{
		Success:     true,
		Imported:    stats.Imported,
		Skipped:     stats.Skipped,
		Overwritten: stats.Overwritten,
		Cleared:     stats.Cleared,
		LineErrors:  parsed.Errors,
		EntryErrors: entryErrs,
	}, nil
}

// ExportProfile renders the named profile's bindset for env as keybind
// file text, applying stabilization mirroring where flagged.
func (s *Service) ExportProfile(ctx context.Context, profileName string, env Environment, now time.Time) (string, error) {
	_, span := tracer.Start(ctx, "export_profile")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile", profileName),
		attribute.String("environment", string(env)),
	)

	if !ValidEnvironment(env) {
		return "", &InvalidEnvironmentError{Environment: env}
	}
	prof, err := s.repo.FindByName(profileName)
	if err != nil {
		return "", err
	}

	header := []string{
		"Profile: " + prof.Name,
		"Environment: " + string(env),
		"Generated: " + now.Format(time.RFC3339),
	}
	out := keybind.ExportBindings(prof.Bindings(env), prof.StabilizationFlags(env), prof.Aliases, header)

	log.Info(log.CatExport, "profile export",
		"profile", profileName, "env", env, "keys", len(prof.Bindings(env)))
	return out, nil
}
