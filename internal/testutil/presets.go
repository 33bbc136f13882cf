package testutil

import (
	"testing"

	"github.com/zjrosen/stobind/internal/profile"
)

// SampleKeybindFile is a realistic space keybind export covering the
// constructs the parser handles: comments, plain binds, command chains
// and a /bind directive.
const SampleKeybindFile = `# Space binds
Space "+power_exec Distribute_Shields"
F1 "Target_Self $$ +STOTrayExecByTray 3 0"
F2 "Target_Enemy_Near"
Tab "Target_Enemy_Next"
/bind G "GenSendMessage HUD_Root FireAll"
`

// SampleAliasFile is a small alias export.
const SampleAliasFile = `alias heal_self "Target_Self $$ +STOTrayExecByTray 2 0"
alias fire_all "GenSendMessage HUD_Root FireAll"
`

// CombatProfile builds a profile with bindings in both environments,
// an alias, and one stabilized chain.
func CombatProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	return NewProfile(t, name).
		WithBinding("Space", "+power_exec Distribute_Shields").
		WithStabilized("F1", "Target_Self", "+STOTrayExecByTray 3 0", "+STOTrayExecByTray 3 1").
		WithBinding("Tab", "Target_Enemy_Next").
		InEnvironment(profile.EnvGround).
		WithBinding("F1", "Target_Self").
		WithAlias("fire_all", "GenSendMessage HUD_Root FireAll").
		Build()
}
