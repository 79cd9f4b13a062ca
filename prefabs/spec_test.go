package prefabs

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadSceneSpecs(t *testing.T) {
	tests := []struct {
		name      string
		final     bool
		minions   int
		bossName  string
		bossHP    int
		hasVolley bool
	}{
		{name: "forest", minions: 4, bossName: "Goblin Chief", bossHP: 100},
		{name: "mountains", final: true, minions: 5, bossName: "Flame Drake", bossHP: 200, hasVolley: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := LoadSceneSpec(tc.name)
			require.NoError(t, err)

			assert.Equal(t, tc.name, spec.Name)
			assert.Equal(t, tc.final, spec.Final)
			assert.Len(t, spec.Enemies, tc.minions+1)

			boss, ok := spec.Boss()
			require.True(t, ok)
			assert.Equal(t, tc.bossName, boss.Name)
			assert.Equal(t, tc.bossHP, boss.Health)
			assert.Equal(t, tc.hasVolley, spec.BossAttack != nil)
			assert.Equal(t, 100, spec.Party.Health)
			assert.Equal(t, 100*time.Millisecond, spec.MaxFrameDelta)
		})
	}
}

func TestMountainsTuning(t *testing.T) {
	spec, err := LoadSceneSpec("mountains")
	require.NoError(t, err)

	assert.Equal(t, 30, spec.Roles.Minion.MeleeDamage)
	assert.Equal(t, 20, spec.Roles.Boss.MeleeDamage)
	assert.Equal(t, 0.0, spec.Roles.Boss.Contact.Chance)
	assert.Equal(t, 400*time.Millisecond, spec.Window())

	v := spec.BossAttack
	assert.Equal(t, 2*time.Second, v.Interval)
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, 200.0, v.Speed)
	assert.Equal(t, 20, v.Damage)
	assert.Equal(t, "flame_drake.tengo", v.Script)

	require.Len(t, spec.Dialogue.Timed, 1)
	assert.Equal(t, "dragonEncounter", spec.Dialogue.Timed[0].Key)
	assert.Equal(t, 3*time.Second, spec.Dialogue.Timed[0].Delay)
}

func validScene() SceneSpec {
	s := SceneSpec{
		Name:  "test",
		Arena: ArenaSpec{Width: 800, Height: 600},
		Enemies: []EnemySpec{
			{Name: "grunt", Health: 10},
			{Name: "chief", Role: RoleBoss, Health: 50},
		},
		Dialogue: SceneDialogueSpec{Victory: "won"},
	}
	s.ApplyDefaults()
	return s
}

func TestApplyDefaults(t *testing.T) {
	s := validScene()

	assert.Equal(t, "test", s.Title)
	assert.Equal(t, 30.0, s.Arena.Margin)
	assert.Equal(t, 160.0, s.Party.Speed)
	assert.Equal(t, 50.0, s.Party.Melee.Range)
	assert.Equal(t, 300*time.Millisecond, s.Party.Melee.Cooldown)
	assert.Equal(t, RoleMinion, s.Enemies[0].Role)
	assert.Equal(t, "grunt", s.Enemies[0].Sprite)
	assert.Equal(t, 2.0, s.Enemies[0].Scale)
	assert.Equal(t, 300*time.Millisecond, s.Window())
	assert.Equal(t, 20.0, s.Party.Melee.Offset())
	require.NoError(t, s.Validate())
}

func TestApplyDefaultsKeepsExplicitZero(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		window time.Duration
		offset float64
	}{
		{"omitted", "name: test\n", 300 * time.Millisecond, 20},
		{"explicit_zero", "name: test\ndeath_window: 0s\nparty:\n  melee:\n    slash_offset: 0\n", 0, 0},
		{"explicit_value", "name: test\ndeath_window: 1s\nparty:\n  melee:\n    slash_offset: 35\n", time.Second, 35},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s SceneSpec
			require.NoError(t, yaml.Unmarshal([]byte(tc.src), &s))
			s.ApplyDefaults()
			assert.Equal(t, tc.window, s.Window())
			assert.Equal(t, tc.offset, s.Party.Melee.Offset())
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *SceneSpec)
	}{
		{"no_name", func(s *SceneSpec) { s.Name = " " }},
		{"zero_arena", func(s *SceneSpec) { s.Arena.Width = 0 }},
		{"margin_too_wide", func(s *SceneSpec) { s.Arena.Margin = 400 }},
		{"negative_window", func(s *SceneSpec) { w := -time.Second; s.DeathWindow = &w }},
		{"party_health", func(s *SceneSpec) { s.Party.Health = -1 }},
		{"unknown_role", func(s *SceneSpec) { s.Enemies[0].Role = "archer" }},
		{"enemy_health", func(s *SceneSpec) { s.Enemies[0].Health = 0 }},
		{"no_boss", func(s *SceneSpec) { s.Enemies = s.Enemies[:1] }},
		{"two_bosses", func(s *SceneSpec) { s.Enemies[0].Role = RoleBoss }},
		{"contact_chance", func(s *SceneSpec) { s.Roles.Minion.Contact.Chance = 1.5 }},
		{"negative_damage", func(s *SceneSpec) { s.Roles.Boss.MeleeDamage = -5 }},
		{"volley_interval", func(s *SceneSpec) { s.BossAttack = &VolleySpec{Count: 1, Speed: 100} }},
		{"volley_speed", func(s *SceneSpec) { s.BossAttack = &VolleySpec{Interval: time.Second, Count: 1} }},
		{"no_victory", func(s *SceneSpec) { s.Dialogue.Victory = "" }},
		{"bad_tint", func(s *SceneSpec) { s.Feedback.HitTint = "red" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validScene()
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSpec)
		})
	}
}

func TestLoadSceneSpecUnknown(t *testing.T) {
	_, err := LoadSceneSpec("swamp")
	assert.Error(t, err)
}

func TestScenePath(t *testing.T) {
	assert.Equal(t, "scenes/forest.yaml", ScenePath("forest"))
	assert.Equal(t, "scenes/forest.yaml", ScenePath(" forest.yaml "))
}

func TestLoadCampaignSpec(t *testing.T) {
	c, err := LoadCampaignSpec()
	require.NoError(t, err)

	assert.Equal(t, []string{"forest", "mountains"}, c.Scenes)
	assert.Equal(t, time.Second, c.TransitionDelay)
	assert.Equal(t, "ENTERING ASHEN MOUNTAINS...", c.Banner("mountains"))
	assert.Equal(t, "ENTERING SWAMP...", c.Banner("swamp"))
}

func TestLoadDialogues(t *testing.T) {
	lib, err := LoadDialogues()
	require.NoError(t, err)

	for _, key := range []string{
		"intro", "goblinEncounter", "goblinChief", "forestVictory",
		"mountainsIntro", "dragonEncounter", "flameDrake", "mountainsVictory",
	} {
		assert.True(t, lib.Has(key), "missing %s", key)
	}

	intro, err := lib.Script("intro")
	require.NoError(t, err)
	assert.Equal(t, 5, intro.Len())
	line, _ := intro.Line(0)
	assert.Equal(t, "The village burns. Smoke fills the crimson sky...", line.Text)
}

func TestDialogueSpecLibraryRejects(t *testing.T) {
	_, err := DialogueSpec{"empty": nil}.Library()
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = DialogueSpec{"odd": {{Speaker: "Villager", Text: "hi"}}}.Library()
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff6600", want: color.NRGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}},
		{in: "2e5090", want: color.NRGBA{R: 0x2e, G: 0x50, B: 0x90, A: 0xff}},
		{in: "#11223380", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{in: "#fff", wantErr: true},
		{in: "#zz0000", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadPaletteSpec(t *testing.T) {
	p, err := LoadPaletteSpec()
	require.NoError(t, err)

	c, ok := p["soad"]
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xf5, G: 0xa6, B: 0x23, A: 0xff}, c.Color)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"flame_drake.tengo", "scripts/flame_drake.tengo", "prefabs/scripts/flame_drake.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "volley")
	}
}

func TestContentName(t *testing.T) {
	assert.Equal(t, "scenes/forest.yaml", ContentName("/home/x/game/prefabs/scenes/forest.yaml"))
	assert.Equal(t, "campaign.yaml", ContentName("prefabs/campaign.yaml"))
	assert.True(t, isSpecFile("a/b.YML"))
	assert.True(t, isScriptFile("x.tengo"))
	assert.False(t, isScriptFile("x.go"))
}
