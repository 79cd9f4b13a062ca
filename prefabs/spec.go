package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/crimsonsky/dialogue"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes one arena: bounds, party tuning, enemy roster,
// boss attack, dialogue cues and presentation hints.
type SceneSpec struct {
	Name          string            `yaml:"name"`
	Title         string            `yaml:"title"`
	Final         bool              `yaml:"final"`
	Arena         ArenaSpec         `yaml:"arena"`
	MaxFrameDelta time.Duration     `yaml:"max_frame_delta"`
	DeathWindow   *time.Duration    `yaml:"death_window"`
	EnemySpeed    float64           `yaml:"enemy_speed"`
	Party         PartySpec         `yaml:"party"`
	Roles         RolesSpec         `yaml:"roles"`
	Enemies       []EnemySpec       `yaml:"enemies"`
	BossAttack    *VolleySpec       `yaml:"boss_attack"`
	Dialogue      SceneDialogueSpec `yaml:"dialogue"`
	Feedback      FeedbackSpec      `yaml:"feedback"`
	Background    BackgroundSpec    `yaml:"background"`
	Decorations   []DecorationSpec  `yaml:"decorations"`
}

type ArenaSpec struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Margin           float64 `yaml:"margin"`
	ProjectileMargin float64 `yaml:"projectile_margin"`
}

type PartySpec struct {
	Speed     float64       `yaml:"speed"`
	Health    int           `yaml:"health"`
	Lead      ActorSpec     `yaml:"lead"`
	Companion CompanionSpec `yaml:"companion"`
	Melee     MeleeSpec     `yaml:"melee"`
}

type ActorSpec struct {
	Name   string  `yaml:"name"`
	Sprite string  `yaml:"sprite"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Scale  float64 `yaml:"scale"`
}

type CompanionSpec struct {
	ActorSpec      `yaml:",inline"`
	FollowDistance float64 `yaml:"follow_distance"`
	SpeedFactor    float64 `yaml:"speed_factor"`
}

// MeleeSpec tunes the lead's slash. An omitted slash_offset means the
// default; an explicit 0 centres the slash on the lead.
type MeleeSpec struct {
	Range       float64       `yaml:"range"`
	Cooldown    time.Duration `yaml:"cooldown"`
	SlashOffset *float64      `yaml:"slash_offset"`
}

type RolesSpec struct {
	Minion RoleSpec `yaml:"minion"`
	Boss   RoleSpec `yaml:"boss"`
}

type RoleSpec struct {
	AggroRange      float64     `yaml:"aggro_range"`
	MinDistance     float64     `yaml:"min_distance"`
	SpeedFactor     float64     `yaml:"speed_factor"`
	MeleeReachBonus float64     `yaml:"melee_reach_bonus"`
	MeleeDamage     int         `yaml:"melee_damage"`
	Contact         ContactSpec `yaml:"contact"`
}

type ContactSpec struct {
	Radius float64 `yaml:"radius"`
	Chance float64 `yaml:"chance"`
	Damage int     `yaml:"damage"`
}

type EnemySpec struct {
	Name   string  `yaml:"name"`
	Role   string  `yaml:"role"`
	Sprite string  `yaml:"sprite"`
	Health int     `yaml:"health"`
	Scale  float64 `yaml:"scale"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

const (
	RoleMinion = "minion"
	RoleBoss   = "boss"
)

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VolleySpec struct {
	Interval  time.Duration `yaml:"interval"`
	Count     int           `yaml:"count"`
	Spread    float64       `yaml:"spread"`
	Speed     float64       `yaml:"speed"`
	Damage    int           `yaml:"damage"`
	HitRadius float64       `yaml:"hit_radius"`
	Muzzle    PointSpec     `yaml:"muzzle"`
	Sprite    string        `yaml:"sprite"`
	Script    string        `yaml:"script"`
}

type SceneDialogueSpec struct {
	ReadyDelay time.Duration       `yaml:"ready_delay"`
	Intro      string              `yaml:"intro"`
	IntroDelay time.Duration       `yaml:"intro_delay"`
	Victory    string              `yaml:"victory"`
	Timed      []TimedDialogueSpec `yaml:"timed"`
}

type TimedDialogueSpec struct {
	Key   string        `yaml:"key"`
	Delay time.Duration `yaml:"delay"`
}

type FeedbackSpec struct {
	HitTint      string    `yaml:"hit_tint"`
	NumberColor  string    `yaml:"number_color"`
	PlayerTint   string    `yaml:"player_tint"`
	DeathSparks  int       `yaml:"death_sparks"`
	ImpactSparks int       `yaml:"impact_sparks"`
	BossShake    ShakeSpec `yaml:"boss_shake"`
}

type ShakeSpec struct {
	Duration  time.Duration `yaml:"duration"`
	Intensity float64       `yaml:"intensity"`
}

type BackgroundSpec struct {
	Tile     float64 `yaml:"tile"`
	Ground   string  `yaml:"ground"`
	Path     string  `yaml:"path"`
	PathRows int     `yaml:"path_rows"`
	Embers   int     `yaml:"embers"`
}

type DecorationSpec struct {
	Sprite    string      `yaml:"sprite"`
	Scale     float64     `yaml:"scale"`
	Layer     int         `yaml:"layer"`
	Positions []PointSpec `yaml:"positions"`
}

const (
	defaultDeathWindow = 300 * time.Millisecond
	defaultSlashOffset = 20.0
)

// Window returns how long a dead enemy lingers before removal. An omitted
// death_window means the default; an explicit 0s removes it next frame.
func (s *SceneSpec) Window() time.Duration {
	if s.DeathWindow == nil {
		return defaultDeathWindow
	}
	return *s.DeathWindow
}

// Offset returns how far in front of the lead the slash lands.
func (m MeleeSpec) Offset() float64 {
	if m.SlashOffset == nil {
		return defaultSlashOffset
	}
	return *m.SlashOffset
}

// LoadSceneSpec loads scenes/<name>.yaml, fills defaults and validates it.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	path := ScenePath(name)
	spec, err := LoadSpec[SceneSpec](path)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return &spec, nil
}

// ApplyDefaults fills zero fields with the stock tuning. Pointer fields are
// filled only when the key was omitted.
func (s *SceneSpec) ApplyDefaults() {
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.Arena.Margin == 0 {
		s.Arena.Margin = 30
	}
	if s.Arena.ProjectileMargin == 0 {
		s.Arena.ProjectileMargin = 20
	}
	if s.MaxFrameDelta == 0 {
		s.MaxFrameDelta = 100 * time.Millisecond
	}
	if s.DeathWindow == nil {
		window := defaultDeathWindow
		s.DeathWindow = &window
	}
	if s.EnemySpeed == 0 {
		s.EnemySpeed = 80
	}
	if s.Party.Speed == 0 {
		s.Party.Speed = 160
	}
	if s.Party.Health == 0 {
		s.Party.Health = 100
	}
	if s.Party.Lead.Scale == 0 {
		s.Party.Lead.Scale = 2
	}
	if s.Party.Companion.Scale == 0 {
		s.Party.Companion.Scale = 2
	}
	if s.Party.Companion.FollowDistance == 0 {
		s.Party.Companion.FollowDistance = 50
	}
	if s.Party.Companion.SpeedFactor == 0 {
		s.Party.Companion.SpeedFactor = 0.8
	}
	if s.Party.Melee.Range == 0 {
		s.Party.Melee.Range = 50
	}
	if s.Party.Melee.Cooldown == 0 {
		s.Party.Melee.Cooldown = 300 * time.Millisecond
	}
	if s.Party.Melee.SlashOffset == nil {
		offset := defaultSlashOffset
		s.Party.Melee.SlashOffset = &offset
	}
	for i := range s.Enemies {
		if s.Enemies[i].Role == "" {
			s.Enemies[i].Role = RoleMinion
		}
		if s.Enemies[i].Scale == 0 {
			s.Enemies[i].Scale = 2
		}
		if s.Enemies[i].Sprite == "" {
			s.Enemies[i].Sprite = s.Enemies[i].Name
		}
	}
	if s.Dialogue.ReadyDelay == 0 {
		s.Dialogue.ReadyDelay = 100 * time.Millisecond
	}
	if s.Dialogue.IntroDelay == 0 {
		s.Dialogue.IntroDelay = 500 * time.Millisecond
	}
	if s.Background.Tile == 0 {
		s.Background.Tile = 32
	}
	if s.Background.PathRows == 0 {
		s.Background.PathRows = 2
	}
	if s.BossAttack != nil {
		if s.BossAttack.Count == 0 {
			s.BossAttack.Count = 1
		}
		if s.BossAttack.HitRadius == 0 {
			s.BossAttack.HitRadius = 25
		}
	}
	for i := range s.Decorations {
		if s.Decorations[i].Scale == 0 {
			s.Decorations[i].Scale = 1
		}
	}
}

// Validate reports the first structural problem in the scene.
func (s *SceneSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: scene name is required", ErrInvalidSpec)
	}
	if s.Arena.Width <= 0 || s.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena size must be positive", ErrInvalidSpec)
	}
	if s.Arena.Margin < 0 || s.Arena.Margin*2 >= s.Arena.Width || s.Arena.Margin*2 >= s.Arena.Height {
		return fmt.Errorf("%w: arena margin %.0f does not fit", ErrInvalidSpec, s.Arena.Margin)
	}
	if s.MaxFrameDelta < 0 || s.Window() < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidSpec)
	}
	if s.Party.Health <= 0 {
		return fmt.Errorf("%w: party health must be positive", ErrInvalidSpec)
	}
	if s.Party.Melee.Cooldown < 0 {
		return fmt.Errorf("%w: melee cooldown must not be negative", ErrInvalidSpec)
	}

	bosses := 0
	for i, e := range s.Enemies {
		switch e.Role {
		case RoleMinion:
		case RoleBoss:
			bosses++
		default:
			return fmt.Errorf("%w: enemy %d (%s): unknown role %q", ErrInvalidSpec, i, e.Name, e.Role)
		}
		if e.Health <= 0 {
			return fmt.Errorf("%w: enemy %d (%s): health must be positive", ErrInvalidSpec, i, e.Name)
		}
	}
	if bosses != 1 {
		return fmt.Errorf("%w: scene needs exactly one boss, found %d", ErrInvalidSpec, bosses)
	}

	for _, name := range []string{RoleMinion, RoleBoss} {
		r := s.Role(name)
		if r.Contact.Chance < 0 || r.Contact.Chance > 1 {
			return fmt.Errorf("%w: %s contact chance %.3f outside [0,1]", ErrInvalidSpec, name, r.Contact.Chance)
		}
		if r.MeleeDamage < 0 || r.Contact.Damage < 0 {
			return fmt.Errorf("%w: %s damage must not be negative", ErrInvalidSpec, name)
		}
	}

	if v := s.BossAttack; v != nil {
		if v.Interval <= 0 {
			return fmt.Errorf("%w: boss_attack interval must be positive", ErrInvalidSpec)
		}
		if v.Count <= 0 || v.Speed <= 0 {
			return fmt.Errorf("%w: boss_attack count and speed must be positive", ErrInvalidSpec)
		}
	}

	if s.Dialogue.Victory == "" {
		return fmt.Errorf("%w: victory dialogue is required", ErrInvalidSpec)
	}

	for _, c := range []string{s.Feedback.HitTint, s.Feedback.NumberColor, s.Feedback.PlayerTint} {
		if c == "" {
			continue
		}
		if _, err := ParseHexColor(c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
	}

	return nil
}

// Boss returns the roster entry with the boss role.
func (s *SceneSpec) Boss() (EnemySpec, bool) {
	for _, e := range s.Enemies {
		if e.Role == RoleBoss {
			return e, true
		}
	}
	return EnemySpec{}, false
}

// Role returns the AI profile for a roster role.
func (s *SceneSpec) Role(role string) RoleSpec {
	if role == RoleBoss {
		return s.Roles.Boss
	}
	return s.Roles.Minion
}

// CampaignSpec orders the scenes of a run.
type CampaignSpec struct {
	Scenes          []string          `yaml:"scenes"`
	TransitionDelay time.Duration     `yaml:"transition_delay"`
	Banners         map[string]string `yaml:"banners"`
}

func LoadCampaignSpec() (*CampaignSpec, error) {
	spec, err := LoadSpec[CampaignSpec]("campaign.yaml")
	if err != nil {
		return nil, err
	}
	if spec.TransitionDelay == 0 {
		spec.TransitionDelay = time.Second
	}
	if len(spec.Scenes) == 0 {
		return nil, fmt.Errorf("prefabs: campaign.yaml: %w: no scenes", ErrInvalidSpec)
	}
	return &spec, nil
}

// Banner returns the transition text shown before the named scene.
func (c *CampaignSpec) Banner(scene string) string {
	if b, ok := c.Banners[scene]; ok {
		return b
	}
	return strings.ToUpper(fmt.Sprintf("entering %s...", scene))
}

type LineSpec struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

// DialogueSpec maps script keys to their lines.
type DialogueSpec map[string][]LineSpec

// PaletteSpec maps sprite names to the colours hosts draw them with.
type PaletteSpec map[string]YAMLColor

func LoadPaletteSpec() (PaletteSpec, error) {
	return LoadSpec[PaletteSpec]("palette.yaml")
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses #RRGGBB or #RRGGBBAA.
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// LoadDialogues builds the dialogue library from dialogues.yaml.
func LoadDialogues() (*dialogue.Library, error) {
	spec, err := LoadSpec[DialogueSpec]("dialogues.yaml")
	if err != nil {
		return nil, err
	}
	return spec.Library()
}

// Library converts the dialogue content, rejecting unknown speakers and empty scripts.
func (d DialogueSpec) Library() (*dialogue.Library, error) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	scripts := make([]dialogue.Script, 0, len(keys))
	for _, key := range keys {
		specLines := d[key]
		if len(specLines) == 0 {
			return nil, fmt.Errorf("%w: dialogue %q has no lines", ErrInvalidSpec, key)
		}
		lines := make([]dialogue.Line, 0, len(specLines))
		for i, l := range specLines {
			speaker := dialogue.Speaker(l.Speaker)
			if !speaker.Valid() {
				return nil, fmt.Errorf("%w: dialogue %q line %d: unknown speaker %q", ErrInvalidSpec, key, i, l.Speaker)
			}
			lines = append(lines, dialogue.Line{Speaker: speaker, Text: l.Text})
		}
		scripts = append(scripts, dialogue.NewScript(key, lines))
	}
	return dialogue.NewLibrary(scripts...), nil
}
