// Package settings is the typed settings store behind the console display options.
// Values are resolved by viper with the precedence: explicit Set, environment, config file,
// registered default.
package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hexshell/internal/logger"
)

// Keys of the registered display settings.
const (
	GeneratorLength     = "console.hexIntegers.generatorLength"
	Generators          = "console.hexIntegers.generators"
	AlsoDecimal         = "console.hexIntegers.alsoDecimal"
	PrettyPrint         = "console.hexIntegers.prettyPrint"
	ShowTopNone         = "console.hexIntegers.showTopNone"
	PrettyPrintWidth    = "console.hexIntegers.prettyPrintWidth"
	PrettyPrintSortKeys = "console.hexIntegers.prettyPrintSortKeys"
	PrettyPrintDepth    = "console.hexIntegers.prettyPrintDepth"
	PrettyPrintIndent   = "console.hexIntegers.prettyPrintIndent"
)

// EnvPrefix prefixes environment overrides, e.g. HEXSH_CONSOLE_HEXINTEGERS_ALSODECIMAL.
const EnvPrefix = "HEXSH"

// RequiresKey is the config file entry holding a hexsh version constraint, e.g. ">= 0.1".
const RequiresKey = "requires"

//go:embed schema.yaml
var defaultSchema []byte

// Sentinel errors returned by the store.
var (
	ErrUnknownSetting    = errors.New("unknown setting")
	ErrOutOfRange        = errors.New("value out of range")
	ErrInvalidValue      = errors.New("invalid value")
	ErrAlreadyRegistered = errors.New("setting already registered")
)

// Type is the value type of a setting.
type Type string

// Setting value types.
const (
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Setting describes one registered option.
type Setting struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        Type   `yaml:"type"`
	Default     any    `yaml:"default"`
	MinValue    *int   `yaml:"minValue"`
	MaxValue    *int   `yaml:"maxValue"`
}

// Clamp limits n to the setting's range.
func (s Setting) Clamp(n int) int {
	if s.MinValue != nil && n < *s.MinValue {
		n = *s.MinValue
	}
	if s.MaxValue != nil && n > *s.MaxValue {
		n = *s.MaxValue
	}
	return n
}

func (s Setting) validate() error {
	if s.Key == "" {
		return errors.New("setting without key")
	}
	switch s.Type {
	case TypeBoolean:
		if _, ok := s.Default.(bool); !ok {
			return fmt.Errorf("setting %s: boolean default required", s.Key)
		}
	case TypeNumber:
		if _, ok := s.Default.(int); !ok {
			return fmt.Errorf("setting %s: integer default required", s.Key)
		}
		if s.MinValue != nil && s.MaxValue != nil && *s.MinValue > *s.MaxValue {
			return fmt.Errorf("setting %s: minValue above maxValue", s.Key)
		}
	default:
		return fmt.Errorf("setting %s: unsupported type %q", s.Key, s.Type)
	}
	return nil
}

// Store holds registered settings and resolves their values.
type Store struct {
	mu       sync.RWMutex
	v        *viper.Viper
	settings map[string]Setting
	order    []string
}

// Option configures a Store.
type Option func(*Store)

// WithViper uses v instead of a fresh viper instance.
func WithViper(v *viper.Viper) Option {
	return func(s *Store) {
		if v != nil {
			s.v = v
		}
	}
}

// New creates an empty store reading environment overrides with EnvPrefix.
func New(opts ...Option) *Store {
	s := &Store{
		v:        viper.New(),
		settings: make(map[string]Setting),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.v.SetEnvPrefix(EnvPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	s.v.AutomaticEnv()
	return s
}

// NewDefault creates a store with the display settings registered.
func NewDefault(opts ...Option) (*Store, error) {
	s := New(opts...)
	if err := s.RegisterDefaults(); err != nil {
		return nil, err
	}
	return s, nil
}

// Register adds a setting described by a YAML schema document. The document's own key,
// if any, must match key.
func (s *Store) Register(key string, schema string) error {
	var def Setting
	if err := yaml.Unmarshal([]byte(schema), &def); err != nil {
		return fmt.Errorf("parse schema for %s: %w", key, err)
	}
	if def.Key != "" && !strings.EqualFold(def.Key, key) {
		return fmt.Errorf("schema key %s does not match %s", def.Key, key)
	}
	def.Key = key
	return s.register(def)
}

// RegisterDefaults registers every setting of the embedded display schema.
func (s *Store) RegisterDefaults() error {
	var defs []Setting
	if err := yaml.Unmarshal(defaultSchema, &defs); err != nil {
		return fmt.Errorf("parse default schema: %w", err)
	}
	for _, def := range defs {
		if err := s.register(def); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) register(def Setting) error {
	if err := def.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.ToLower(def.Key)
	if _, exists := s.settings[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, def.Key)
	}
	s.settings[id] = def
	s.order = append(s.order, id)
	s.v.SetDefault(def.Key, def.Default)
	return nil
}

// Lookup returns the definition of key.
func (s *Store) Lookup(key string) (Setting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.settings[strings.ToLower(key)]
	return def, ok
}

// Settings returns all definitions in registration order.
func (s *Store) Settings() []Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Setting, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.settings[id])
	}
	return out
}

// GetBool returns a boolean setting. Unregistered keys read as false.
func (s *Store) GetBool(key string) bool {
	if _, ok := s.Lookup(key); !ok {
		return false
	}
	return s.v.GetBool(key)
}

// GetInt returns a number setting clamped to its range. Unregistered keys read as 0.
func (s *Store) GetInt(key string) int {
	def, ok := s.Lookup(key)
	if !ok {
		return 0
	}
	return def.Clamp(s.v.GetInt(key))
}

// Adjustment is a stored number outside its range, which GetInt reads clamped.
type Adjustment struct {
	Key   string
	Raw   int
	Value int
}

// Adjustments lists the number settings whose configured value is out of range, in
// registration order. Values only reach the store this way through the environment or a
// config file; Set rejects them.
func (s *Store) Adjustments() []Adjustment {
	var out []Adjustment
	for _, def := range s.Settings() {
		if def.Type != TypeNumber {
			continue
		}
		raw := s.v.GetInt(def.Key)
		if n := def.Clamp(raw); n != raw {
			out = append(out, Adjustment{Key: def.Key, Raw: raw, Value: n})
		}
	}
	return out
}

// Requires returns the version constraint declared in the config, or "".
func (s *Store) Requires() string {
	return strings.TrimSpace(s.v.GetString(RequiresKey))
}

// Get returns the typed value of key.
func (s *Store) Get(key string) (any, error) {
	def, ok := s.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if def.Type == TypeBoolean {
		return s.GetBool(key), nil
	}
	return s.GetInt(key), nil
}

// Set parses raw according to the setting type and stores it with the highest precedence.
func (s *Store) Set(key, raw string) error {
	def, ok := s.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	var value any
	switch def.Type {
	case TypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidValue, def.Key, raw)
		}
		value = b
	case TypeNumber:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidValue, def.Key, raw)
		}
		if def.Clamp(n) != n {
			return fmt.Errorf("%w: %s must be within %s", ErrOutOfRange, def.Key, rangeText(def))
		}
		value = n
	}

	s.v.Set(def.Key, value)
	logger.SettingChange(def.Key, value)
	return nil
}

// LoadConfigFile merges values from a YAML, TOML or JSON config file.
func (s *Store) LoadConfigFile(path string) error {
	s.v.SetConfigFile(path)
	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	logger.Debug("Loaded config file", "path", path)
	return nil
}

// LoadDotEnv loads environment files that exist, without overriding variables that are
// already set. Missing files are skipped.
func (s *Store) LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		logger.Debug("Loaded env file", "path", path)
	}
	return nil
}

// DefaultConfigFile returns the user config file, or "" when there is none.
func DefaultConfigFile() string {
	path, err := xdg.SearchConfigFile("hexsh/config.yaml")
	if err != nil {
		return ""
	}
	return path
}

func rangeText(def Setting) string {
	lo, hi := "-inf", "+inf"
	if def.MinValue != nil {
		lo = strconv.Itoa(*def.MinValue)
	}
	if def.MaxValue != nil {
		hi = strconv.Itoa(*def.MaxValue)
	}
	return "[" + lo + ", " + hi + "]"
}
