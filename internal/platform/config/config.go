package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/Aquid0/Prompt-Heatmap/internal/platform/datekey"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
)

const (
	DataDirName   = ".prompt-heatmap"
	EnvPrefix     = "PROMPT_HEATMAP_"
	maxConfigSize = 1024 * 1024
)

// LegacyPluginData is where the editor plugin kept its settings, relative to the vault.
var LegacyPluginData = filepath.Join(".obsidian", "plugins", "prompt-heatmap", "data.json")

const defaults = `
checklist_path: Prompts/Prompts.md
record_folder_path: Answers/
date_key_format: en-GB
answered_counter_field: promptsAnswered
log:
  level: warn
  format: console
`

var legacyKeys = map[string]string{
	"promptsPath":     "checklist_path",
	"destinationPath": "record_folder_path",
	"dateFormat":      "date_key_format",
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

type Config struct {
	VaultPath  string `koanf:"-" yaml:"vault_path"`
	ConfigFile string `koanf:"-" yaml:"config_file,omitempty"`
	DataDir    string `koanf:"-" yaml:"-"`
	DBPath     string `koanf:"-" yaml:"db_path"`
	LockPath   string `koanf:"-" yaml:"-"`

	ChecklistPath        string         `koanf:"checklist_path" yaml:"checklist_path"`
	RecordFolderPath     string         `koanf:"record_folder_path" yaml:"record_folder_path"`
	DateKeyFormat        string         `koanf:"date_key_format" yaml:"date_key_format"`
	AnsweredCounterField string         `koanf:"answered_counter_field" yaml:"answered_counter_field"`
	Log                  logging.Config `koanf:"log" yaml:"log"`
}

// Options steer Load. Overrides are koanf keys ("checklist_path") set from
// command-line flags and win over every other source.
type Options struct {
	VaultPath  string
	ConfigFile string
	Overrides  map[string]string
	Environ    []string
}

func New(vaultPath string) (Config, error) {
	return Load(Options{VaultPath: vaultPath})
}

// Load merges, lowest precedence first: defaults, the legacy plugin data.json,
// the YAML config file, PROMPT_HEATMAP_* environment variables, overrides.
func Load(opts Options) (Config, error) {
	if opts.VaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := loadLegacy(k, filepath.Join(opts.VaultPath, LegacyPluginData)); err != nil {
		return Config{}, err
	}

	configFile := opts.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(opts.VaultPath, DataDirName, "config.yaml")
	}
	content, err := readBounded(configFile)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err) && !explicit:
		configFile = ""
	default:
		return Config{}, err
	}

	if err := k.Load(envProvider(opts.Environ), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	for key, value := range opts.Overrides {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("apply override %s: %w", key, err)
		}
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.VaultPath = opts.VaultPath
	cfg.ConfigFile = configFile
	cfg.DataDir = filepath.Join(opts.VaultPath, DataDirName)
	cfg.DBPath = filepath.Join(cfg.DataDir, "index.db")
	cfg.LockPath = filepath.Join(cfg.DataDir, "run.lock")
	cfg.ChecklistPath = vault.NormalizePath(cfg.ChecklistPath)
	cfg.RecordFolderPath = vault.NormalizePath(cfg.RecordFolderPath)
	cfg.AnsweredCounterField = strings.TrimSpace(cfg.AnsweredCounterField)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ChecklistPath == "" {
		return fmt.Errorf("checklist_path is required")
	}
	if c.RecordFolderPath == "" {
		return fmt.Errorf("record_folder_path is required")
	}
	if !fieldName.MatchString(c.AnsweredCounterField) {
		return fmt.Errorf("answered_counter_field %q is not a plain frontmatter key", c.AnsweredCounterField)
	}
	if _, err := datekey.Compile(c.DateKeyFormat); err != nil {
		return err
	}
	return c.Log.Validate()
}

// DateKey returns the compiled date key format. Validate has already vetted it.
func (c Config) DateKey() datekey.Format {
	f, err := datekey.Compile(c.DateKeyFormat)
	if err != nil {
		return datekey.MustCompile(datekey.Default)
	}
	return f
}

func loadLegacy(k *koanf.Koanf, path string) error {
	content, err := readBounded(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	// data.json is JSON, which the YAML parser reads as well.
	legacy, err := yaml.Parser().Unmarshal(content)
	if err != nil {
		return fmt.Errorf("parse legacy plugin settings %s: %w", path, err)
	}
	for from, to := range legacyKeys {
		value, ok := legacy[from].(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := k.Set(to, value); err != nil {
			return fmt.Errorf("apply legacy setting %s: %w", from, err)
		}
	}
	return nil
}

func envProvider(environ []string) koanf.Provider {
	transform := func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if rest, ok := strings.CutPrefix(key, "log_"); ok {
			return "log." + rest
		}
		return key
	}
	if environ == nil {
		return env.Provider(EnvPrefix, ".", transform)
	}
	// An explicit environment (tests, embedding callers) goes through the
	// same key mapping.
	values := map[string]any{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		values[transform(name)] = value
	}
	return confmap.Provider(values, ".")
}

func readBounded(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxConfigSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
