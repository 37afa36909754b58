package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// DefaultPantryPort is the port the pantry server listens on unless
	// overridden in config.
	DefaultPantryPort = 9192

	defaultShoppingListID = 1
	defaultSyncInterval   = 5 * time.Minute
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Pantry is the remote pantry server this service mirrors.
	Pantry PantryConfig `json:"pantry" yaml:"pantry"`

	// Store configures the online grocery store used for barcode lookup
	// and cart sync.
	Store *StoreConfig `json:"store" yaml:"store"`

	// Platform configures the host automation platform callbacks. When nil
	// the service logs state changes instead of publishing them.
	Platform *PlatformConfig `json:"platform" yaml:"platform"`

	// Sync configures the background refresh loop.
	Sync SyncConfig `json:"sync" yaml:"sync"`

	// Seed declares remote objects created during sync when missing, for
	// bootstrapping a fresh pantry server.
	Seed *SeedConfig `json:"seed" yaml:"seed"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PantryConfig defines the connection to the pantry REST API.
type PantryConfig struct {
	URL  string `json:"url" yaml:"url"`
	Port int    `json:"port" yaml:"port"`
	// APIKey is sent as the GROCY-API-KEY header. The literal value
	// "demo_mode" suppresses the header entirely.
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// DefaultShoppingListID is used when a command omits the list id.
	DefaultShoppingListID int `json:"defaultShoppingListId" yaml:"defaultShoppingListId"`
}

// StoreConfig defines the online store vendor and credentials.
type StoreConfig struct {
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	// RatePerSecond throttles catalog search requests. Zero disables
	// throttling.
	RatePerSecond float64       `json:"ratePerSecond" yaml:"ratePerSecond"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
}

// PlatformConfig defines the host platform webhook endpoints.
type PlatformConfig struct {
	// StateURL receives entity state documents on every re-render.
	StateURL string `json:"stateUrl" yaml:"stateUrl"`
	// RemoveURL receives entity removal notices.
	RemoveURL string `json:"removeUrl" yaml:"removeUrl"`
	// EventURL receives domain events.
	EventURL string        `json:"eventUrl" yaml:"eventUrl"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// SeedConfig maps object names to the remote ids they should be created
// under. Only objects whose id is absent from the server are created.
type SeedConfig struct {
	ProductGroups map[string]int `json:"productGroups" yaml:"productGroups"`
	Locations     map[string]int `json:"locations" yaml:"locations"`
	QuantityUnits map[string]int `json:"quantityUnits" yaml:"quantityUnits"`
	ShoppingLists map[string]int `json:"shoppingLists" yaml:"shoppingLists"`
}

// SyncConfig defines the periodic refresh behavior.
type SyncConfig struct {
	// Interval between background refresh passes. Zero keeps the default.
	Interval time.Duration `json:"interval" yaml:"interval"`
	// IncludeUserfields pulls per-product userfields on product refresh.
	IncludeUserfields bool `json:"includeUserfields" yaml:"includeUserfields"`
	// ResolvePrices re-resolves product prices from the store during sync.
	ResolvePrices bool `json:"resolvePrices" yaml:"resolvePrices"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: PANTRY_APIKEY -> pantry.apiKey (not pantry.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Pantry.Port == 0 {
		cfg.Pantry.Port = DefaultPantryPort
	}
	if cfg.Pantry.DefaultShoppingListID == 0 {
		cfg.Pantry.DefaultShoppingListID = defaultShoppingListID
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = defaultSyncInterval
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
