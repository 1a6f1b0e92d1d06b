package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// ErrUnavailable means the settings file exists but could not be read
var ErrUnavailable = errors.New("settings unavailable")

// Store reads the ignore policy from a YAML, TOML or JSON file.
// It keeps no state between loads.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store for the file at path
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		logger: logger.Named("settings"),
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the policy. A missing file yields DefaultPolicy. A file that
// cannot be read returns ErrUnavailable. Syntax errors and wrongly typed
// fields fall back to defaults with a warning.
func (s *Store) Load(ctx context.Context) (Policy, error) {
	if err := ctx.Err(); err != nil {
		return Policy{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No settings file, using defaults", zap.String("path", s.path))
			return DefaultPolicy(), nil
		}
		return Policy{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.path, err)
	}

	raw, err := decode(s.path, data)
	if err != nil {
		s.logger.Warn("Invalid settings file, using defaults",
			zap.String("path", s.path),
			zap.Error(err))
		return DefaultPolicy(), nil
	}

	return s.fromMap(raw), nil
}

// decode parses data according to the file extension
func decode(path string, data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = sonic.Unmarshal(data, &raw)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported settings format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// fromMap applies each recognised field over the defaults
func (s *Store) fromMap(raw map[string]interface{}) Policy {
	policy := DefaultPolicy()

	if v, ok := lookup(raw, "enabled"); ok {
		if b, ok := v.(bool); ok {
			policy.Enabled = b
		} else {
			s.malformed("enabled", v)
		}
	}

	if v, ok := lookup(raw, "ignoreExitCodes", "ignore_exit_codes"); ok {
		if codes, ok := toIntSlice(v); ok {
			policy.IgnoreExitCodes = codes
		} else {
			s.malformed("ignoreExitCodes", v)
		}
	}

	if v, ok := lookup(raw, "ignoreCommands", "ignore_commands"); ok {
		if commands, ok := toStringSlice(v); ok {
			policy.IgnoreCommands = commands
		} else {
			s.malformed("ignoreCommands", v)
		}
	}

	if v, ok := lookup(raw, "ignoreCommandPatterns", "ignore_command_patterns"); ok {
		if patterns, ok := toStringSlice(v); ok {
			policy.IgnoreCommandPatterns = s.validPatterns(patterns)
		} else {
			s.malformed("ignoreCommandPatterns", v)
		}
	}

	return policy
}

func (s *Store) validPatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			s.logger.Warn("Dropping invalid command pattern", zap.String("pattern", p))
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

func (s *Store) malformed(field string, value interface{}) {
	s.logger.Warn("Malformed setting, using default",
		zap.String("path", s.path),
		zap.String("field", field),
		zap.String("type", fmt.Sprintf("%T", value)))
}

func lookup(raw map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func toIntSlice(v interface{}) ([]int, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := toInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
