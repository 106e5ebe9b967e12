package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"sha2sum.org/sha2sum/logging"
)

const (
	DefaultAppName         = "sha2sum"
	DefaultConfigFilename  = ".sha2sum.json"
	DefaultLoggingFilename = "sha2sum"
	DefaultLogLevel        = "info"
	defaultLogDirname      = "logs"

	// LogDirDefault as LogDir selects DefaultLogDir.
	LogDirDefault = "default"

	// DefaultChunkSize matches one SHA-256 block per read.
	DefaultChunkSize = 64
	MaxChunkSize     = 1 << 20
)

type Config struct {
	Log  *Log  `json:"log"`
	Hash *Hash `json:"hash"`
}

// Log configures the logging package. An empty LogDir logs to the console only,
// LogDirDefault logs under the application data directory.
type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	LogAge        uint32 `json:"log_age"`
	DisableCPrint bool   `json:"disable_cprint"`
}

// Hash configures how sources are read and scheduled.
type Hash struct {
	ChunkSize int  `json:"chunk_size"`
	Workers   int  `json:"workers"`
	CacheSize int  `json:"cache_size"`
	KeepGoing bool `json:"keep_going"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:  DefaultLog(),
		Hash: DefaultHash(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        "",
		LogLevel:      DefaultLogLevel,
		LogAge:        1,
		DisableCPrint: false,
	}
}

func DefaultHash() *Hash {
	return &Hash{
		ChunkSize: DefaultChunkSize,
		Workers:   runtime.NumCPU(),
		CacheSize: 128,
		KeepGoing: false,
	}
}

// DefaultLogDir is where the CLI keeps log files when asked to log to disk.
func DefaultLogDir() string {
	return filepath.Join(AppDataDir(DefaultAppName, false), defaultLogDirname)
}

func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", filename)
	}
	cfg := DefaultConfig()
	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", filename)
	}
	return cfg, nil
}

// CheckConfig fills missing sections with defaults and validates values.
func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}

	if cfg.Hash == nil {
		cfg.Hash = DefaultHash()
	}

	// Checks for log
	if cfg.Log.LogDir == LogDirDefault {
		cfg.Log.LogDir = DefaultLogDir()
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = DefaultLogLevel
	}
	if !logging.ValidLevel(cfg.Log.LogLevel) {
		return fmt.Errorf("invalid log level %q", cfg.Log.LogLevel)
	}

	// Checks for hash
	if cfg.Hash.ChunkSize <= 0 || cfg.Hash.ChunkSize > MaxChunkSize {
		return fmt.Errorf("invalid chunk size %d, must be in [1, %d]", cfg.Hash.ChunkSize, MaxChunkSize)
	}
	if cfg.Hash.Workers < 0 {
		return fmt.Errorf("invalid workers %d", cfg.Hash.Workers)
	}
	if cfg.Hash.Workers == 0 {
		cfg.Hash.Workers = runtime.NumCPU()
	}
	if cfg.Hash.CacheSize < 0 {
		return fmt.Errorf("invalid cache size %d", cfg.Hash.CacheSize)
	}

	return nil
}
