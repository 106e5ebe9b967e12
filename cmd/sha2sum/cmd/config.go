package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"sha2sum.org/sha2sum/config"
	apperrors "sha2sum.org/sha2sum/errors"
	"sha2sum.org/sha2sum/logging"
)

const (
	envPrefix         = "sha2sum"
	defaultConfigName = ".sha2sum"
)

// initConfig reads in the JSON config file and ENV variables if set, then
// layers flags on top. Keys mirror the JSON document, e.g. "hash.chunk_size",
// and can be set from the environment as SHA2SUM_HASH_CHUNK_SIZE.
func (o *options) initConfig() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath("./")
		o.v.SetConfigName(defaultConfigName)
		o.v.SetConfigType("json")
	}

	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()

	// If a config file is found, read it in.
	if err := o.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || o.cfgFile != "" {
			return apperrors.New(apperrors.ErrInvalidConfig, errors.Wrap(err, "read config"))
		}
	} else {
		o.usingConfigFile = true
	}

	// Load config to memory.
	cfg := config.DefaultConfig()
	if o.usingConfigFile {
		loaded, err := config.LoadConfig(o.v.ConfigFileUsed())
		if err != nil {
			return apperrors.New(apperrors.ErrInvalidConfig, err)
		}
		cfg = loaded
	}
	o.overlay(cfg)

	if err := config.CheckConfig(cfg); err != nil {
		return apperrors.New(apperrors.ErrInvalidConfig, err)
	}
	o.cfg = cfg
	return nil
}

// overlay copies every key set by a flag or the environment onto cfg.
// Keys from the config file are already in cfg and read back unchanged.
func (o *options) overlay(cfg *config.Config) {
	if cfg.Log == nil {
		cfg.Log = config.DefaultLog()
	}
	if cfg.Hash == nil {
		cfg.Hash = config.DefaultHash()
	}

	v := o.v
	if v.IsSet("log.log_dir") {
		cfg.Log.LogDir = v.GetString("log.log_dir")
	}
	if v.IsSet("log.log_level") {
		cfg.Log.LogLevel = v.GetString("log.log_level")
	}
	if v.IsSet("log.log_age") {
		cfg.Log.LogAge = v.GetUint32("log.log_age")
	}
	if v.IsSet("log.disable_cprint") {
		cfg.Log.DisableCPrint = v.GetBool("log.disable_cprint")
	}
	if v.IsSet("hash.chunk_size") {
		cfg.Hash.ChunkSize = v.GetInt("hash.chunk_size")
	}
	if v.IsSet("hash.workers") {
		cfg.Hash.Workers = v.GetInt("hash.workers")
	}
	if v.IsSet("hash.cache_size") {
		cfg.Hash.CacheSize = v.GetInt("hash.cache_size")
	}
	if v.IsSet("hash.keep_going") {
		cfg.Hash.KeepGoing = v.GetBool("hash.keep_going")
	}
}

// initLogger initializes logging module by config.
func (o *options) initLogger() {
	logging.Init(o.cfg.Log.LogDir, config.DefaultLoggingFilename, o.cfg.Log.LogLevel, o.cfg.Log.LogAge, o.cfg.Log.DisableCPrint)
}

// logBasicInfo logs the basic info on initializing.
func (o *options) logBasicInfo() {
	logging.CPrint(logging.DEBUG, "using config file", logging.LogFormat{
		"file":       o.usingConfigFile,
		"path":       o.v.ConfigFileUsed(),
		"chunk_size": o.cfg.Hash.ChunkSize,
		"workers":    o.cfg.Hash.Workers,
		"keep_going": o.cfg.Hash.KeepGoing,
	})
}
