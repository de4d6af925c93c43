package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "COMPACTGEO"

// Configuration keys. Flags bind to these, so a value can come from a flag,
// a COMPACTGEO_* environment variable or the --config file, in that order.
const (
	keyConfig        = "config"
	keyLogLevel      = "log.level"
	keyLogFile       = "log.file"
	keyLogMaxSize    = "log.max_size_mb"
	keyViewDir       = "view.dir"
	keyViewZoom      = "view.zoom"
	keyEncodeMeasure = "encode.measure"
	keyEncodeFormat  = "encode.format"
	keyDecodeFormat  = "decode.format"
)

func newConfig() *viper.Viper {
	conf := viper.New()
	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	conf.SetDefault(keyLogLevel, "info")
	conf.SetDefault(keyLogMaxSize, 10)
	conf.SetDefault(keyViewZoom, 1.0)
	conf.SetDefault(keyEncodeFormat, "compact")
	conf.SetDefault(keyDecodeFormat, "wkt")
	return conf
}

// readConfigFile loads the --config file, if any. The type follows the
// extension (yaml, toml, json).
func readConfigFile(conf *viper.Viper) error {
	path := conf.GetString(keyConfig)
	if path == "" {
		return nil
	}
	conf.SetConfigFile(path)
	return errors.Wrapf(conf.ReadInConfig(), "reading config %s", path)
}
