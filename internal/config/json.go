package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
	"github.com/dmitrijs2005/blogkeeper/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent keys keep the value
// already in Config.
type JsonConfig struct {
	Driver             *string         `json:"driver"`
	DatabaseDSN        *string         `json:"database_dsn"`
	MaxOpenConns       *int            `json:"max_open_conns"`
	ConnMaxLifetime    *timex.Duration `json:"conn_max_lifetime"`
	LogBackend         *string         `json:"log_backend"`
	LogLevel           *string         `json:"log_level"`
	AssociationPolicy  *string         `json:"association_policy"`
	WriterDeletePolicy *string         `json:"writer_delete_policy"`
	PostDeletePolicy   *string         `json:"post_delete_policy"`
	LabelDeletePolicy  *string         `json:"label_delete_policy"`
}

// parseJson overlays the JSON file named by -c or -config onto config. It
// panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set(&config.Driver, c.Driver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.MaxOpenConns, c.MaxOpenConns)
	if c.ConnMaxLifetime != nil {
		config.ConnMaxLifetime = c.ConnMaxLifetime.Duration
	}
	set(&config.LogBackend, c.LogBackend)
	set(&config.LogLevel, c.LogLevel)
	set(&config.AssociationPolicy, c.AssociationPolicy)
	set(&config.WriterDeletePolicy, c.WriterDeletePolicy)
	set(&config.PostDeletePolicy, c.PostDeletePolicy)
	set(&config.LabelDeletePolicy, c.LabelDeletePolicy)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
