package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "pypredefs")

	v.SetDefault("namespaces.names", []string{})
	v.SetDefault("namespaces.list_file", "")

	v.SetDefault("docs.strip_class_docs", []string{})

	v.SetDefault("go.packages", []string{})

	v.SetDefault("log.json", false)
}
