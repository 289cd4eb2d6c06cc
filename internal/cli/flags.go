package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds config keys to the flags named in keys. A flag only
// overrides file and environment values when it is set explicitly.
func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if f := lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
