package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to flag names when reading overrides from the
// environment: --export-dir becomes RIPS_EXPORT_DIR.
const EnvPrefix = "RIPS"

// ApplyEnv sets every flag the user did not pass explicitly from its RIPS_*
// environment variable, when one is present.
func ApplyEnv(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	var errs []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := v.GetString(f.Name)
		if val == f.DefValue {
			return
		}
		if err := fs.Set(f.Name, val); err != nil {
			errs = append(errs, fmt.Sprintf("%s_%s: %v", EnvPrefix, envKey(f.Name), err))
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %s", strings.Join(errs, "; "))
	}
	return nil
}

func envKey(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
