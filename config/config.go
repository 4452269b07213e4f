package config

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/spf13/viper"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
)

// DefaultCoreDPSName is the data processing service name under which the
// Chartboost Core SDK itself appears in the Usercentrics dashboard.
const DefaultCoreDPSName = "ChartboostCore"

// Options is the typed form of the adapter's loosely-typed settings payload.
type Options struct {
	// CoreDPSName overrides the DPS name used for Chartboost Core.
	CoreDPSName string `mapstructure:"coreDpsName"`
	// Usercentrics is passed through opaquely to the vendor SDK.
	Usercentrics UsercentricsOptions `mapstructure:"options"`
	// PartnerIDMap extends the built-in template-ID defaults. Entries here
	// win over defaults with the same template ID.
	PartnerIDMap map[string]string `mapstructure:"partnerIdMap"`
}

// UsercentricsOptions mirrors the vendor SDK's initialization options.
type UsercentricsOptions struct {
	SettingsID       string `mapstructure:"settingsId"`
	DefaultLanguage  string `mapstructure:"defaultLanguage"`
	Version          string `mapstructure:"version"`
	TimeoutMillis    int64  `mapstructure:"timeoutMillis"`
	LoggerLevel      string `mapstructure:"loggerLevel"`
	RuleSetID        string `mapstructure:"ruleSetId"`
	ConsentMediation bool   `mapstructure:"consentMediation"`
}

// New uses viper to map a loosely-typed settings object onto Options.
func New(settings map[string]interface{}) (*Options, error) {
	v := viper.New()
	setupDefaults(v)
	if err := v.MergeConfigMap(settings); err != nil {
		return nil, &errortypes.MalformedOptions{Message: err.Error()}
	}

	var o Options
	if err := v.Unmarshal(&o); err != nil {
		return nil, &errortypes.MalformedOptions{Message: err.Error()}
	}

	// viper lowercases nested map keys, but template IDs are case-sensitive
	// data, so the partner map is read from the original settings instead.
	partnerIDs, err := partnerIDMap(settings)
	if err != nil {
		return nil, err
	}
	o.PartnerIDMap = partnerIDs

	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func partnerIDMap(settings map[string]interface{}) (map[string]string, error) {
	var raw interface{}
	for key, value := range settings {
		if strings.EqualFold(key, "partnerIdMap") {
			raw = value
			break
		}
	}
	if raw == nil {
		return nil, nil
	}

	switch entries := raw.(type) {
	case map[string]string:
		partnerIDs := make(map[string]string, len(entries))
		for templateID, partnerID := range entries {
			partnerIDs[templateID] = partnerID
		}
		return partnerIDs, nil
	case map[string]interface{}:
		partnerIDs := make(map[string]string, len(entries))
		for templateID, value := range entries {
			partnerID, ok := value.(string)
			if !ok {
				return nil, &errortypes.MalformedOptions{
					Message: fmt.Sprintf("partnerIdMap.%s must be a string", templateID),
				}
			}
			partnerIDs[templateID] = partnerID
		}
		return partnerIDs, nil
	}
	return nil, &errortypes.MalformedOptions{Message: "partnerIdMap must be an object of strings"}
}

func setupDefaults(v *viper.Viper) {
	v.SetDefault("coreDpsName", DefaultCoreDPSName)
	v.SetDefault("options.defaultLanguage", "en")
	v.SetDefault("options.loggerLevel", "none")
}

func (o *Options) validate() error {
	if o.CoreDPSName == "" {
		return &errortypes.MalformedOptions{Message: "coreDpsName must not be empty"}
	}
	if o.Usercentrics.SettingsID == "" && o.Usercentrics.RuleSetID == "" {
		return &errortypes.MalformedOptions{Message: "one of options.settingsId or options.ruleSetId is required"}
	}
	if o.Usercentrics.TimeoutMillis < 0 {
		return &errortypes.MalformedOptions{Message: "options.timeoutMillis must not be negative"}
	}
	if err := validateLoggerLevel(o.Usercentrics.LoggerLevel); err != nil {
		return err
	}
	if ver := o.Usercentrics.Version; ver != "" {
		if _, err := semver.Parse(ver); err != nil {
			return &errortypes.MalformedOptions{
				Message: fmt.Sprintf("options.version %q is not a valid semantic version: %v", ver, err),
			}
		}
	}
	return nil
}

func validateLoggerLevel(level string) error {
	switch strings.ToLower(level) {
	case "", "none", "error", "warning", "debug":
		return nil
	}
	return &errortypes.MalformedOptions{
		Message: fmt.Sprintf("options.loggerLevel %q is not one of none, error, warning, debug", level),
	}
}
