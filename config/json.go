package config

import (
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
)

// NewFromJSON maps a raw JSON settings payload onto Options. Unrecognized
// fields are ignored; recognized fields with the wrong JSON type fail.
func NewFromJSON(payload []byte) (*Options, error) {
	o := Options{CoreDPSName: DefaultCoreDPSName}
	o.Usercentrics.DefaultLanguage = "en"
	o.Usercentrics.LoggerLevel = "none"

	if err := readString(payload, &o.CoreDPSName, "coreDpsName"); err != nil {
		return nil, err
	}
	if err := readString(payload, &o.Usercentrics.SettingsID, "options", "settingsId"); err != nil {
		return nil, err
	}
	if err := readString(payload, &o.Usercentrics.DefaultLanguage, "options", "defaultLanguage"); err != nil {
		return nil, err
	}
	if err := readString(payload, &o.Usercentrics.Version, "options", "version"); err != nil {
		return nil, err
	}
	if err := readInt(payload, &o.Usercentrics.TimeoutMillis, "options", "timeoutMillis"); err != nil {
		return nil, err
	}
	if err := readString(payload, &o.Usercentrics.LoggerLevel, "options", "loggerLevel"); err != nil {
		return nil, err
	}
	if err := readString(payload, &o.Usercentrics.RuleSetID, "options", "ruleSetId"); err != nil {
		return nil, err
	}
	if err := readBool(payload, &o.Usercentrics.ConsentMediation, "options", "consentMediation"); err != nil {
		return nil, err
	}

	partnerIDs, err := readPartnerIDMap(payload)
	if err != nil {
		return nil, err
	}
	o.PartnerIDMap = partnerIDs

	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func readString(payload []byte, dst *string, keys ...string) error {
	value, err := jsonparser.GetString(payload, keys...)
	if err == jsonparser.KeyPathNotFoundError {
		return nil
	}
	if err != nil {
		return malformedField(err, keys)
	}
	*dst = value
	return nil
}

func readInt(payload []byte, dst *int64, keys ...string) error {
	value, err := jsonparser.GetInt(payload, keys...)
	if err == jsonparser.KeyPathNotFoundError {
		return nil
	}
	if err != nil {
		return malformedField(err, keys)
	}
	*dst = value
	return nil
}

func readBool(payload []byte, dst *bool, keys ...string) error {
	value, err := jsonparser.GetBoolean(payload, keys...)
	if err == jsonparser.KeyPathNotFoundError {
		return nil
	}
	if err != nil {
		return malformedField(err, keys)
	}
	*dst = value
	return nil
}

func readPartnerIDMap(payload []byte) (map[string]string, error) {
	raw, dataType, _, err := jsonparser.Get(payload, "partnerIdMap")
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, malformedField(err, []string{"partnerIdMap"})
	}

	partnerIDs := map[string]string{}
	err = jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		if dataType != jsonparser.String {
			return fmt.Errorf("partnerIdMap.%s must be a string", string(key))
		}
		partnerIDs[string(key)] = string(value)
		return nil
	})
	if err != nil {
		return nil, &errortypes.MalformedOptions{Message: err.Error()}
	}
	return partnerIDs, nil
}

func malformedField(err error, keys []string) error {
	path := keys[0]
	for _, key := range keys[1:] {
		path = path + "." + key
	}
	return &errortypes.MalformedOptions{
		Message: fmt.Sprintf("error reading %s: %v", path, err),
	}
}
