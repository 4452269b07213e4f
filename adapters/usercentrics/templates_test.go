package usercentrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

func TestTemplateMapResolve(t *testing.T) {
	tests := []struct {
		description string
		overrides   map[string]string
		templateID  string
		want        consent.Key
	}{
		{
			description: "known template resolves to the partner identifier",
			templateID:  "r7rvuoyDz",
			want:        "admob",
		},
		{
			description: "unmapped template falls back to the raw identifier",
			templateID:  "zzz",
			want:        "zzz",
		},
		{
			description: "override adds a new template",
			overrides:   map[string]string{"zzz": "acme_ads"},
			templateID:  "zzz",
			want:        "acme_ads",
		},
		{
			description: "override wins over a built-in default",
			overrides:   map[string]string{"r7rvuoyDz": "admob_eu"},
			templateID:  "r7rvuoyDz",
			want:        "admob_eu",
		},
		{
			description: "overrides extend rather than replace the defaults",
			overrides:   map[string]string{"zzz": "acme_ads"},
			templateID:  "hpb62D82I",
			want:        "unity",
		},
	}

	for _, test := range tests {
		templates := newTemplateMap(test.overrides)
		assert.Equal(t, test.want, templates.Resolve(test.templateID), test.description)
	}
}

func TestTemplateMapDefaultsDoNotLeakOverrides(t *testing.T) {
	first := newTemplateMap(map[string]string{"r7rvuoyDz": "admob_eu"})
	second := newTemplateMap(nil)

	assert.Equal(t, consent.Key("admob_eu"), first.Resolve("r7rvuoyDz"))
	assert.Equal(t, consent.Key("admob"), second.Resolve("r7rvuoyDz"))
}
