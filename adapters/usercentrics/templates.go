package usercentrics

import (
	"github.com/golang/glog"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
)

// defaultTemplateIDs maps Usercentrics service template IDs to Chartboost
// partner identifiers. Entries match the templates Usercentrics assigns to
// the mediation partners in its dashboard.
//
// Note "S1_9Vsuj-Q" and "B1NLDuNLZ" both resolve to "google_googlebidding";
// Usercentrics kept the legacy template active after renaming it.
var defaultTemplateIDs = map[string]string{
	"J64M6DKwx":      "adcolony",
	"r7rvuoyDz":      "admob",
	"fHczTMzX8":      "amazon_aps",
	"IUyljv4X":       "applovin",
	"IEbRp3saT":      "chartboost",
	"H17alcVo_iZ7":   "fyber",
	"S1_9Vsuj-Q":     "google_googlebidding",
	"B1NLDuNLZ":      "google_googlebidding",
	"ROCBK21nx":      "hyprmx",
	"ykdo8J7dQ":      "inmobi",
	"9dchbL797":      "ironsource",
	"ax0Nljnj2szF_r": "meta_audience_network",
	"E6AgqirYV":      "mintegral",
	"HWSNU_LI1":      "pangle",
	"B1sLe4N0-X":     "tapjoy",
	"hpb62D82I":      "unity",
	"5bv4OvSwb":      "vungle",
}

// templateMap resolves vendor template IDs to Chartboost partner consent
// keys. Read-only after construction.
type templateMap struct {
	partnerIDs map[string]string
}

// newTemplateMap builds the resolution table from the built-in defaults,
// extended (never replaced) by caller-supplied overrides. An override for a
// known template ID wins over the default.
func newTemplateMap(overrides map[string]string) *templateMap {
	partnerIDs := make(map[string]string, len(defaultTemplateIDs)+len(overrides))
	for templateID, partnerID := range defaultTemplateIDs {
		partnerIDs[templateID] = partnerID
	}
	for templateID, partnerID := range overrides {
		partnerIDs[templateID] = partnerID
	}
	return &templateMap{partnerIDs: partnerIDs}
}

// Resolve returns the consent key for a template ID. Unmapped template IDs
// fall back to the raw template ID so that an unrecognized partner is still
// tracked rather than dropped.
func (t *templateMap) Resolve(templateID string) consent.Key {
	if partnerID, ok := t.partnerIDs[templateID]; ok {
		return consent.Key(partnerID)
	}
	warn := &errortypes.UnmappedTemplate{
		Message: "no partner mapping for usercentrics template " + templateID + ", using the raw identifier",
	}
	glog.Warning(warn.Error())
	return consent.Key(templateID)
}
