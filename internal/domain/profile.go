package domain

import "time"

// Language selects the UI and weather-description language.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
)

// ParseLanguage maps a stored value to a known language, defaulting to Russian.
func ParseLanguage(s string) Language {
	if Language(s) == LangEN {
		return LangEN
	}
	return LangRU
}

// PressureUnit selects how atmospheric pressure is displayed.
type PressureUnit string

const (
	PressureMmHg PressureUnit = "mmhg"
	PressureHPa  PressureUnit = "hpa"
)

// ParsePressureUnit maps a stored value to a known unit, defaulting to mmHg.
func ParsePressureUnit(s string) PressureUnit {
	if PressureUnit(s) == PressureHPa {
		return PressureHPa
	}
	return PressureMmHg
}

// Feature is an optional block of the weather report.
type Feature string

const (
	FeatureCloudiness    Feature = "cloudiness"
	FeatureWindDirection Feature = "wind_direction"
	FeatureWindGust      Feature = "wind_gust"
	FeatureSunriseSunset Feature = "sunrise_sunset"
)

// AllFeatures lists every known feature in display order.
func AllFeatures() []Feature {
	return []Feature{FeatureCloudiness, FeatureWindDirection, FeatureWindGust, FeatureSunriseSunset}
}

// KnownFeature reports whether f is one of the supported features.
func KnownFeature(f Feature) bool {
	for _, k := range AllFeatures() {
		if k == f {
			return true
		}
	}
	return false
}

// FeatureSet holds the features a user has enabled. A nil set means all off.
type FeatureSet map[Feature]bool

func (fs FeatureSet) Enabled(f Feature) bool { return fs[f] }

func (fs FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(fs))
	for f, on := range fs {
		out[f] = on
	}
	return out
}

// Defaults for a freshly created profile.
const (
	DefaultRegion   = "Moscow"
	DefaultTimezone = "UTC+0"
)

// Profile is the per-user settings row. Profiles are created lazily on first
// access and never deleted.
type Profile struct {
	UserID    int64
	Language  Language
	Region    string
	Timezone  string
	Pressure  PressureUnit
	Features  FeatureSet
	CreatedAt time.Time
}

// DefaultProfile returns the settings a new user starts with.
func DefaultProfile(userID int64) *Profile {
	return &Profile{
		UserID:   userID,
		Language: LangRU,
		Region:   DefaultRegion,
		Timezone: DefaultTimezone,
		Pressure: PressureMmHg,
		Features: FeatureSet{},
	}
}
