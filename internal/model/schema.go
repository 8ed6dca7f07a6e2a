package model

// Feature identifies one column of the feature vector.
// The numeric value is the column position in the canonical schema.
type Feature int

// Canonical feature order. Consumers such as trained models identify
// columns by position, so this order must never change.
const (
	URLLength Feature = iota
	URLNumSpecialChars
	URLRatioDigitLetter
	DomainLevel
	DomainContainsIP
	DomainLength
	DomainNumDigits
	DomainNumNonLetter
	DomainNumHyphen
	DomainNumAt
	DomainTop
	SubNumDots
	SubNumSubdomains
	PathNumSlash
	PathNumSubdirectories
	PathPresence
	PathPresenceUpperDirectories
	PathPresenceSingleDirectories
	PathNumSpecialChars
	PathNumZeros
	PathRatioUpperLower
	ParamQueryLength
	QueryNumParams

	// NumFeatures is the length of a FeatureVector.
	NumFeatures = int(iota)
)

// unknownStr is the name reported for an out-of-range Feature.
const unknownStr = "unknown"

// LabelColumn is the trailing class-label column of a feature table.
const LabelColumn = "phishing"

// DefaultLabel is the label written when the true class is unknown.
const DefaultLabel = 0.0

// featureNames holds the column names in canonical order.
var featureNames = [NumFeatures]string{
	"url_length",
	"url_num_special_chars",
	"url_ratio_digit_letter",
	"domain_level",
	"domain_contains_ip",
	"domain_length",
	"domain_num_digits",
	"domain_num_nonletter",
	"domain_num_hyphen",
	"domain_num_at",
	"domain_top",
	"sub_num_dots",
	"sub_num_subdomains",
	"path_num_slash",
	"path_num_subdirectories",
	"path_presence",
	"path_presence_upper_directories",
	"path_presence_single_directories",
	"path_num_special_chars",
	"path_num_zeros",
	"path_ratio_upper_lower",
	"param_query_length",
	"query_num_params",
}

// featureIndex maps a column name to its position.
var featureIndex = func() map[string]Feature {
	m := make(map[string]Feature, NumFeatures)
	for i, name := range featureNames {
		m[name] = Feature(i)
	}
	return m
}()

// String returns the column name of the feature.
func (f Feature) String() string {
	if !f.Valid() {
		return unknownStr
	}
	return featureNames[f]
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool {
	return f >= 0 && int(f) < NumFeatures
}

// LookupFeature returns the feature with the given column name.
func LookupFeature(name string) (Feature, bool) {
	f, ok := featureIndex[name]
	return f, ok
}

// FeatureNames returns the 23 feature column names in canonical order.
// The returned slice is a copy and may be modified by the caller.
func FeatureNames() []string {
	names := make([]string, NumFeatures)
	copy(names, featureNames[:])
	return names
}

// Columns returns the full table header: the feature names followed by
// the label column.
func Columns() []string {
	return append(FeatureNames(), LabelColumn)
}
