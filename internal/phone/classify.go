package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the numbering plan numbers are validated against.
const DefaultRegion = "SY"

// LineType tells mobile numbers apart from everything else.
type LineType string

const (
	LineTypeMobile   LineType = "mobile"
	LineTypeLandline LineType = "landline"
)

// Reason explains why a number was rejected.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonUnparseable Reason = "unparseable"
	ReasonWrongRegion Reason = "wrong_region"
)

// Classification is the outcome of validating a canonical number. Rejections
// are ordinary values, not errors.
type Classification struct {
	Valid    bool
	LineType LineType
	Reason   Reason
	Region   string
}

// Rejected reports whether the number failed validation for the given reason.
func (c Classification) Rejected(reason Reason) bool {
	return !c.Valid && c.Reason == reason
}

// Classifier validates numbers against a single region's numbering plan.
type Classifier struct {
	region string
}

// NewClassifier returns a classifier scoped to region (ISO 3166 code).
func NewClassifier(region string) *Classifier {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &Classifier{region: region}
}

// Region returns the region the classifier accepts.
func (c *Classifier) Region() string {
	return c.region
}

// Classify parses normalized and reports whether it is a valid number of the
// classifier's region, and if so whether it is a mobile line.
func (c *Classifier) Classify(normalized string) Classification {
	num, err := phonenumbers.Parse(normalized, c.region)
	if err != nil {
		return Classification{Reason: ReasonUnparseable}
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if !phonenumbers.IsValidNumber(num) || region != c.region {
		return Classification{Reason: ReasonWrongRegion, Region: region}
	}
	lineType := LineTypeLandline
	if phonenumbers.GetNumberType(num) == phonenumbers.MOBILE {
		lineType = LineTypeMobile
	}
	return Classification{Valid: true, LineType: lineType, Region: region}
}

// NewNormalizerForRegion builds a normalizer using the calling code of region.
// Unknown regions fall back to the Syrian prefix.
func NewNormalizerForRegion(region string) *Normalizer {
	code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(strings.TrimSpace(region)))
	if code == 0 {
		return NewNormalizer(CountryPrefix)
	}
	return NewNormalizer("+" + strconv.Itoa(code))
}
