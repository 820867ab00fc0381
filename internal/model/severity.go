package model

// SeverityBucket is a named sub-range of a clinical score scale. Events
// declare a target bucket per axis; a group qualifies on an axis when its
// mean score falls inside the bucket's inclusive range for that scale.
type SeverityBucket string

const (
	SeverityAny      SeverityBucket = "any"
	SeverityNormal   SeverityBucket = "normal"
	SeverityMild     SeverityBucket = "mild"
	SeverityModerate SeverityBucket = "moderate"
	SeveritySevere   SeverityBucket = "severe"
)

// severityRange holds an inclusive score range. The upper bound of the
// open-ended buckets depends on the scale maximum, so Range takes it as a
// parameter.
type severityRange struct {
	Min float64
	Max float64
}

// Range returns the inclusive [min,max] for the bucket on a scale with the
// given maximum (27 for PHQ-9, 21 for GAD-7). Unrecognized buckets behave
// like SeverityAny.
func (b SeverityBucket) Range(scaleMax float64) severityRange {
	switch b {
	case SeverityNormal:
		return severityRange{Min: 0, Max: 4}
	case SeverityMild:
		return severityRange{Min: 5, Max: 9}
	case SeverityModerate:
		return severityRange{Min: 10, Max: 14}
	case SeveritySevere:
		return severityRange{Min: 15, Max: scaleMax}
	default:
		return severityRange{Min: 0, Max: scaleMax}
	}
}

// Contains reports whether a score falls inside the bucket's range on the
// given scale.
func (b SeverityBucket) Contains(score, scaleMax float64) bool {
	r := b.Range(scaleMax)
	return score >= r.Min && score <= r.Max
}

// ValidSeverity reports whether the bucket name is one of the known buckets.
func ValidSeverity(b SeverityBucket) bool {
	switch b {
	case SeverityAny, SeverityNormal, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}
