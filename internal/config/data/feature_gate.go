package data

// FeatureGates controls optional features
type FeatureGates struct {
	// BulkDelete allows deleting every selected row at once.
	BulkDelete bool `yaml:"bulkDelete"`

	// S3Export routes exports to the configured S3 bucket.
	S3Export bool `yaml:"s3Export"`
}

// NewFeatureGates creates FeatureGates with default settings (all disabled)
func NewFeatureGates() FeatureGates {
	return FeatureGates{}
}

// Merge overlays another FeatureGates on top of this one
// Only enabled features in other will be applied
func (f *FeatureGates) Merge(other FeatureGates) {
	if other.BulkDelete {
		f.BulkDelete = true
	}
	if other.S3Export {
		f.S3Export = true
	}
}
