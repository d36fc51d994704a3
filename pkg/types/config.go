// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ComputeConfig holds defaults for the compute stage.
type ComputeConfig struct {
	// Methods are the filter methods applied when none are requested
	// explicitly (default: the variance filter).
	Methods []string `json:"methods" yaml:"methods"`

	// NSelect is the number of features scoring methods are asked for.
	// Zero means all task features.
	NSelect int `json:"n_select" yaml:"n_select"`
}

// ReportConfig holds defaults for report rendering.
type ReportConfig struct {
	// Sort orders rows within each method facet (default descending).
	Sort SortOrder `json:"sort" yaml:"sort"`

	// NShow caps the number of rows per method facet (default 20).
	NShow int `json:"n_show" yaml:"n_show"`

	// ColorByType adds a per-row feature-kind grouping attribute for the
	// rendering backend. Presentation only.
	ColorByType bool `json:"color_by_type" yaml:"color_by_type"`
}

// StoreConfig holds settings for the result store.
type StoreConfig struct {
	// Dir is the directory holding filter.db (default ".filter-engine").
	Dir string `json:"dir" yaml:"dir"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Compute ComputeConfig `json:"compute" yaml:"compute"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
