// Package config loads the application configuration from an optional YAML
// file layered under INDEXCALC_-prefixed environment variables.
//
// Configuration covers logging, the provider table locations, the computation
// date range and frequency, and the calibration scale factors applied to the
// cumulative approximation series. The calibration factors are historical
// fitting artifacts; they are deliberately configuration values rather than
// constants so research runs can override them.
package config
