// Package config resolves the settings for one projector invocation and
// parses its positional arguments into a Request.
//
// Settings are layered with koanf. Priority (highest to lowest):
//
//  1. Command-line flags that were explicitly set
//  2. Environment variables (PROJECTOR_CONFIG, PROJECTOR_PWD, ...)
//  3. Settings file (<UserConfigDir>/projector/settings.yaml)
//  4. Default values
//
// The settings file configures projector itself. The data projector manages
// lives in the backing file named by the "config" setting.
package config
