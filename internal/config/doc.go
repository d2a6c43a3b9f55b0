// Package config holds the runtime configuration for websearch.
//
// Configuration flows in one direction: CLI flags populate a Config,
// Validate rejects anything unusable before the first network request,
// and the validated struct is passed down via dependency injection.
// There is no global configuration state.
//
// A YAML file (.websearch) can additionally provide per-host overrides
// such as custom headers or a different crawl depth. See File and
// SiteConfig.
package config
