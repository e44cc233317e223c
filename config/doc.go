// Package config assembles the settings of every lstrace component into one structure.
//
// Values are layered: Default supplies the built-in values, an optional YAML file overlays
// them, and environment variables override both. Each component keeps its own Config type
// and tags; this package only groups them:
//
//	logger:
//	  level: info
//	transport:
//	  kind: http
//	  http:
//	    url: https://collector.example.com
//	tracer:
//	  access_token: secret
//	  reporter:
//	    flush_interval: 2s
//
// Environment variables use the leaf names declared by each component, for example
// TRACER_ACCESS_TOKEN, REPORTER_FLUSH_INTERVAL or TRANSPORT_KIND.
//
// Validation is left to the components: Load only reports files and values it cannot parse.
package config
