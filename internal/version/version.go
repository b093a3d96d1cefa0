// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Desktop window frontend, headless render command with PNG/JSON/table output
// 0.2.0 - GeoJSON land loading with embedded fallback, .env configuration, reload loop
// 0.1.0 - Initial release: terminal globe, draggable camera, pin hover and click
