// Package config loads the launchdash configuration from config.yaml.
//
// Config fields:
//   - Server.HTTPPort        — port for the UI, REST API, WebSocket hub and /metrics (default 8050)
//   - Server.UIDir           — serve the UI from a directory instead of the embedded page
//   - Server.Auth.Mode       — "apikey" or "none"
//   - Server.Auth.KeyEnv     — environment variable holding the expected API key
//   - Server.Auth.Header     — HTTP header name (default "x-api-key")
//   - Data.Path              — launch CSV (default spacex_launch_dash.csv)
//   - Data.Watch             — reload the dataset when the file changes (default false)
//   - Data.Columns.*         — CSV header overrides
//   - Dashboard.Title        — page heading
//   - Dashboard.Slider.*     — payload slider min/max/step/marks (default 0/10000/1000/[2500 5000 7500])
//   - Dashboard.Chart.*      — rendered chart size (default 800x500)
//
// Load(path) applies defaults before unmarshalling, then validates.
// Default() returns the same defaults when no file is given.
package config
