// Package config loads tidepool settings from ~/.config/tidepool/config.toml.
//
// Three fields are recognized: api_url (the relay instance base URL),
// api_key (optional credential) and output_dir (where saved media lands).
// A .env file and the TIDEPOOL_API_URL, TIDEPOOL_API_KEY and
// TIDEPOOL_OUTPUT_DIR environment variables override the file, which keeps
// credentials out of dotfiles when preferred.
//
// A missing config file is not an error; unparseable TOML is.
package config
