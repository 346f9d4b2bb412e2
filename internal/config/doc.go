// Package config loads keydraft configuration.
//
// A configuration file is TOML or YAML, chosen by extension, and has five
// sections:
//
//	[storage]    backend (file, memory, redis), key, dir, redis_url
//	[logging]    level, file, console, max_size_mb, max_backups, max_age_days, compress
//	[editor]     placeholder
//	[[shortcuts]] trigger, consumed, and one of block or inline
//	[styles.NAME] foreground, background, bold, italic, underline, gutter
//
// Values are resolved in order: built-in defaults, then the file, then
// KEYDRAFT_ environment variables such as KEYDRAFT_STORAGE_BACKEND. The
// result is validated as a whole and every problem is reported at once.
//
// Watch reloads a file when it changes on disk.
package config
