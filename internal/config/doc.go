// Package config loads touchstone's configuration.
//
// Settings are resolved in three layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. Environment variables prefixed with TOUCHSTONE_
//
// Environment variables name a section and a setting:
// TOUCHSTONE_GESTURE_PAN_THRESHOLD=8 sets gesture.pan_threshold. A few
// shorthands exist: TOUCHSTONE_DEBUG, TOUCHSTONE_SCRIPT and
// TOUCHSTONE_STRICT.
//
// # File Format
//
//	[input]
//	swap_buttons = false
//	repeat_trigger_ms = 250
//	repeat_delay_ms = 100
//
//	[gesture]
//	pan_threshold = 6.0
//	history_limit = 5
//	deceleration = 3000.0
//	min_fps = 1.0
//	min_fling_ms = 100
//	focus_animation_ms = 100
//
//	[recycler]
//	estimated_row_height = 44.0
//	strict = false
//
//	[log]
//	level = "info"
//
//	[demo]
//	fps = 60
//	rows = 1000
//	script = ""
//
// # Live Reload
//
// Watcher watches the file with fsnotify, debounces bursts of writes and
// delivers each configuration that loads and validates on its Updates
// channel. The receiver applies it on its own goroutine.
package config
