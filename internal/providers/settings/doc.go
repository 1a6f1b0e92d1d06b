// Package settings loads the ignore policy that decides which failed
// commands are reported.
//
// The policy lives in a single file whose extension picks the codec:
// .yaml/.yml (goccy/go-yaml), .toml (pelletier/go-toml/v2) or .json
// (bytedance/sonic).
//
//	enabled: true
//	ignoreExitCodes: [130]
//	ignoreCommands: ["flaky-test"]
//	ignoreCommandPatterns: ["npm run lint*"]
//
// The file is read on every Load so edits apply to the next failure without
// restarting anything.
package settings
