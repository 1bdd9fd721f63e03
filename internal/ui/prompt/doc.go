// Package prompt provides simple interactive prompts.
//
// The prompts render on stderr so stdout stays clean for piping
// command output.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
package prompt
