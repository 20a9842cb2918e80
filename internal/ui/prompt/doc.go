// Package prompt provides simple interactive prompts.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with optional default
//   - [Password]: Masked single-line input
//   - [Select]: Single selection from a fuzzy-filterable list
package prompt
