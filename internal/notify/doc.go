// Package notify presents outdated-server notices in the terminal: an
// interactive numbered prompt, a one-shot banner for non-interactive runs, and
// a small on-disk record of "Not now" answers so the banner is not repeated
// on every invocation.
package notify
