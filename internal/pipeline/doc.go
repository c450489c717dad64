// Package pipeline implements the per-line text-to-CSV transform.
//
// The stages applied to every input line are:
//   - Line splitting on \n, \r\n or a lone \r (SplitLines)
//   - Whitespace trimming (TrimLine)
//   - Control character removal (ControlStripper)
//   - Single-column CSV row formatting with a trailing comma (QuotedRowFormatter)
//
// File handling, error classification and cancellation live in the root
// txt2csv package. This package only holds pure string transforms so every
// stage can be tested without touching the filesystem.
package pipeline
