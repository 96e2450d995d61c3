// Package subtitle parses line-based SUB sources and renders SRT output.
//
// The SUB dialect recognized here pairs a "start,end" timestamp line with the
// caption text on the following lines. Input may be UTF-8 or Shift_JIS;
// output is always UTF-8 SRT with millisecond timestamps.
package subtitle
