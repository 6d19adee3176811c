// Package schedule implements the alarm's polling loop: it samples the
// wall clock at a fixed interval and fires once when the alarm time arrives.
package schedule
