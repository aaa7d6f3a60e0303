// Package types defines the Store capability, element capabilities, sentinel
// errors, graph-schema constants, and configuration shared by every gads
// package. It has no dependency on any storage driver.
package types
