// Package gads carries module-level metadata.
package gads

// Version is the current release of the gads module.
const Version = "0.1.0"
