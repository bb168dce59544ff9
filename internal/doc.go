// Package internal holds the opaque token codec and the wall-clock
// window helpers shared by the public packages.
package internal
