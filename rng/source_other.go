//go:build !linux

package rng

func sysSource() Source { return nil }
