//go:build nocgo
// +build nocgo

package audio

import "errors"

// NewOtoDevice is unavailable without cgo; run with the mock device instead.
func NewOtoDevice() (Device, error) {
	return nil, errors.New("audio hardware support disabled in this build (nocgo)")
}
