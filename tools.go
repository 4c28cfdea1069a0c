//go:build tools
// +build tools

// Package soapstone pins the code generators run by go generate.
package soapstone

import (
	_ "go.uber.org/mock/mockgen"
)
