// Package provider defines alternative chunk translation backends.
package provider

import "github.com/ZaguanLabs/golingo"

// ChunkTranslator is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type ChunkTranslator = golingo.ChunkTranslator

// ChunkRequest is an alias to the main package type.
type ChunkRequest = golingo.ChunkRequest
