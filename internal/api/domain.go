package api

import (
	"reverie/internal/entries"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Entries entries.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	entriesSystem := entries.New(
		runtime.Database.Connection(),
		runtime.Crypto,
		runtime.Summarizer,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Entries: entriesSystem,
	}
}
