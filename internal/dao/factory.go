// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package dao

import (
	"database/sql"

	"github.com/govportal/portalctl/internal/client"
)

// APIFactory implements the Factory interface over a portal connection and
// an optional database.
type APIFactory struct {
	client   client.Connection
	db       *sql.DB
	cache    *PageCache
	readOnly bool
}

// NewFactory creates a new factory with the given client.
func NewFactory(conn client.Connection, db *sql.DB, cache *PageCache, readOnly bool) *APIFactory {
	if cache == nil {
		cache = NewPageCache(DefaultCacheTTL)
	}

	return &APIFactory{
		client:   conn,
		db:       db,
		cache:    cache,
		readOnly: readOnly,
	}
}

// Client returns the API connection.
func (f *APIFactory) Client() client.Connection {
	return f.client
}

// DB returns the direct database handle if any.
func (f *APIFactory) DB() *sql.DB {
	return f.db
}

// Cache returns the page cache.
func (f *APIFactory) Cache() *PageCache {
	return f.cache
}

// ReadOnly returns true if mutations are disallowed.
func (f *APIFactory) ReadOnly() bool {
	return f.readOnly
}

// Profile returns the active API profile.
func (f *APIFactory) Profile() string {
	if f.client != nil {
		return f.client.ActiveProfile()
	}
	return ""
}

// SetProfile switches to another API profile and drops cached pages.
func (f *APIFactory) SetProfile(profile string) error {
	if f.client == nil {
		return client.ErrNoConnection
	}
	if err := f.client.SwitchProfile(profile); err != nil {
		return err
	}
	f.cache.Clear()

	return nil
}
