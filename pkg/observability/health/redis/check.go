/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package redis checks that the redis holding status list artifacts answers.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Check pings redis on demand. Unlike the storage client it does not connect eagerly,
// so an unreachable server is reported by Ping instead of failing construction.
type Check struct {
	client redis.UniversalClient
}

// New returns a new redis health check.
func New(addrs []string, opts ...ClientOpt) *Check {
	opt := &clientOpts{}

	for _, f := range opts {
		f(opt)
	}

	return &Check{
		client: redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:                 addrs,
			ContextTimeoutEnabled: true,
			MasterName:            opt.masterName,
			Password:              opt.password,
			TLSConfig:             opt.tlsConfig,
			MaxRetries:            -1,
		}),
	}
}

// Ping fails when redis does not answer before ctx is done.
func (c *Check) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

func (c *Check) Close() error {
	return c.client.Close()
}

type clientOpts struct {
	masterName string
	password   string
	tlsConfig  *tls.Config
}

type ClientOpt func(opts *clientOpts)

func WithMasterName(masterName string) ClientOpt {
	return func(opts *clientOpts) {
		opts.masterName = masterName
	}
}

func WithPassword(password string) ClientOpt {
	return func(opts *clientOpts) {
		opts.password = password
	}
}

func WithTLSConfig(tlsConfig *tls.Config) ClientOpt {
	return func(opts *clientOpts) {
		opts.tlsConfig = tlsConfig
	}
}
