// Package storage persists the anchor, the last instant at which the clock
// was known to be correct. The anchor is stored as the raw 8 byte big-endian
// packed calendar.DateTime and nothing else.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dreitier/shortcal/calendar"
	"github.com/dreitier/shortcal/config"
)

const anchorSize = 8

// ErrNoAnchor is returned by Load if no anchor has been saved yet.
var ErrNoAnchor = errors.New("no anchor stored")

type Store interface {
	Load(ctx context.Context) (calendar.DateTime, error)
	Save(ctx context.Context, dt calendar.DateTime) error
}

// NewStore returns a LocalStore if a path has been configured, an S3Store
// otherwise.
func NewStore(cfg *config.AnchorConfiguration) (Store, error) {
	if cfg == nil {
		return nil, errors.New("anchor store has not been configured")
	}

	if cfg.IsLocal() {
		return &LocalStore{Path: cfg.Path}, nil
	}

	return &S3Store{
		Bucket:            cfg.Bucket,
		Key:               cfg.Key,
		Region:            cfg.Region,
		AccessKey:         cfg.AccessKey,
		SecretKey:         cfg.SecretKey,
		Endpoint:          cfg.Endpoint,
		ForcePathStyle:    cfg.ForcePathStyle,
		Token:             cfg.Token,
		VerifyCredentials: cfg.VerifyCredentials,
	}, nil
}

func Encode(dt calendar.DateTime) []byte {
	b := make([]byte, anchorSize)
	binary.BigEndian.PutUint64(b, dt.Uint64())
	return b
}

func Decode(b []byte) (calendar.DateTime, error) {
	if len(b) != anchorSize {
		return 0, fmt.Errorf("anchor has %d bytes, expected %d", len(b), anchorSize)
	}
	return calendar.FromUint64(binary.BigEndian.Uint64(b)), nil
}
