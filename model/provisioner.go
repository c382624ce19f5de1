package model

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Fetcher retrieves the asset of a model from a remote source.
type Fetcher interface {
	// AssetName is the local file name the asset is stored under.
	AssetName(m Model) string

	// Fetch writes the asset to w.
	Fetch(ctx context.Context, m Model, w io.Writer) error
}

// Provisioner keeps the model assets in a local directory, fetching the
// missing ones.
type Provisioner struct {
	dir     string
	fetcher Fetcher
	log     zerolog.Logger
}

func NewProvisioner(dir string, f Fetcher, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		dir:     dir,
		fetcher: f,
		log:     log,
	}
}

// Path returns the local path of the model asset of lang. The file may not
// exist yet.
func (p *Provisioner) Path(lang string) (string, error) {
	m, err := Lookup(lang)
	if err != nil {
		return "", err
	}
	return filepath.Join(p.dir, lang, p.fetcher.AssetName(m)), nil
}

// Ensure makes sure the model asset of lang is present on return. Present
// assets are not fetched again.
func (p *Provisioner) Ensure(ctx context.Context, lang string) error {
	m, err := Lookup(lang)
	if err != nil {
		return err
	}

	path := filepath.Join(p.dir, lang, p.fetcher.AssetName(m))
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() && info.Size() > 0 {
		p.log.Debug().Str("lang", lang).Str("path", path).Msg("model present")
		return nil
	}

	p.log.Info().Str("lang", lang).Str("model", m.Family).Msg("downloading model")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	// The asset becomes visible only after a complete fetch.
	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := p.fetcher.Fetch(ctx, m, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to fetch model %s: %w", m.Family, err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to install model %s: %w", m.Family, err)
	}

	p.log.Info().Str("lang", lang).Str("path", path).Msg("model ready")
	return nil
}
