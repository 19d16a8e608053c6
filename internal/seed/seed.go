// Package seed provides the demo catalog embedded in the binary.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/modestbazar/storefront/internal/domain/product"
	"github.com/modestbazar/storefront/internal/domain/store"
)

//go:embed catalog.yaml
var catalogRawData []byte

// seedFile is the top-level structure of the embedded YAML.
type seedFile struct {
	Products []product.Product `yaml:"products"`
	Stores   []store.Store     `yaml:"stores"`
	Owners   []store.Owner     `yaml:"owners"`
}

// Data provides lazy-loaded access to the embedded seed catalog.
type Data struct {
	once sync.Once
	file seedFile
	err  error
}

// New creates a Data that parses the embedded YAML on first access.
func New() *Data {
	return &Data{}
}

// Products returns a copy of the seed products.
func (d *Data) Products() ([]product.Product, error) {
	d.once.Do(d.load)
	if d.err != nil {
		return nil, d.err
	}
	cp := make([]product.Product, len(d.file.Products))
	copy(cp, d.file.Products)
	return cp, nil
}

// Stores returns a copy of the seed stores.
func (d *Data) Stores() ([]store.Store, error) {
	d.once.Do(d.load)
	if d.err != nil {
		return nil, d.err
	}
	cp := make([]store.Store, len(d.file.Stores))
	copy(cp, d.file.Stores)
	return cp, nil
}

// Owners returns a copy of the seed store owners.
func (d *Data) Owners() ([]store.Owner, error) {
	d.once.Do(d.load)
	if d.err != nil {
		return nil, d.err
	}
	cp := make([]store.Owner, len(d.file.Owners))
	copy(cp, d.file.Owners)
	return cp, nil
}

// CatalogSeeder replaces the catalog with the seed products.
type CatalogSeeder interface {
	Seed(ctx context.Context, products []product.Product) error
}

// DirectorySeeder replaces stores and owners with the seed records.
type DirectorySeeder interface {
	Seed(ctx context.Context, stores []store.Store, owners []store.Owner) error
}

// Apply writes the seed data through the catalog and the store directory.
func (d *Data) Apply(ctx context.Context, catalog CatalogSeeder, directory DirectorySeeder) error {
	products, err := d.Products()
	if err != nil {
		return err
	}
	stores, err := d.Stores()
	if err != nil {
		return err
	}
	owners, err := d.Owners()
	if err != nil {
		return err
	}
	if err := catalog.Seed(ctx, products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := directory.Seed(ctx, stores, owners); err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}
	return nil
}

// load parses and validates the embedded YAML seed data.
func (d *Data) load() {
	var f seedFile
	if err := yaml.Unmarshal(catalogRawData, &f); err != nil {
		d.err = fmt.Errorf("seed: parse yaml: %w", err)
		return
	}
	if err := product.ValidateCatalog(f.Products); err != nil {
		d.err = fmt.Errorf("seed: %w", err)
		return
	}
	d.file = f
}
