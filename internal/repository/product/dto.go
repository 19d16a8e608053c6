package product

import (
	"encoding/json"
	"fmt"

	domprod "github.com/modestbazar/storefront/internal/domain/product"
)

// catalogVersion is bumped when the stored document layout changes.
const catalogVersion = 1

// catalogDoc is the stored form of a catalog snapshot.
type catalogDoc struct {
	Version  int               `json:"version"`
	Products []domprod.Product `json:"products"`
}

func encodeCatalog(products []domprod.Product) ([]byte, error) {
	if products == nil {
		products = []domprod.Product{}
	}
	data, err := json.Marshal(catalogDoc{Version: catalogVersion, Products: products})
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

func decodeCatalog(data []byte) ([]domprod.Product, error) {
	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if doc.Version != catalogVersion {
		return nil, fmt.Errorf("unsupported catalog version %d", doc.Version)
	}
	if doc.Products == nil {
		doc.Products = []domprod.Product{}
	}
	return doc.Products, nil
}
