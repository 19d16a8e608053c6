// Package checkout builds the order summary handed to the shopper's
// messaging app: main product, selected styling extras and their total.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modestbazar/storefront/internal/domain"
	"github.com/modestbazar/storefront/internal/domain/product"
)

// Summary is the priced order for one main product plus extras.
type Summary struct {
	Main     product.Product   `json:"main"`
	Extras   []product.Product `json:"extras"`
	Total    float64           `json:"total"`
	Message  string            `json:"message"`
	OrderURL string            `json:"orderUrl"`
}

// Service prices orders against the catalog.
type Service struct {
	catalog Catalog
	phone   string
}

// New creates a checkout service. phone is the WhatsApp number orders are sent to.
func New(catalog Catalog, phone string) *Service {
	return &Service{catalog: catalog, phone: phone}
}

// Summarize resolves the main product and extras and totals their prices.
// Unknown extras are dropped; duplicate extra ids count once.
func (s *Service) Summarize(ctx context.Context, mainID int, extraIDs []int) (Summary, error) {
	main, err := s.catalog.ProductByID(ctx, mainID)
	if err != nil {
		return Summary{}, fmt.Errorf("checkout main product: %w", err)
	}

	sum := Summary{Main: main, Extras: make([]product.Product, 0, len(extraIDs)), Total: main.Price}
	seen := map[int]struct{}{mainID: {}}
	for _, id := range extraIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		extra, err := s.catalog.ProductByID(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return Summary{}, fmt.Errorf("checkout extra %d: %w", id, err)
		}
		sum.Extras = append(sum.Extras, extra)
		sum.Total += extra.Price
	}

	sum.Message = Message(sum.Main, sum.Extras)
	sum.OrderURL = s.orderURL(sum.Message)
	return sum, nil
}

// Message composes the order text sent to the shop.
func Message(main product.Product, extras []product.Product) string {
	var b strings.Builder
	b.WriteString("Hello, I'd like to order from ModestBazar:\n\n")
	fmt.Fprintf(&b, "- Main product: %s (ID: %d)\n", main.Name, main.ID)
	if len(extras) > 0 {
		b.WriteString("- Styling items:\n")
		for _, e := range extras {
			fmt.Fprintf(&b, "  • %s (ID: %d)\n", e.Name, e.ID)
		}
	}
	return b.String()
}

func (s *Service) orderURL(message string) string {
	base := "https://wa.me/" + s.phone
	return base + "?text=" + url.QueryEscape(message)
}
