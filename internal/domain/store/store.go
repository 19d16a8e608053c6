// Package store defines the shop entity and its whole-record update patch.
package store

import "github.com/modestbazar/storefront/internal/domain"

// Store is a shop in the marketplace. Its products are the catalog entries
// whose Brand equals Name.
type Store struct {
	ID             string   `json:"id" yaml:"id"`
	Slug           string   `json:"slug" yaml:"slug"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	BannerImageURL string   `json:"bannerImageUrl" yaml:"bannerImageUrl"`
	LogoImageURL   string   `json:"logoImageUrl" yaml:"logoImageUrl"`
	OwnerID        string   `json:"ownerId" yaml:"ownerId"`
	ProductIDs     []string `json:"productIds" yaml:"productIds"`
	VisibleFilters []string `json:"visibleFilters,omitempty" yaml:"visibleFilters,omitempty"`
}

// Owner is a store owner account.
type Owner struct {
	ID      string `json:"id" yaml:"id"`
	Email   string `json:"email" yaml:"email"`
	StoreID string `json:"storeId" yaml:"storeId"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Patch carries the owner-editable fields. A nil field is left untouched;
// a non-nil field replaces the stored value entirely (no deep merge).
type Patch struct {
	Description    *string   `json:"description,omitempty"`
	BannerImageURL *string   `json:"bannerImageUrl,omitempty"`
	LogoImageURL   *string   `json:"logoImageUrl,omitempty"`
	VisibleFilters *[]string `json:"visibleFilters,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Description == nil && p.BannerImageURL == nil && p.LogoImageURL == nil && p.VisibleFilters == nil
}

// Apply returns a new record with the patch applied. s is not modified.
func (p Patch) Apply(s Store) (Store, error) {
	if p.IsEmpty() {
		return Store{}, domain.ErrInvalidPatch
	}
	out := s
	out.ProductIDs = append([]string(nil), s.ProductIDs...)
	out.VisibleFilters = append([]string(nil), s.VisibleFilters...)

	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.BannerImageURL != nil {
		out.BannerImageURL = *p.BannerImageURL
	}
	if p.LogoImageURL != nil {
		out.LogoImageURL = *p.LogoImageURL
	}
	if p.VisibleFilters != nil {
		out.VisibleFilters = append([]string(nil), (*p.VisibleFilters)...)
	}
	return out, nil
}
