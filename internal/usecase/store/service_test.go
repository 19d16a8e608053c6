package store

import (
	"context"
	"errors"
	"testing"

	"github.com/modestbazar/storefront/internal/domain"
	domstore "github.com/modestbazar/storefront/internal/domain/store"
)

// --- Mocks ---

type mockRepo struct {
	stores    []domstore.Store
	owners    []domstore.Owner
	put       []domstore.Store
	listErr   error
	ownersErr error
	putErr    error
	seedErr   error
}

func (m *mockRepo) List(_ context.Context) ([]domstore.Store, error) {
	return m.stores, m.listErr
}

func (m *mockRepo) Put(_ context.Context, s domstore.Store) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.put = append(m.put, s)
	return nil
}

func (m *mockRepo) ReplaceAll(_ context.Context, stores []domstore.Store) error {
	if m.seedErr != nil {
		return m.seedErr
	}
	m.stores = stores
	return nil
}

func (m *mockRepo) ListOwners(_ context.Context) ([]domstore.Owner, error) {
	return m.owners, m.ownersErr
}

func (m *mockRepo) ReplaceOwners(_ context.Context, owners []domstore.Owner) error {
	m.owners = owners
	return nil
}

func sampleStores() []domstore.Store {
	return []domstore.Store{
		{ID: "s1", Slug: "abbaya", Name: "Abbaya", OwnerID: "o1", BannerImageURL: "/b1.jpg", VisibleFilters: []string{"price"}},
		{ID: "s2", Slug: "hijabi", Name: "Hijabi", OwnerID: "o2"},
	}
}

func sampleOwners() []domstore.Owner {
	return []domstore.Owner{
		{ID: "o1", Email: "owner@abbaya.example", StoreID: "s1"},
		{ID: "o2", Email: "owner@hijabi.example", StoreID: "s2"},
		{ID: "o3", Email: "partner@abbaya.example", StoreID: "s1"},
	}
}

func loaded(t *testing.T) (*Directory, *mockRepo) {
	t.Helper()
	repo := &mockRepo{stores: sampleStores(), owners: sampleOwners()}
	d := New(repo, nil)
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d, repo
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestLoad_Errors(t *testing.T) {
	d := New(&mockRepo{listErr: errors.New("down")}, nil)
	if err := d.Load(context.Background()); err == nil {
		t.Error("expected list error")
	}
	d = New(&mockRepo{ownersErr: errors.New("down")}, nil)
	if err := d.Load(context.Background()); err == nil {
		t.Error("expected owners error")
	}
}

func TestSeed(t *testing.T) {
	repo := &mockRepo{}
	d := New(repo, nil)
	if err := d.Seed(context.Background(), sampleStores(), sampleOwners()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.stores) != 2 || len(repo.owners) != 3 {
		t.Errorf("seed not persisted: %d stores, %d owners", len(repo.stores), len(repo.owners))
	}
	all, _ := d.List(context.Background())
	if len(all) != 2 {
		t.Errorf("expected 2 stores, got %d", len(all))
	}
}

func TestSeed_Error(t *testing.T) {
	d := New(&mockRepo{seedErr: errors.New("readonly")}, nil)
	if err := d.Seed(context.Background(), sampleStores(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookups(t *testing.T) {
	d, _ := loaded(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		lookup func() (domstore.Store, error)
		wantID string
	}{
		{"by name", func() (domstore.Store, error) { return d.ByName(ctx, "Hijabi") }, "s2"},
		{"by slug", func() (domstore.Store, error) { return d.BySlug(ctx, "abbaya") }, "s1"},
		{"by id", func() (domstore.Store, error) { return d.ByID(ctx, "s2") }, "s2"},
		{"by owner", func() (domstore.Store, error) { return d.ByOwner(ctx, "o1") }, "s1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.lookup()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.ID != tt.wantID {
				t.Errorf("got %q, want %q", s.ID, tt.wantID)
			}
		})
	}
}

func TestLookups_NotFound(t *testing.T) {
	d, _ := loaded(t)
	ctx := context.Background()

	if _, err := d.BySlug(ctx, "nope"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Errorf("BySlug: expected ErrStoreNotFound, got %v", err)
	}
	if _, err := d.ByName(ctx, "nope"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Errorf("ByName: expected ErrStoreNotFound, got %v", err)
	}
	if _, err := d.Owner(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Owner: expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	d, repo := loaded(t)
	ctx := context.Background()

	filters := []string{"category", "modesty"}
	got, err := d.Update(ctx, "o1", "s1", domstore.Patch{
		BannerImageURL: strPtr("/new.jpg"),
		VisibleFilters: &filters,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BannerImageURL != "/new.jpg" || len(got.VisibleFilters) != 2 {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(repo.put) != 1 || repo.put[0].ID != "s1" {
		t.Errorf("record not persisted: %+v", repo.put)
	}

	reread, _ := d.ByID(ctx, "s1")
	if reread.BannerImageURL != "/new.jpg" || reread.VisibleFilters[0] != "category" {
		t.Errorf("directory not updated: %+v", reread)
	}
}

func TestUpdate_OwnerAccountGrantsAccess(t *testing.T) {
	d, _ := loaded(t)
	if _, err := d.Update(context.Background(), "o3", "s1", domstore.Patch{LogoImageURL: strPtr("/l.png")}); err != nil {
		t.Fatalf("owner account linked to store should be allowed: %v", err)
	}
}

func TestUpdate_Forbidden(t *testing.T) {
	d, repo := loaded(t)
	_, err := d.Update(context.Background(), "o2", "s1", domstore.Patch{BannerImageURL: strPtr("/x.jpg")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.put) != 0 {
		t.Error("forbidden update must not be persisted")
	}
	s, _ := d.ByID(context.Background(), "s1")
	if s.BannerImageURL != "/b1.jpg" {
		t.Error("forbidden update changed the record")
	}
}

func TestUpdate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ownerID string
		id      string
		patch   domstore.Patch
		putErr  error
		wantErr error
	}{
		{"unknown store", "o1", "s9", domstore.Patch{LogoImageURL: strPtr("x")}, nil, domain.ErrStoreNotFound},
		{"empty owner", "", "s1", domstore.Patch{LogoImageURL: strPtr("x")}, nil, domain.ErrForbidden},
		{"empty patch", "o1", "s1", domstore.Patch{}, nil, domain.ErrInvalidPatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := loaded(t)
			_, err := d.Update(context.Background(), tt.ownerID, tt.id, tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdate_RepoErrorKeepsRecord(t *testing.T) {
	d, repo := loaded(t)
	repo.putErr = errors.New("write failed")

	if _, err := d.Update(context.Background(), "o1", "s1", domstore.Patch{BannerImageURL: strPtr("/x.jpg")}); err == nil {
		t.Fatal("expected error")
	}
	s, _ := d.ByID(context.Background(), "s1")
	if s.BannerImageURL != "/b1.jpg" {
		t.Error("failed write must not change the record")
	}
}

func TestUpdate_DescriptionIsPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Modest wear for every day", "Modest wear for every day"},
		{"script stripped", `Sale<script>alert(1)</script> now`, "Sale now"},
		{"tags stripped", "<b>Bold</b> & <i>bright</i>", "Bold & bright"},
		{"trimmed", "  <p>Hello</p>  ", "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := loaded(t)
			got, err := d.Update(context.Background(), "o1", "s1", domstore.Patch{Description: strPtr(tt.in)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Description != tt.want {
				t.Errorf("description = %q, want %q", got.Description, tt.want)
			}
		})
	}
}
