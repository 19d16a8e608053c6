// Package storefront embeds the ModestBazar catalog in a Go program: product
// and store lookups, recommendations, checkout summaries, and live filter
// sessions that recompute facets and results as a shopper edits filters.
//
//	client, _ := storefront.New(ctx, storefront.WithSeed())
//	defer client.Close()
//
//	sess, _ := client.OpenCatalog(ctx, "abbaya")
//	defer sess.Close()
//	sess.Subscribe(func(s storefront.Snapshot) { render(s) })
//	_ = sess.Toggle("colors", "olive")
//
// Storage defaults to process memory; WithRedis persists the catalog and
// store directory in Redis.
package storefront
