// Package session persists in-memory navigation stacks between requests.
//
// A host that renders pages on the server keeps one history.Memory per
// request. Saving its Snapshot under a visitor key and restoring it on the
// next request keeps back and forward working across requests.
//
//	store, closeStore, err := session.NewStore(ctx, cfg)
//	...
//	snap, err := store.Load(ctx, visitorID)
//	if session.IsNotFound(err) {
//	    // first visit
//	}
//
// MemoryStore is a bounded LRU map; RedisStore keeps JSON encoded
// snapshots in redis with a TTL. NewStore picks one from Config.
package session
