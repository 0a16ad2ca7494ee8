package geminiservice

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// replyCache memoizes successful replies by history. Identical histories
// that arrive concurrently share one upstream call.
type replyCache struct {
	entries *lru.Cache[string, string] // nil when caching is disabled
	group   singleflight.Group
}

func newReplyCache(size int) (*replyCache, error) {
	rc := &replyCache{}
	if size <= 0 {
		return rc, nil
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	rc.entries = entries
	return rc, nil
}

func (rc *replyCache) get(key string) (string, bool) {
	if rc.entries == nil {
		return "", false
	}
	return rc.entries.Get(key)
}

func (rc *replyCache) add(key, reply string) {
	if rc.entries != nil {
		rc.entries.Add(key, reply)
	}
}

// do runs fn once per key among concurrent callers. shared reports whether
// the result came from another caller's call.
func (rc *replyCache) do(key string, fn func() (string, error)) (reply string, shared bool, err error) {
	v, err, shared := rc.group.Do(key, func() (interface{}, error) {
		return fn()
	})
	reply, _ = v.(string)
	return reply, shared, err
}

func (rc *replyCache) size() int {
	if rc.entries == nil {
		return 0
	}
	return rc.entries.Len()
}

// historyKey hashes the full history, roles included.
func historyKey(turns []Turn) string {
	raw, _ := json.Marshal(turns)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
