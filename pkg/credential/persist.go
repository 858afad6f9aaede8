package credential

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/DeBrosOfficial/fheclient/pkg/logging"
	"github.com/DeBrosOfficial/fheclient/pkg/storage"
)

// storageKey is the single slot the active credential occupies in storage.
const storageKey = "credential:active"

// PersistentCache wraps Cache with write-through persistence so a still
// valid credential survives process restarts. Persistence is best effort:
// a storage failure degrades to in-memory caching with a warning, it never
// fails the credential request itself.
type PersistentCache struct {
	cache  *Cache
	store  storage.Store
	logger *logging.ColoredLogger
}

// NewPersistentCache creates a cache backed by store and seeds it with any
// previously persisted credential that is still valid. Corrupt or expired
// stored credentials are discarded silently.
func NewPersistentCache(ctx context.Context, store storage.Store, logger *logging.ColoredLogger) *PersistentCache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	p := &PersistentCache{
		cache:  NewCache(logger),
		store:  store,
		logger: logger,
	}
	p.restore(ctx)
	return p
}

// GetOrCreate behaves like Cache.GetOrCreate and additionally persists any
// freshly generated credential.
func (p *PersistentCache) GetOrCreate(ctx context.Context, instance KeypairGenerator, signer TypedDataSigner, contractAddress string) (*DecryptionCredential, error) {
	cred, created, err := p.cache.getOrCreate(ctx, instance, signer, contractAddress)
	if err != nil {
		return nil, err
	}

	if created {
		p.persist(ctx, cred)
	}
	return cred, nil
}

// IsValid reports whether the credential is still inside its validity window.
func (p *PersistentCache) IsValid(cred *DecryptionCredential) bool {
	return p.cache.IsValid(cred)
}

// Clear empties the cache slot and removes the persisted credential.
func (p *PersistentCache) Clear(ctx context.Context) {
	p.cache.Clear()
	if err := p.store.RemoveItem(ctx, storageKey); err != nil {
		p.logger.ComponentWarn(logging.ComponentCredential,
			"failed to remove persisted credential", zap.Error(err))
	}
}

func (p *PersistentCache) restore(ctx context.Context) {
	data, ok, err := p.store.GetItem(ctx, storageKey)
	if err != nil || !ok {
		if err != nil {
			p.logger.ComponentWarn(logging.ComponentCredential,
				"failed to read persisted credential", zap.Error(err))
		}
		return
	}

	var cred DecryptionCredential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		p.logger.ComponentDebug(logging.ComponentCredential,
			"discarding corrupt persisted credential", zap.Error(err))
		_ = p.store.RemoveItem(ctx, storageKey)
		return
	}

	if !p.cache.IsValid(&cred) {
		p.logger.ComponentDebug(logging.ComponentCredential,
			"discarding expired persisted credential", zap.String("id", cred.ID))
		_ = p.store.RemoveItem(ctx, storageKey)
		return
	}

	p.cache.seed(&cred)
	p.logger.ComponentInfo(logging.ComponentCredential,
		"restored persisted credential", zap.String("id", cred.ID))
}

func (p *PersistentCache) persist(ctx context.Context, cred *DecryptionCredential) {
	data, err := json.Marshal(cred)
	if err != nil {
		p.logger.ComponentWarn(logging.ComponentCredential,
			"failed to marshal credential", zap.Error(err))
		return
	}

	if err := p.store.SetItem(ctx, storageKey, string(data)); err != nil {
		p.logger.ComponentWarn(logging.ComponentCredential,
			"failed to persist credential", zap.Error(err))
	}
}
