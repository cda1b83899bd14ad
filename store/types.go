package store

import "github.com/easynft/easynft"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = easynft.ReadOnlyKVStore
type KVStore = easynft.KVStore
type SetDeleter = easynft.SetDeleter
type Batch = easynft.Batch
type Iterator = easynft.Iterator
type Model = easynft.Model
type CacheableKVStore = easynft.CacheableKVStore
type KVCacheWrap = easynft.KVCacheWrap
type CommitKVStore = easynft.CommitKVStore
type CommitID = easynft.CommitID
