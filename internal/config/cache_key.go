package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CBTPoolKey returns the cache key for the deduplicated question pool of a license and grade
func (r *CacheKeyStruct) CBTPoolKey(license, grade string) string {
	return fmt.Sprintf("cbt:%s:%s:pool", license, grade)
}

// CBTPoolPattern matches every cached CBT pool
func (r *CacheKeyStruct) CBTPoolPattern() string {
	return "cbt:*:pool"
}

var CacheKey = NewCacheKeyStruct()
