// Package cache 는 upstream 원본 레코드(JSON 바이트)를 짧은 기간 보관하는 저장소다.
// 가공된 DisplayPost 는 매 요청 새로 만들어야 하므로 여기에 넣지 않는다.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store 는 캐시 백엔드 공통 인터페이스다. 백엔드 오류는 miss 로 취급한다.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Memory 는 프로세스 내 만료형 LRU 캐시다.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory 는 최대 size 개, ttl 동안 유지되는 캐시를 만든다.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	return m.lru.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.lru.Add(key, value)
}

// Len 은 현재 보관 중인 항목 수다.
func (m *Memory) Len() int {
	return m.lru.Len()
}
