// Package caching é o canal lateral de leitura sobre o armazenamento
// canônico. O cache nunca é dono de dado nenhum: qualquer erro no caminho de
// leitura vira um miss e o chamador cai para o banco.
package caching

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tags identifica o recurso dono de uma entrada para invalidação dirigida
type Tags struct {
	ResourceType string
	ResourceID   string
}

type Cache interface {
	Get(ctx context.Context, key string, out interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags *Tags)
	InvalidateByPattern(ctx context.Context, substring string) int64
	InvalidateByResource(ctx context.Context, resourceType, resourceID string) int64
	Cleanup(ctx context.Context) (int64, error)
}

type Service struct {
	repository repository.CacheEntryRepository
	defaultTTL time.Duration
}

func NewService(repo repository.CacheEntryRepository, defaultTTL time.Duration) *Service {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}

	return &Service{
		repository: repo,
		defaultTTL: defaultTTL,
	}
}

// BuildKey reduz tipo de recurso, resolução e filtros a uma impressão digital
// estável. Os filtros entram em ordem de nome para que a mesma consulta
// produza sempre a mesma chave.
func BuildKey(resourceType string, resolution domain.Resolution, filters map[string]string) string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	canonical := resourceType + "|" + string(resolution)
	for _, name := range names {
		canonical += "|" + name + "=" + filters[name]
	}

	sum := blake2b.Sum256([]byte(canonical))

	return fmt.Sprintf("%s:%s:%s", resourceType, resolution, hex.EncodeToString(sum[:]))
}

// Get busca a entrada e desserializa o payload em out. Ausente, expirada ou
// com qualquer erro no caminho vira miss; entrada expirada é removida na hora
func (s *Service) Get(ctx context.Context, key string, out interface{}) bool {
	entry, err := s.repository.Get(ctx, key)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).
			Warn("Erro ao ler o cache, degradando para miss")
		return false
	}

	if entry == nil {
		return false
	}

	if entry.Expired(time.Now().UTC()) {
		if err := s.repository.Delete(ctx, key); err != nil {
			logrus.WithField("key", key).Warn("Erro ao remover entrada expirada do cache")
		}
		return false
	}

	if err := json.Unmarshal(entry.Payload, out); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).
			Warn("Payload do cache não desserializou, degradando para miss")
		return false
	}

	if err := s.repository.Touch(ctx, key); err != nil {
		logrus.WithField("key", key).Warn("Erro ao registrar hit do cache")
	}

	return true
}

// Set grava o valor com o TTL pedido (ou o padrão quando <= 0). Erros são
// engolidos: escrever o cache nunca pode derrubar o fluxo que o alimenta
func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags *Tags) {
	payload, err := json.Marshal(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).
			Warn("Erro ao serializar valor para o cache")
		return
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	entry := &domain.CacheEntry{
		Key:       key,
		Payload:   payload,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if tags != nil {
		entry.ResourceType = &tags.ResourceType
		entry.ResourceID = &tags.ResourceID
	}

	if err := s.repository.SaveOrUpdate(ctx, entry); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).
			Warn("Erro ao gravar entrada no cache")
	}
}

func (s *Service) InvalidateByPattern(ctx context.Context, substring string) int64 {
	deleted, err := s.repository.DeleteByPattern(ctx, substring)
	if err != nil {
		logrus.WithFields(logrus.Fields{"pattern": substring, "error": err.Error()}).
			Warn("Erro ao invalidar cache por padrão")
		return 0
	}

	return deleted
}

func (s *Service) InvalidateByResource(ctx context.Context, resourceType, resourceID string) int64 {
	deleted, err := s.repository.DeleteByResource(ctx, resourceType, resourceID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"resource_type": resourceType,
			"resource_id":   resourceID,
			"error":         err.Error(),
		}).Warn("Erro ao invalidar cache por recurso")
		return 0
	}

	return deleted
}

// Cleanup remove as entradas já expiradas
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.repository.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		logrus.WithField("entradas_removidas", deleted).Info("Limpeza do cache concluída")
	}

	return deleted, nil
}
