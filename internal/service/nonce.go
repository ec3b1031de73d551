package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("service")

const nonceTTL = 12 * time.Hour

// NonceService issues and verifies single-use anti-forgery tokens scoped
// to an action namespace, backed by redis. A token survives until it is
// verified once or its TTL lapses.
type NonceService struct {
	rdb *redis.Client
}

func NewNonceService(rdb *redis.Client) *NonceService {
	return &NonceService{rdb: rdb}
}

func nonceKey(namespace, token string) string {
	return "nonce:" + namespace + ":" + token
}

func (s *NonceService) Issue(ctx context.Context, namespace string) (string, error) {
	ctx, span := tracer.Start(ctx, "Nonce.Service.Issue")
	defer span.End()

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		span.RecordError(err)
		return "", pkgerrors.Wrap(err, "NonceService.Issue: generating token")
	}
	token := hex.EncodeToString(buf)

	err := s.rdb.Set(ctx, nonceKey(namespace, token), "1", nonceTTL).Err()
	if err != nil {
		span.RecordError(err)
		return "", pkgerrors.Wrap(err, "NonceService.Issue: storing token")
	}

	return token, nil
}

func (s *NonceService) Verify(ctx context.Context, namespace, token string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Nonce.Service.Verify")
	defer span.End()

	if token == "" {
		return false, nil
	}

	err := s.rdb.GetDel(ctx, nonceKey(namespace, token)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, pkgerrors.Wrap(err, "NonceService.Verify: consuming token")
	}

	return true, nil
}
