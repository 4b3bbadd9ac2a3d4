package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const certificateCacheTTL = 10 * time.Minute

// CertificateService manages issued certificates. The public verification
// endpoint is read-heavy, so lookups go through Redis when it is enabled.
type CertificateService struct {
	Repo  *repository.CertificateRepository
	Cache *redis.Client
}

func NewCertificateService(repo *repository.CertificateRepository, cache *redis.Client) *CertificateService {
	return &CertificateService{Repo: repo, Cache: cache}
}

type GrantCertificateRequest struct {
	User        string `json:"user" binding:"required,uuid"`
	Convocatory string `json:"convocatory" binding:"required,uuid"`
}

// PublicCertificate is the verification payload exposed without
// authentication. It deliberately omits the holder's email.
type PublicCertificate struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Subject   string    `json:"subject"`
	Version   string    `json:"version"`
	IssuedAt  time.Time `json:"issuedAt"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

func (s *CertificateService) ListByConvocatory(convocatoryID string) ([]model.Certificate, error) {
	return s.Repo.ListByConvocatory(convocatoryID)
}

func (s *CertificateService) Get(id string) (*model.Certificate, error) {
	return s.Repo.FindByID(id)
}

func (s *CertificateService) Grant(req GrantCertificateRequest) (*model.Certificate, error) {
	certificate, err := s.Repo.Upsert(req.User, req.Convocatory)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByID(certificate.ID)
}

func (s *CertificateService) Revoke(id string) (*model.Certificate, error) {
	certificate, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(id); err != nil {
		return nil, err
	}
	s.invalidate(id)
	return certificate, nil
}

// GetPublic resolves a certificate for public verification, reading through
// the cache when available.
func (s *CertificateService) GetPublic(ctx context.Context, id string) (*PublicCertificate, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, certificateCacheKey(id)).Result()
		if err == nil {
			var pc PublicCertificate
			if err := json.Unmarshal([]byte(cached), &pc); err == nil {
				return &pc, nil
			}
		} else if err != redis.Nil {
			zap.L().Warn("certificate cache read failed", zap.Error(err))
		}
	}

	certificate, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	pc := publicView(certificate)

	if s.Cache != nil {
		payload, err := json.Marshal(pc)
		if err == nil {
			if err := s.Cache.Set(ctx, certificateCacheKey(id), payload, certificateCacheTTL).Err(); err != nil {
				zap.L().Warn("certificate cache write failed", zap.Error(err))
			}
		}
	}
	return pc, nil
}

func (s *CertificateService) invalidate(id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), certificateCacheKey(id)).Err(); err != nil {
		zap.L().Warn("certificate cache invalidation failed", zap.Error(err))
	}
}

func certificateCacheKey(id string) string {
	return fmt.Sprintf("certificate:public:%s", id)
}

func publicView(c *model.Certificate) *PublicCertificate {
	pc := &PublicCertificate{
		ID:       c.ID,
		IssuedAt: c.CreatedAt,
	}
	pc.UserName = c.User.Name
	pc.Subject = c.Convocatory.Version.Quiz.Subject
	pc.Version = c.Convocatory.Version.Name
	pc.StartAt = c.Convocatory.StartAt
	pc.EndAt = c.Convocatory.EndAt
	return pc
}
