package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

//go:embed diseases.json
var diseasesJSON []byte

// Confidence band reported for image diagnoses. The pilot scanner has no
// trained model behind it yet, so confidence stays in a believable range.
const (
	confidenceBase   = 85
	confidenceSpread = 10
)

// dbtUnlinkedRatio is the fraction of DBT checks that come back unlinked
// in the pilot simulation.
const dbtUnlinkedRatio = 0.3

// AdvisoryService provides the crop scanner diagnosis and the Direct
// Benefit Transfer linkage check.
type AdvisoryService struct {
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand

	diseases    map[string]domain.DiseaseProfile
	diseaseKeys []string
}

// NewAdvisoryService creates a new advisory service. The service takes sole
// ownership of rng; its mutex does not cover draws made elsewhere.
func NewAdvisoryService(rng *rand.Rand, logger *slog.Logger) (*AdvisoryService, error) {
	var diseases map[string]domain.DiseaseProfile
	if err := json.Unmarshal(diseasesJSON, &diseases); err != nil {
		return nil, fmt.Errorf("parse disease profiles: %w", err)
	}

	keys := make([]string, 0, len(diseases))
	for key := range diseases {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &AdvisoryService{
		logger:      logger,
		rng:         rng,
		diseases:    diseases,
		diseaseKeys: keys,
	}, nil
}

// ScanImage diagnoses a crop image, returning a disease profile with a
// confidence estimate.
func (s *AdvisoryService) ScanImage(ctx context.Context, image []byte) (*domain.DiseaseDiagnosis, error) {
	if len(image) == 0 {
		return nil, apperrors.InvalidInput("an image is required")
	}

	s.mu.Lock()
	key := s.diseaseKeys[s.rng.Intn(len(s.diseaseKeys))]
	confidence := confidenceBase + s.rng.Intn(confidenceSpread+1)
	s.mu.Unlock()

	profile := s.diseases[key]

	s.logger.InfoContext(ctx, "crop image scanned",
		slog.String("disease", profile.Name),
		slog.Int("confidence", confidence),
		slog.Int("image_bytes", len(image)),
	)

	return &domain.DiseaseDiagnosis{
		DiseaseType: profile.Name,
		Description: profile.Description,
		Confidence:  fmt.Sprintf("%d%%", confidence),
		Treatments:  profile.Treatments,
		Pesticides:  profile.Pesticides,
		Prevention:  profile.Prevention,
	}, nil
}

// CheckDBTStatus reports whether the given Aadhaar is linked to the DBT
// scheme for the given bank account.
func (s *AdvisoryService) CheckDBTStatus(ctx context.Context, aadhaar, account string) (*domain.DBTStatus, error) {
	if aadhaar == "" {
		return nil, apperrors.InvalidInput("aadhaar number is required")
	}
	if account == "" {
		return nil, apperrors.InvalidInput("bank account number is required")
	}

	s.mu.Lock()
	linked := s.rng.Float64() > dbtUnlinkedRatio
	s.mu.Unlock()

	status := &domain.DBTStatus{Linked: linked}
	if linked {
		status.Message = fmt.Sprintf(
			"✅ Your Aadhaar %s is successfully linked to DBT scheme with account %s. You are eligible for direct benefit transfers.",
			aadhaar, account,
		)
	} else {
		status.Message = fmt.Sprintf(
			"❌ Your Aadhaar %s is not linked to DBT scheme. Please visit your nearest bank branch to link your Aadhaar with bank account.",
			aadhaar,
		)
	}

	return status, nil
}
