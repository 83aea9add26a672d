//go:build !windows

package cfgmgr

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// Service is a stand-in on platforms without cfgmgr32. It is never
// returned by New; it exists so callers compile everywhere.
type Service struct{}

var _ ports.DeviceQueryService = (*Service)(nil)

// New fails on every platform but Windows
func New(log zerolog.Logger) (*Service, error) {
	log.Debug().Str("os", runtime.GOOS).Msg("cfgmgr32 unavailable")
	return nil, fmt.Errorf("cfgmgr32 on %s: %w", runtime.GOOS, application.ErrUnsupportedPlatform)
}

func (s *Service) DeviceIDListSize() (int, error) {
	return 0, domain.CRNoCMServices
}

func (s *Service) DeviceIDList(int) ([]string, error) {
	return nil, domain.CRNoCMServices
}

func (s *Service) Locate(string, bool) (domain.DevInst, error) {
	return 0, domain.CRNoCMServices
}

func (s *Service) FirstChild(domain.DevInst) (domain.DevInst, error) {
	return 0, domain.CRNoCMServices
}

func (s *Service) NextSibling(domain.DevInst) (domain.DevInst, error) {
	return 0, domain.CRNoCMServices
}

func (s *Service) DeviceID(domain.DevInst, int) (string, error) {
	return "", domain.CRNoCMServices
}

func (s *Service) Status(domain.DevInst) (domain.Status, domain.Problem, error) {
	return 0, 0, domain.CRNoCMServices
}

func (s *Service) Property(domain.DevInst, domain.Property) (domain.PropertyValue, error) {
	return domain.PropertyValue{}, domain.CRNoCMServices
}
