//go:build windows

package cfgmgr

import (
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"devtree/internal/domain"
	"devtree/internal/ports"
)

// Service implements ports.DeviceQueryService on the cfgmgr32 API
type Service struct {
	log zerolog.Logger
}

// Ensure Service implements DeviceQueryService
var _ ports.DeviceQueryService = (*Service)(nil)

// New returns the live Configuration Manager service
func New(log zerolog.Logger) (*Service, error) {
	if err := modcfgmgr32.Load(); err != nil {
		return nil, err
	}
	return &Service{log: log}, nil
}

// DeviceIDListSize returns the size, in characters, of the unfiltered
// device identifier list
func (s *Service) DeviceIDListSize() (int, error) {
	var length uint32
	if err := cmGetDeviceIDListSize(&length, nil, 0); err != nil {
		return 0, err
	}
	return int(length), nil
}

// DeviceIDList fetches the unfiltered identifier list into a buffer of
// capacity characters and splits it
func (s *Service) DeviceIDList(capacity int) ([]string, error) {
	if capacity <= 0 {
		return nil, domain.CRBufferSmall
	}
	buf := make([]uint16, capacity)
	if err := cmGetDeviceIDList(nil, &buf[0], uint32(capacity), 0); err != nil {
		return nil, err
	}
	ids := SplitMultiSZ(buf)
	s.log.Debug().Int("capacity", capacity).Int("identifiers", len(ids)).Msg("fetched device id list")
	return ids, nil
}

// Locate finds the node for id, or the root of the tree for an empty id
func (s *Service) Locate(id string, phantom bool) (domain.DevInst, error) {
	var ptr *uint16
	if id != "" {
		p, err := windows.UTF16PtrFromString(id)
		if err != nil {
			return 0, domain.CRInvalidDeviceID
		}
		ptr = p
	}
	flags := uint32(cmLocateDevNodeNormal)
	if phantom {
		flags = cmLocateDevNodePhantom
	}
	var node uint32
	if err := cmLocateDevNode(&node, ptr, flags); err != nil {
		return 0, err
	}
	return domain.DevInst(node), nil
}

// FirstChild returns the first child of node
func (s *Service) FirstChild(node domain.DevInst) (domain.DevInst, error) {
	var child uint32
	if err := cmGetChild(&child, uint32(node), 0); err != nil {
		return 0, err
	}
	return domain.DevInst(child), nil
}

// NextSibling returns the sibling following node
func (s *Service) NextSibling(node domain.DevInst) (domain.DevInst, error) {
	var sibling uint32
	if err := cmGetSibling(&sibling, uint32(node), 0); err != nil {
		return 0, err
	}
	return domain.DevInst(sibling), nil
}

// DeviceID returns the identifier of node. Identifiers longer than capacity
// characters fail with CR_BUFFER_SMALL instead of being truncated.
func (s *Service) DeviceID(node domain.DevInst, capacity int) (string, error) {
	var length uint32
	if err := cmGetDeviceIDSize(&length, uint32(node), 0); err != nil {
		return "", err
	}
	if int(length) > capacity {
		return "", domain.CRBufferSmall
	}
	buf := make([]uint16, capacity+1)
	if err := cmGetDeviceID(uint32(node), &buf[0], uint32(len(buf)), 0); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf), nil
}

// Status returns the DN_* flags and problem code of node
func (s *Service) Status(node domain.DevInst) (domain.Status, domain.Problem, error) {
	var status, problem uint32
	if err := cmGetDevNodeStatus(&status, &problem, uint32(node), 0); err != nil {
		return 0, 0, err
	}
	return domain.Status(status), domain.Problem(problem), nil
}

// Property reads a registry property of node. The first call sizes the
// buffer; the property may grow in between, which is reported as
// CR_BUFFER_SMALL.
func (s *Service) Property(node domain.DevInst, prop domain.Property) (domain.PropertyValue, error) {
	var dataType, length uint32
	err := cmGetDevNodeRegistryProperty(uint32(node), uint32(prop), &dataType, nil, &length, 0)
	if err != nil && !errors.Is(err, domain.CRBufferSmall) {
		return domain.PropertyValue{Property: prop}, err
	}
	if length == 0 {
		return domain.PropertyValue{Property: prop}, domain.CRNoSuchValue
	}

	buf := make([]uint16, (length+1)/2)
	length = uint32(len(buf) * 2)
	if err := cmGetDevNodeRegistryProperty(uint32(node), uint32(prop), &dataType, &buf[0], &length, 0); err != nil {
		return domain.PropertyValue{Property: prop}, err
	}

	v, err := DecodeProperty(prop, dataType, buf)
	if err != nil {
		s.log.Debug().Uint32("node", uint32(node)).Stringer("property", prop).Uint32("type", dataType).Msg("unexpected registry type")
	}
	return v, err
}
