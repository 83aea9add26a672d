// Package source selects the device query service a binary runs against:
// a replayed snapshot when one is configured, the live platform otherwise.
package source

import (
	"github.com/rs/zerolog"

	"devtree/internal/adapters/cfgmgr"
	"devtree/internal/adapters/memory"
	"devtree/internal/ports"
)

// Open returns the service for snapshotPath, or the cfgmgr32 service when
// snapshotPath is empty
func Open(snapshotPath string, log zerolog.Logger) (ports.DeviceQueryService, error) {
	if snapshotPath != "" {
		svc, err := memory.LoadSnapshot(snapshotPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("snapshot", snapshotPath).Msg("replaying device snapshot")
		return svc, nil
	}
	svc, err := cfgmgr.New(log)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
