package memory

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"devtree/internal/domain"
)

// Snapshot is the YAML form of a device tree:
//
//	root:
//	  id: HTREE\ROOT\0
//	  status: 0x0180000a
//	  children:
//	    - id: ROOT\ACPI_HAL\0000
//	      status: 0x0180200a
//	      properties:
//	        service: ACPI_HAL
//	      child_error: 19
//	unlisted:
//	  - SWD\GONE\1
type Snapshot struct {
	Root     *Device  `yaml:"root"`
	Unlisted []string `yaml:"unlisted,omitempty"`
}

// ParseSnapshot decodes a snapshot document and builds a Service for it
func ParseSnapshot(data []byte) (*Service, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Root == nil {
		return nil, fmt.Errorf("snapshot has no root device")
	}
	if err := validateDevice(snap.Root, "root"); err != nil {
		return nil, err
	}
	return NewService(snap.Root, WithUnlisted(snap.Unlisted...)), nil
}

func validateDevice(d *Device, path string) error {
	if d.ID == "" {
		return fmt.Errorf("snapshot device at %s has no id", path)
	}
	for i, child := range d.Children {
		if child == nil {
			return fmt.Errorf("snapshot device at %s has an empty child %d", path, i)
		}
		if err := validateDevice(child, fmt.Sprintf("%s/%d", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// LoadSnapshot reads a snapshot file. A leading ~ is expanded to the home
// directory.
func LoadSnapshot(path string) (*Service, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// SnapshotFromTree captures a device tree as a Snapshot. Query failures
// recorded on the nodes are kept as injected failures, so a replay fails
// the same way. Identifiers in listed that are not part of the tree are
// kept as unlisted.
func SnapshotFromTree(root *domain.TreeNode, listed []string) *Snapshot {
	inTree := make(map[string]bool)
	snap := &Snapshot{Root: deviceFromNode(root, inTree)}
	for _, id := range listed {
		if !inTree[id] {
			snap.Unlisted = append(snap.Unlisted, id)
		}
	}
	return snap
}

func deviceFromNode(n *domain.TreeNode, inTree map[string]bool) *Device {
	rec := n.Record
	d := &Device{ID: rec.ID}

	switch {
	case rec.ID == "":
		d.ID = fmt.Sprintf("UNREADABLE\\NODE\\%d", rec.Node)
		d.IDError = uint32(domain.Code(n.Err))
	case !rec.StatusKnown:
		if code := domain.Code(n.Err); code == domain.CRNoSuchDevInst {
			d.Phantom = true
		} else {
			d.StatusError = uint32(code)
		}
	default:
		d.Status = uint32(rec.Status)
		d.Problem = uint32(rec.Problem)
	}
	inTree[d.ID] = true

	d.ChildError = uint32(domain.Code(n.ChildErr))
	d.SiblingError = uint32(domain.Code(n.SiblingErr))
	d.Properties = PropertiesFrom(n.Properties)

	for _, child := range n.Children {
		d.Children = append(d.Children, deviceFromNode(child, inTree))
	}
	return d
}

// Marshal encodes the snapshot as YAML
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
