// Package inventory knows the on-disk layout of the devices directory:
//
//	<devices_path>/
//	  <device_id>/
//	    config.yaml        device descriptor (authored out of band)
//	    sketch.ino.bin     images written by `manufacture create-image`
//	    ...
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/descriptor"
	"github.com/tyr-firmware/tyr/internal/logging"
)

// ImageExtensions are the build outputs reported by Images.
var ImageExtensions = []string{".bin", ".hex", ".elf", ".uf2"}

// Device is one device directory.
type Device struct {
	// ID is the directory name
	ID string
	// Dir is the device directory
	Dir string
	// Descriptor is the parsed descriptor, nil if absent or invalid
	Descriptor *descriptor.Descriptor
	// Err is the descriptor load error, nil if loaded or absent
	Err error
	// HasDescriptor reports whether config.yaml exists
	HasDescriptor bool
}

// Image is one build artifact inside a device directory.
type Image struct {
	DeviceID string
	Path     string
	Size     int64
	ModTime  time.Time
}

// DeviceDir returns the directory of device id.
func DeviceDir(devicesPath, id string) string {
	return filepath.Join(devicesPath, id)
}

// DescriptorPath returns the descriptor file of device id.
func DescriptorPath(devicesPath, id string) string {
	return filepath.Join(devicesPath, id, descriptor.Filename)
}

// List returns one Device per sub-directory of devicesPath, sorted by id.
// Descriptor problems are recorded per device rather than failing the list.
func List(devicesPath string, logger *zap.Logger) ([]Device, error) {
	logger = logging.OrNop(logger)

	entries, err := os.ReadDir(devicesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read devices path %s: %w", devicesPath, err)
	}

	devices := make([]Device, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		dev := Device{
			ID:  entry.Name(),
			Dir: filepath.Join(devicesPath, entry.Name()),
		}

		d, err := descriptor.Load(dev.ID, DescriptorPath(devicesPath, dev.ID))
		var notFound *descriptor.NotFoundError
		switch {
		case err == nil:
			dev.Descriptor = d
			dev.HasDescriptor = true
		case errors.As(err, &notFound):
			logger.Debug("device has no descriptor", zap.String("device_id", dev.ID))
		default:
			dev.HasDescriptor = true
			dev.Err = err
			logger.Warn("invalid device descriptor",
				zap.String("device_id", dev.ID),
				zap.Error(err),
			)
		}

		devices = append(devices, dev)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

// Images returns the build artifacts of every device, sorted by device id
// then path.
func Images(devicesPath string) ([]Image, error) {
	var images []Image

	err := filepath.WalkDir(devicesPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImage(path) {
			return nil
		}

		rel, err := filepath.Rel(devicesPath, path)
		if err != nil {
			return err
		}
		parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
		if len(parts) < 2 {
			// Artifacts directly under devices_path belong to no device
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		images = append(images, Image{
			DeviceID: parts[0],
			Path:     path,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan devices path %s: %w", devicesPath, err)
	}

	sort.Slice(images, func(i, j int) bool {
		if images[i].DeviceID != images[j].DeviceID {
			return images[i].DeviceID < images[j].DeviceID
		}
		return images[i].Path < images[j].Path
	})
	return images, nil
}

// ImageCounts returns the number of build artifacts per device id.
// Devices without artifacts are absent from the map.
func ImageCounts(devicesPath string) (map[string]int, error) {
	images, err := Images(devicesPath)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, img := range images {
		counts[img.DeviceID]++
	}
	return counts, nil
}

// Create allocates a new device id and creates its directory. The
// descriptor is not written.
func Create(devicesPath string) (string, error) {
	if _, err := os.Stat(devicesPath); err != nil {
		return "", fmt.Errorf("devices path %s is not usable: %w", devicesPath, err)
	}

	id := uuid.NewString()
	if err := os.Mkdir(DeviceDir(devicesPath, id), 0755); err != nil {
		return "", fmt.Errorf("failed to create device directory: %w", err)
	}
	return id, nil
}

func isImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
