package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/sirupsen/logrus"

	"github.com/denysvitali/webtree/internal/models"
)

// DiskUsage returns usage of the filesystem holding path using gopsutil
func DiskUsage(path string) (models.DiskStats, error) {
	if path == "" {
		path = "/"
	}
	usage, err := disk.Usage(path)
	if err != nil {
		return models.DiskStats{Path: path}, fmt.Errorf("failed to get disk usage for %s: %w", path, err)
	}
	return models.DiskStats{
		Path:    path,
		Total:   usage.Total,
		Used:    usage.Used,
		Free:    usage.Free,
		Percent: usage.UsedPercent,
	}, nil
}

// CheckDiskSpace logs the usage of the filesystem holding path and warns when
// it is above warnPercent. It reports whether the warning fired.
// Failures to query the disk are logged and otherwise ignored.
func CheckDiskSpace(logger *logrus.Logger, path string, warnPercent float64) bool {
	stats, err := DiskUsage(path)
	if err != nil {
		logger.Warnf("Failed to get disk usage: %v", err)
		return false
	}

	logger.WithFields(logrus.Fields{
		"path":    stats.Path,
		"free":    stats.Free,
		"percent": fmt.Sprintf("%.1f", stats.Percent),
	}).Debug("Disk usage")

	if warnPercent > 0 && stats.Percent >= warnPercent {
		logger.Warnf("Filesystem holding %s is %.1f%% full, writing indexes may fail", stats.Path, stats.Percent)
		return true
	}
	return false
}
