// Package install validates a raw blueprint into an installation Plan.
//
// Validation distinguishes exactly two outcomes per finding: recoverable
// defaults (missing locales, partition format, mount point) which are
// substituted and reported through Diagnostics, and fatal errors (missing
// hostname, bootloader or partitions, invalid timezone, relative mount
// path) which abort with an *Error. The check order is fixed; the first
// fatal finding wins.
package install

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/osbuild/archstrap/internal/blueprint"
	"github.com/osbuild/archstrap/internal/common"
	"github.com/osbuild/archstrap/internal/disk"
)

// DefaultZoneinfoDir is where the timezone database lives on the host that
// runs the generator.
const DefaultZoneinfoDir = "/usr/share/zoneinfo"

// DefaultLocale is substituted when the blueprint names no locales.
const DefaultLocale = "en_US.UTF-8"

// A User is one account to create besides root.
type User struct {
	Name   string
	Groups []string
	Shell  string
}

// A Plan is a validated installation description. It is read-only once
// built; the script compiler consumes it without modifying it.
type Plan struct {
	Hostname   string
	Region     string
	City       string
	Locales    []string
	Kernel     KernelVariant
	Extra      string
	Bootloader string
	Layout     *disk.Layout
	Users      []User
}

// Timezone returns the timezone database entry path relative to the
// zoneinfo root, e.g. "Europe/London", or just the region when no city is
// set (e.g. "UTC").
func (p *Plan) Timezone() string {
	return timezonePath(p.Region, p.City)
}

func timezonePath(region, city string) string {
	if city == "" {
		return region
	}
	return region + "/" + city
}

// NewPlan validates bp and builds the Plan. zoneinfoDir is the timezone
// database root to validate against; empty selects DefaultZoneinfoDir.
// Warnings for substituted defaults go to diag, which may be nil when the
// caller doesn't care.
func NewPlan(bp *blueprint.Blueprint, zoneinfoDir string, diag *Diagnostics) (*Plan, error) {
	if diag == nil {
		diag = &Diagnostics{}
	}
	if zoneinfoDir == "" {
		zoneinfoDir = DefaultZoneinfoDir
	}

	kernel := ParseKernelVariant(common.ValueOrEmpty(bp.Kernel))

	locales := bp.Locales
	if len(locales) == 0 {
		diag.Warnf("locales", "locales not specified; defaulting to '%s'", DefaultLocale)
		locales = []string{DefaultLocale}
	}

	region := common.ValueOrEmpty(bp.Region)
	city := common.ValueOrEmpty(bp.City)
	// The entry must be a regular file: a bare region that is a directory
	// (e.g. "Europe" without a city) doesn't name a timezone.
	info, err := os.Stat(filepath.Join(zoneinfoDir, timezonePath(region, city)))
	if err != nil || info.IsDir() {
		return nil, Errorf(ErrorInvalidTimezone, "invalid zoneinfo (region: %q, city: %q)", region, city)
	}

	hostname := common.ValueOrEmpty(bp.Hostname)
	if hostname == "" {
		return nil, Errorf(ErrorMissingHostname, "hostname not specified")
	}

	bootloader := common.ValueOrEmpty(bp.Bootloader)
	if bootloader == "" {
		return nil, Errorf(ErrorMissingBootloader, "no bootloader specified")
	}

	if len(bp.Partitions) == 0 {
		return nil, Errorf(ErrorMissingPartitions, "no partitions specified")
	}

	partitions := make([]disk.Partition, 0, len(bp.Partitions))
	for i, p := range bp.Partitions {
		if common.ValueOrEmpty(p.Disk) == "" {
			return nil, Errorf(ErrorMissingPartitionDisk, "partition disk not specified")
		}

		format := common.ValueOrEmpty(p.Format)
		if format == "" {
			diag.Warnf(partitionField(i, "format"), "partition format not specified; defaulting to 'ext4'")
			format = "ext4"
		}

		mount := common.ValueOrEmpty(p.Mount)
		if mount == "" {
			diag.Warnf(partitionField(i, "mount"), "partition mount not specified; it's not going to be mounted")
		} else if !strings.HasPrefix(mount, "/") {
			return nil, Errorf(ErrorInvalidMountPoint, "mount point is a relative path: %q", mount)
		}

		partitions = append(partitions, disk.Partition{
			FS:    disk.ParseFSType(format),
			Disk:  *p.Disk,
			Size:  common.ValueOrEmpty(p.Size),
			Mount: mount,
		})
	}

	users := make([]User, 0, len(bp.Users))
	for _, u := range bp.Users {
		if common.ValueOrEmpty(u.Name) == "" {
			return nil, Errorf(ErrorMissingUserName, "no username specified")
		}
		users = append(users, User{
			Name:   *u.Name,
			Groups: u.Groups,
			Shell:  common.ValueOrEmpty(u.Shell),
		})
	}

	return &Plan{
		Hostname:   hostname,
		Region:     region,
		City:       city,
		Locales:    locales,
		Kernel:     kernel,
		Extra:      common.ValueOrEmpty(bp.Extra),
		Bootloader: bootloader,
		Layout:     disk.NewLayout(partitions),
		Users:      users,
	}, nil
}

func partitionField(i int, sub string) string {
	return "partitions[" + strconv.Itoa(i) + "]." + sub
}
