// Package bootloader holds the per-bootloader command strategies. The
// variant is picked by the name the blueprint configured; everything the
// rest of the compiler needs from it sits behind the Bootloader interface.
package bootloader

import (
	"github.com/osbuild/archstrap/internal/disk"
	"github.com/osbuild/archstrap/internal/install"
)

// A Bootloader contributes the boot-setup commands of the chroot stage and
// the packages its variant needs installed.
type Bootloader interface {
	Name() string

	// Packages lists extra packages pacstrap must install for this
	// bootloader. May be empty.
	Packages() []string

	// Commands returns the chroot-stage commands that set up booting.
	// Variants that need specific partitions report a fatal error when
	// the layout doesn't provide them.
	Commands(layout *disk.Layout, kernel install.KernelVariant) ([]string, error)
}

// New returns the strategy for a validated bootloader name. Anything but
// the recognized names is a fatal configuration error.
func New(name string) (Bootloader, error) {
	switch name {
	case "grub":
		return grub{}, nil
	case "efistub":
		return efistub{}, nil
	default:
		return nil, install.Errorf(install.ErrorInvalidBootloader, "invalid bootloader: %q", name)
	}
}
