package bootloader

import (
	"fmt"
	"regexp"

	"github.com/osbuild/archstrap/internal/disk"
	"github.com/osbuild/archstrap/internal/install"
)

// efistub registers the kernel image directly as a firmware boot entry, so
// it installs no boot manager package. It needs to know both the boot
// partition (where the firmware reads the kernel from) and the root
// partition (for the kernel command line).
type efistub struct{}

var trailingDigits = regexp.MustCompile(`\d+$`)

func (efistub) Name() string {
	return "efistub"
}

func (efistub) Packages() []string {
	return nil
}

func (efistub) Commands(layout *disk.Layout, kernel install.KernelVariant) ([]string, error) {
	boot := layout.BootPartition()
	if boot == nil {
		return nil, install.Errorf(install.ErrorMissingBootPartition,
			"using efistub, but no boot partition was detected")
	}
	root := layout.RootPartition()
	if root == nil {
		return nil, install.Errorf(install.ErrorMissingRootPartition,
			"using efistub, but no root partition was detected")
	}

	cmd := fmt.Sprintf(
		"efibootmgr --disk %s --part %s --create --label \"Arch Linux%s\" --loader /vmlinuz-linux%s --unicode='root=%s rw initrd=\\initramfs-linux%s.img' --verbose",
		boot.Disk,
		trailingDigits.FindString(boot.Device),
		kernel.LabelSuffix(),
		kernel.Suffix(),
		root.Device,
		kernel.Suffix(),
	)
	return []string{cmd}, nil
}
