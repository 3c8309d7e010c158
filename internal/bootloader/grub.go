package bootloader

import (
	"github.com/osbuild/archstrap/internal/disk"
	"github.com/osbuild/archstrap/internal/install"
)

type grub struct{}

func (grub) Name() string {
	return "grub"
}

func (grub) Packages() []string {
	return []string{"grub"}
}

func (grub) Commands(layout *disk.Layout, kernel install.KernelVariant) ([]string, error) {
	return []string{
		"grub-install --target=x86_64-efi --bootloader-id=GRUB --recheck",
		"grub-mkconfig -o /boot/grub/grub.cfg",
	}, nil
}
