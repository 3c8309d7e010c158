package install

// KernelVariant selects between the rolling kernel and the long-term
// support one. The zero value is LTS, which is also what any unrecognized
// or absent blueprint value resolves to.
type KernelVariant int

const (
	KernelLTS KernelVariant = iota
	KernelLatest
)

// ParseKernelVariant resolves a blueprint kernel string. Only the exact
// string "latest" selects the rolling kernel.
func ParseKernelVariant(s string) KernelVariant {
	if s == "latest" {
		return KernelLatest
	}
	return KernelLTS
}

// Package returns the kernel package name to install.
func (k KernelVariant) Package() string {
	if k == KernelLatest {
		return "linux"
	}
	return "linux-lts"
}

// Suffix returns the variant suffix of kernel image names, e.g. the "-lts"
// in vmlinuz-linux-lts.
func (k KernelVariant) Suffix() string {
	if k == KernelLatest {
		return ""
	}
	return "-lts"
}

// LabelSuffix returns the variant suffix for human-facing boot entry
// labels, e.g. the " LTS" in "Arch Linux LTS".
func (k KernelVariant) LabelSuffix() string {
	if k == KernelLatest {
		return ""
	}
	return " LTS"
}

func (k KernelVariant) String() string {
	if k == KernelLatest {
		return "latest"
	}
	return "lts"
}
