package script

import (
	"fmt"
	"strings"

	"github.com/osbuild/archstrap/internal/disk"
)

// fdiskPartitionType maps a filesystem family to the symbolic fdisk type
// alias used when retagging the partition.
func fdiskPartitionType(fs disk.FSType) string {
	switch fs {
	case disk.FSFat32:
		return "uefi" // EFI System
	case disk.FSSwap:
		return "swap" // Linux swap
	default:
		return "linux" // Linux filesystem
	}
}

// fdiskFragment renders the input chunk that creates one partition inside
// an fdisk session: new partition at its number, default start sector,
// explicit size when given (empty means take the remaining space), then
// retag the type. The "\n" sequences are literal text here; echo -e turns
// them into newlines when the script runs.
func fdiskFragment(p disk.ResolvedPartition) string {
	size := ""
	if p.Size != "" {
		size = "+" + p.Size
	}
	// fdisk auto-selects the first partition, so its 't' takes no number
	target := ""
	if p.Number != 1 {
		target = fmt.Sprintf(`\n%d`, p.Number)
	}
	return fmt.Sprintf(`n\n%d\n\n%s\nt%s\n%s\n`, p.Number, size, target, fdiskPartitionType(p.FS))
}

// fdiskCommand is the single shell line that partitions one whole disk:
// fresh GPT label, every partition fragment in number order, then write.
func fdiskCommand(dev string, parts []disk.ResolvedPartition) string {
	var b strings.Builder
	b.WriteString(`echo -e "g\n`)
	for _, p := range parts {
		b.WriteString(fdiskFragment(p))
	}
	fmt.Fprintf(&b, `\nw" | fdisk %s &>/dev/null`, dev)
	return b.String()
}

// mkfsCommand formats one partition. Filesystems it doesn't know how to
// make produce nothing; the partition is left unformatted rather than
// failing generation.
func mkfsCommand(p disk.ResolvedPartition) (string, bool) {
	var mkfs string
	switch p.FS {
	case disk.FSExt2:
		mkfs = "mkfs.ext2"
	case disk.FSExt3:
		mkfs = "mkfs.ext3"
	case disk.FSExt4:
		mkfs = "mkfs.ext4"
	case disk.FSFat32:
		mkfs = "mkfs.fat -F 32"
	case disk.FSSwap:
		mkfs = "mkswap"
	default:
		return "", false
	}
	return mkfs + " " + p.Device, true
}

// mountCommand activates swap, mounts the partition under the target root,
// or produces nothing for partitions without a mount point.
func mountCommand(p disk.ResolvedPartition) (string, bool) {
	if p.FS == disk.FSSwap {
		return "swapon " + p.Device, true
	}
	if p.Mount == "" {
		return "", false
	}
	return fmt.Sprintf("mkdir -p %s%s && mount %s %s%s",
		targetRoot, p.Mount, p.Device, targetRoot, p.Mount), true
}
