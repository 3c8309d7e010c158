// Package disk turns the declarative partition list of an installation plan
// into concrete per-disk partition numbers and device paths.
//
// Numbering is the part that must never drift: within one disk, partitions
// are numbered 1, 2, 3, ... in the order they appear in the original list,
// and every derived device path and fdisk command uses that number. Disks
// themselves are ordered lexicographically by path, which fixes the order
// of per-disk blocks in the generated script.
package disk

import (
	"fmt"
	"regexp"

	"golang.org/x/exp/slices"
)

// A Partition is one validated partition entry. Size is a free-form fdisk
// size expression without the leading "+"; empty means "use the remaining
// space". Mount is an absolute path or empty.
type Partition struct {
	FS    FSType
	Disk  string
	Size  string
	Mount string
}

// A ResolvedPartition is a Partition with its in-disk number and device
// path filled in.
type ResolvedPartition struct {
	Partition
	Number int    // 1-based, scoped to Disk
	Device string // e.g. /dev/sda1, /dev/nvme0n1p1
}

// NVMe block devices are named /dev/nvme<ctrl>n<namespace> and their
// partitions insert a "p" before the index. Everything else appends the
// index directly.
var nvmeDiskRe = regexp.MustCompile(`/dev/nvme\d+n\d+`)

// PartName derives the device path of partition number n on disk.
func PartName(disk string, n int) string {
	if nvmeDiskRe.MatchString(disk) {
		return fmt.Sprintf("%sp%d", disk, n)
	}
	return fmt.Sprintf("%s%d", disk, n)
}

// A Layout groups partitions by disk and assigns their numbers and device
// paths. It is read-only once built.
type Layout struct {
	disks  []string
	byDisk map[string][]ResolvedPartition
}

// NewLayout resolves the given partitions. The input order is preserved
// within each disk; it is what defines partition numbers.
func NewLayout(partitions []Partition) *Layout {
	layout := &Layout{
		byDisk: make(map[string][]ResolvedPartition),
	}
	for _, p := range partitions {
		onDisk, seen := layout.byDisk[p.Disk]
		if !seen {
			layout.disks = append(layout.disks, p.Disk)
		}
		number := len(onDisk) + 1
		layout.byDisk[p.Disk] = append(onDisk, ResolvedPartition{
			Partition: p,
			Number:    number,
			Device:    PartName(p.Disk, number),
		})
	}
	slices.Sort(layout.disks)
	return layout
}

// Disks returns all disks referenced by the layout, lexicographically
// sorted.
func (l *Layout) Disks() []string {
	return slices.Clone(l.disks)
}

// OnDisk returns the partitions of one disk in partition-number order.
func (l *Layout) OnDisk(disk string) []ResolvedPartition {
	return slices.Clone(l.byDisk[disk])
}

// Partitions returns every partition of the layout, ordered by disk and
// then by partition number.
func (l *Layout) Partitions() []ResolvedPartition {
	var all []ResolvedPartition
	for _, disk := range l.disks {
		all = append(all, l.byDisk[disk]...)
	}
	return all
}

// RootPartition returns the first partition mounted at /, or nil.
func (l *Layout) RootPartition() *ResolvedPartition {
	return l.find(func(p ResolvedPartition) bool {
		return p.Mount == "/"
	})
}

// BootPartition returns the first partition mounted at /boot or /efi, or
// nil.
func (l *Layout) BootPartition() *ResolvedPartition {
	return l.find(func(p ResolvedPartition) bool {
		return p.Mount == "/boot" || p.Mount == "/efi"
	})
}

func (l *Layout) find(match func(ResolvedPartition) bool) *ResolvedPartition {
	for _, disk := range l.disks {
		for _, p := range l.byDisk[disk] {
			if match(p) {
				part := p
				return &part
			}
		}
	}
	return nil
}

// MapPartitions applies op to every partition in layout order and collects
// the results op reports as present. Formatting and mounting both hang off
// this.
func (l *Layout) MapPartitions(op func(ResolvedPartition) (string, bool)) []string {
	var out []string
	for _, p := range l.Partitions() {
		if s, ok := op(p); ok {
			out = append(out, s)
		}
	}
	return out
}
