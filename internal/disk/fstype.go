package disk

// FSType is the filesystem a partition gets formatted with. Values outside
// the recognized set collapse into FSUnrecognized; later stages decide what
// that means for them (fdisk uses the generic Linux type, mkfs skips the
// partition entirely).
type FSType int

const (
	FSUnrecognized FSType = iota
	FSExt2
	FSExt3
	FSExt4
	FSFat32
	FSSwap
)

// ParseFSType maps a blueprint format string to an FSType.
func ParseFSType(s string) FSType {
	switch s {
	case "ext2":
		return FSExt2
	case "ext3":
		return FSExt3
	case "ext4":
		return FSExt4
	case "fat32":
		return FSFat32
	case "swap":
		return FSSwap
	default:
		return FSUnrecognized
	}
}

func (t FSType) String() string {
	switch t {
	case FSExt2:
		return "ext2"
	case FSExt3:
		return "ext3"
	case FSExt4:
		return "ext4"
	case FSFat32:
		return "fat32"
	case FSSwap:
		return "swap"
	default:
		return "unrecognized"
	}
}
