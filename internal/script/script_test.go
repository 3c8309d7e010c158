package script_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osbuild/archstrap/internal/disk"
	"github.com/osbuild/archstrap/internal/install"
	"github.com/osbuild/archstrap/internal/script"
)

// Classic single-disk GRUB setup: root first in the blueprint, ESP second.
func TestCompileGrub(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "archlinux",
		Region:     "Europe",
		City:       "London",
		Locales:    []string{"en_US.UTF-8"},
		Kernel:     install.KernelLTS,
		Bootloader: "grub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/"},
			{FS: disk.FSFat32, Disk: "/dev/sda", Size: "500M", Mount: "/boot"},
		}),
	}

	want := `#!/bin/sh
# Script automatically generated by archstrap

echo ':: Syncing system clock'
timedatectl set-ntp true

echo ':: Partitioning disks'
echo -e "g\nn\n1\n\n\nt\nlinux\nn\n2\n\n+500M\nt\n2\nuefi\n\nw" | fdisk /dev/sda &>/dev/null

echo ':: Formatting partitions'
mkfs.ext4 /dev/sda1
mkfs.fat -F 32 /dev/sda2

echo ':: Mounting filesystems'
mkdir -p /mnt/ && mount /dev/sda1 /mnt/
mkdir -p /mnt/boot && mount /dev/sda2 /mnt/boot

echo ':: Installing base system'
echo 'Y' | pacstrap /mnt base linux-lts linux-firmware grub efibootmgr networkmanager

echo ':: Generating fstab'
genfstab -U /mnt >> /mnt/etc/fstab

echo ':: Configuring the new system'
cat <<END_OF_SECOND_SCRIPT > /mnt/archstrap-chroot.sh
#!/bin/sh
# arch-chroot script automatically generated by archstrap

echo ':: Setting timezone'
ln -sf /usr/share/zoneinfo/Europe/London /etc/localtime
hwclock --systohc

echo ':: Generating locales'
sed \
    --expression 's/^#en_US.UTF-8$/en_US.UTF-8/' \
    --in-place /etc/locale.gen
locale-gen
echo 'LANG=en_US.UTF-8' >/etc/locale.conf

echo ':: Setting hostname'
echo 'archlinux' >/etc/hostname

cat <<END_ETC_HOSTS >/etc/hosts
127.0.0.1	localhost
::1	localhost
127.0.1.1	archlinux
END_ETC_HOSTS

echo ':: Enabling NetworkManager'
systemctl enable --now systemd-resolved
systemctl enable NetworkManager.service

echo 'Set root password:'
until passwd; do :; done

echo ':: Installing bootloader'
grub-install --target=x86_64-efi --bootloader-id=GRUB --recheck
grub-mkconfig -o /boot/grub/grub.cfg

exit
END_OF_SECOND_SCRIPT

chmod +x /mnt/archstrap-chroot.sh

arch-chroot /mnt ./archstrap-chroot.sh
rm -f /mnt/archstrap-chroot.sh

umount -R /mnt
`

	got, err := script.Compile(plan)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

// EFI stub on an NVMe disk, region-only timezone, two locales, extra
// package, additional users. The root partition is declared last but must
// be mounted first, and the swap partition gets swapon instead of a mount.
func TestCompileEfistubNVMe(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "vault",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8", "de_DE.UTF-8"},
		Kernel:     install.KernelLatest,
		Extra:      "htop",
		Bootloader: "efistub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSSwap, Disk: "/dev/nvme0n1", Size: "8G"},
			{FS: disk.FSFat32, Disk: "/dev/nvme0n1", Size: "500M", Mount: "/boot"},
			{FS: disk.FSExt4, Disk: "/dev/nvme0n1", Mount: "/"},
		}),
		Users: []install.User{
			{Name: "archie", Groups: []string{"wheel", "video"}, Shell: "/bin/zsh"},
			{Name: "guest"},
		},
	}

	want := `#!/bin/sh
# Script automatically generated by archstrap

echo ':: Syncing system clock'
timedatectl set-ntp true

echo ':: Partitioning disks'
echo -e "g\nn\n1\n\n+8G\nt\nswap\nn\n2\n\n+500M\nt\n2\nuefi\nn\n3\n\n\nt\n3\nlinux\n\nw" | fdisk /dev/nvme0n1 &>/dev/null

echo ':: Formatting partitions'
mkswap /dev/nvme0n1p1
mkfs.fat -F 32 /dev/nvme0n1p2
mkfs.ext4 /dev/nvme0n1p3

echo ':: Mounting filesystems'
mkdir -p /mnt/ && mount /dev/nvme0n1p3 /mnt/
swapon /dev/nvme0n1p1
mkdir -p /mnt/boot && mount /dev/nvme0n1p2 /mnt/boot

echo ':: Installing base system'
echo 'Y' | pacstrap /mnt base linux linux-firmware htop efibootmgr networkmanager

echo ':: Generating fstab'
genfstab -U /mnt >> /mnt/etc/fstab

echo ':: Configuring the new system'
cat <<END_OF_SECOND_SCRIPT > /mnt/archstrap-chroot.sh
#!/bin/sh
# arch-chroot script automatically generated by archstrap

echo ':: Setting timezone'
ln -sf /usr/share/zoneinfo/UTC /etc/localtime
hwclock --systohc

echo ':: Generating locales'
sed \
    --expression 's/^#en_US.UTF-8$/en_US.UTF-8/' \
    --expression 's/^#de_DE.UTF-8$/de_DE.UTF-8/' \
    --in-place /etc/locale.gen
locale-gen
echo 'LANG=en_US.UTF-8' >/etc/locale.conf

echo ':: Setting hostname'
echo 'vault' >/etc/hostname

cat <<END_ETC_HOSTS >/etc/hosts
127.0.0.1	localhost
::1	localhost
127.0.1.1	vault
END_ETC_HOSTS

echo ':: Enabling NetworkManager'
systemctl enable --now systemd-resolved
systemctl enable NetworkManager.service

echo 'Set root password:'
until passwd; do :; done

useradd --create-home --groups wheel,video --shell /bin/zsh archie
echo 'Set password for archie:'
until passwd archie; do :; done

useradd --create-home guest
echo 'Set password for guest:'
until passwd guest; do :; done

echo ':: Installing bootloader'
efibootmgr --disk /dev/nvme0n1 --part 2 --create --label "Arch Linux" --loader /vmlinuz-linux --unicode='root=/dev/nvme0n1p3 rw initrd=\initramfs-linux.img' --verbose

exit
END_OF_SECOND_SCRIPT

chmod +x /mnt/archstrap-chroot.sh

arch-chroot /mnt ./archstrap-chroot.sh
rm -f /mnt/archstrap-chroot.sh

umount -R /mnt
`

	got, err := script.Compile(plan)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

// The root mount always comes first in the mount section, whatever the
// blueprint order was.
func TestCompileRootMountedFirst(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "host",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8"},
		Bootloader: "grub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/var"},
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/home"},
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/"},
		}),
	}

	got, err := script.Compile(plan)
	require.NoError(t, err)

	rootAt := strings.Index(got, "mount /dev/sda3 /mnt/\n")
	varAt := strings.Index(got, "mount /dev/sda1 /mnt/var")
	homeAt := strings.Index(got, "mount /dev/sda2 /mnt/home")
	require.NotEqual(t, -1, rootAt)
	require.NotEqual(t, -1, varAt)
	require.NotEqual(t, -1, homeAt)
	assert.Less(t, rootAt, varAt)
	assert.Less(t, rootAt, homeAt)
	// non-root mounts keep their relative order
	assert.Less(t, varAt, homeAt)
}

// Disks get one fdisk block each, ordered by device path, with numbering
// restarting at 1 per disk.
func TestCompileMultipleDisks(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "host",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8"},
		Bootloader: "grub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSExt4, Disk: "/dev/sdb", Mount: "/"},
			{FS: disk.FSFat32, Disk: "/dev/sda", Size: "500M", Mount: "/boot"},
		}),
	}

	got, err := script.Compile(plan)
	require.NoError(t, err)

	sdaAt := strings.Index(got, `| fdisk /dev/sda &>/dev/null`)
	sdbAt := strings.Index(got, `| fdisk /dev/sdb &>/dev/null`)
	require.NotEqual(t, -1, sdaAt)
	require.NotEqual(t, -1, sdbAt)
	assert.Less(t, sdaAt, sdbAt)

	assert.Contains(t, got, "mkfs.fat -F 32 /dev/sda1\n")
	assert.Contains(t, got, "mkfs.ext4 /dev/sdb1\n")
}

// Unknown filesystems are partitioned as plain Linux partitions and
// mounted, but never formatted.
func TestCompileUnrecognizedFormat(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "host",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8"},
		Bootloader: "grub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSUnrecognized, Disk: "/dev/sda", Mount: "/"},
		}),
	}

	got, err := script.Compile(plan)
	require.NoError(t, err)

	assert.NotContains(t, got, "Formatting partitions")
	assert.NotContains(t, got, "mkfs")
	assert.Contains(t, got, `echo -e "g\nn\n1\n\n\nt\nlinux\n\nw" | fdisk /dev/sda &>/dev/null`)
	assert.Contains(t, got, "mkdir -p /mnt/ && mount /dev/sda1 /mnt/\n")
}

func TestCompileInvalidBootloader(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "host",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8"},
		Bootloader: "refind",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/"},
		}),
	}

	_, err := script.Compile(plan)
	require.Error(t, err)
	var ie *install.Error
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, install.ErrorInvalidBootloader, ie.ID)
}

func TestCompileEfistubNeedsPartitions(t *testing.T) {
	plan := &install.Plan{
		Hostname:   "host",
		Region:     "UTC",
		Locales:    []string{"en_US.UTF-8"},
		Bootloader: "efistub",
		Layout: disk.NewLayout([]disk.Partition{
			{FS: disk.FSExt4, Disk: "/dev/sda", Mount: "/"},
		}),
	}

	_, err := script.Compile(plan)
	require.Error(t, err)
	var ie *install.Error
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, install.ErrorMissingBootPartition, ie.ID)
}
