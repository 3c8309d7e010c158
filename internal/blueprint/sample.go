package blueprint

// Sample returns an annotated blueprint in YAML form, meant as a starting
// point for editing. It decodes cleanly with Decode(..., FormatYAML).
func Sample() string {
	return `# Basic Arch installation; latest kernel with a single root partition,
# booted with GRUB.
# It uses /dev/sda for its partitions.

hostname: archlinux

# Users are optional. Remember: root is always a default user.
users:
  - main:
    name: archie
    groups: [ wheel ]
    # note: use full paths
    # note: archstrap doesn't check that the shell is valid
    shell: /bin/bash

# user preferences
bootloader: grub
extra: vim

# Timezone info, as per /usr/share/zoneinfo/<Region>/<City>
# For example purposes, use Europe/London
region: Europe
city: London

# List of locales to use and generate. By default, when nothing is specified,
# 'en_US.UTF-8' is assumed.
locales:
  - en_US.UTF-8

# alternatively: 'lts'
kernel: latest

# you have to configure partitions manually
partitions:
  # the name of the array entry serves no purpose other than readability
  - root:
    format: ext4
    mount: /
    disk: /dev/sda
    # when there's no 'size' property, it's assumed you want the remaining
    # space on the disk
`
}
