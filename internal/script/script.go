// Package script compiles a validated installation plan into a shell
// script.
//
// The output has two stages. The first runs on the live ISO: it partitions
// and formats the disks, mounts everything under the target root and
// bootstraps the base system. The second stage is embedded in the first as
// a here-document, written into the target root and executed with
// arch-chroot to configure timezone, locales, hostname, networking, users
// and the bootloader. Ordering is the whole point: every command mutates
// live storage and nothing can be retried, so the compiler fixes the order
// before anything runs.
package script

import (
	"fmt"
	"strings"

	"github.com/osbuild/archstrap/internal/bootloader"
	"github.com/osbuild/archstrap/internal/disk"
	"github.com/osbuild/archstrap/internal/install"
)

const (
	// targetRoot is where the new system is mounted during stage one.
	targetRoot = "/mnt"

	// chrootScriptName is the file the second stage is written to under
	// the target root.
	chrootScriptName = "archstrap-chroot.sh"
	chrootScriptPath = targetRoot + "/" + chrootScriptName

	// chrootMarker delimits the embedded second-stage script.
	chrootMarker = "END_OF_SECOND_SCRIPT"

	// hostsMarker delimits the /etc/hosts here-document inside the
	// second stage.
	hostsMarker = "END_ETC_HOSTS"
)

// Compile renders the installation script for plan. It fails only on
// configuration errors the validator defers to generation time: an
// unrecognized bootloader name, or an efistub setup without the partitions
// it needs.
func Compile(plan *install.Plan) (string, error) {
	bl, err := bootloader.New(plan.Bootloader)
	if err != nil {
		return "", err
	}
	chroot, err := chrootScript(plan, bl)
	if err != nil {
		return "", err
	}

	blocks := []string{
		"#!/bin/sh\n# Script automatically generated by archstrap",
		"echo ':: Syncing system clock'\ntimedatectl set-ntp true",
	}

	var fdiskCmds []string
	for _, dev := range plan.Layout.Disks() {
		fdiskCmds = append(fdiskCmds, fdiskCommand(dev, plan.Layout.OnDisk(dev)))
	}
	blocks = append(blocks, "echo ':: Partitioning disks'\n"+strings.Join(fdiskCmds, "\n"))

	if cmds := plan.Layout.MapPartitions(mkfsCommand); len(cmds) > 0 {
		blocks = append(blocks, "echo ':: Formatting partitions'\n"+strings.Join(cmds, "\n"))
	}
	if cmds := mountCommands(plan.Layout); len(cmds) > 0 {
		blocks = append(blocks, "echo ':: Mounting filesystems'\n"+strings.Join(cmds, "\n"))
	}

	blocks = append(blocks,
		"echo ':: Installing base system'\necho 'Y' | pacstrap "+targetRoot+" "+strings.Join(packages(plan, bl), " "),
		"echo ':: Generating fstab'\ngenfstab -U "+targetRoot+" >> "+targetRoot+"/etc/fstab",
		// The second stage can't run from the live system directly; it is
		// written into the target root, executed with arch-chroot and
		// removed afterwards.
		// See https://bbs.archlinux.org/viewtopic.php?id=204252
		fmt.Sprintf("echo ':: Configuring the new system'\ncat <<%s > %s\n%s%s",
			chrootMarker, chrootScriptPath, chroot, chrootMarker),
		"chmod +x "+chrootScriptPath,
		fmt.Sprintf("arch-chroot %s ./%s\nrm -f %s", targetRoot, chrootScriptName, chrootScriptPath),
		"umount -R "+targetRoot,
	)

	return strings.Join(blocks, "\n\n") + "\n", nil
}

// mountCommands flattens the mount fragments with the root filesystem
// moved to the front. Nested mount points need their parent mounted first,
// and every non-root mount point nests under /.
func mountCommands(layout *disk.Layout) []string {
	var root, rest []string
	for _, p := range layout.Partitions() {
		cmd, ok := mountCommand(p)
		if !ok {
			continue
		}
		if p.Mount == "/" {
			root = append(root, cmd)
		} else {
			rest = append(rest, cmd)
		}
	}
	return append(root, rest...)
}

// packages is the pacstrap install list: base system, the chosen kernel,
// firmware, any extra packages verbatim, whatever the bootloader variant
// needs, and the tools the second stage depends on.
func packages(plan *install.Plan, bl bootloader.Bootloader) []string {
	pkgs := []string{"base", plan.Kernel.Package(), "linux-firmware"}
	if plan.Extra != "" {
		pkgs = append(pkgs, plan.Extra)
	}
	pkgs = append(pkgs, bl.Packages()...)
	return append(pkgs, "efibootmgr", "networkmanager")
}

func chrootScript(plan *install.Plan, bl bootloader.Bootloader) (string, error) {
	bootCmds, err := bl.Commands(plan.Layout, plan.Kernel)
	if err != nil {
		return "", err
	}

	blocks := []string{
		"#!/bin/sh\n# arch-chroot script automatically generated by archstrap",
		"echo ':: Setting timezone'\nln -sf /usr/share/zoneinfo/" + plan.Timezone() + " /etc/localtime\nhwclock --systohc",
		"echo ':: Generating locales'\n" + localeCommands(plan.Locales),
		"echo ':: Setting hostname'\necho '" + plan.Hostname + "' >/etc/hostname",
		hostsFile(plan.Hostname),
		"echo ':: Enabling NetworkManager'\nsystemctl enable --now systemd-resolved\nsystemctl enable NetworkManager.service",
		"echo 'Set root password:'\nuntil passwd; do :; done",
	}
	for _, u := range plan.Users {
		blocks = append(blocks, userBlock(u))
	}
	blocks = append(blocks,
		"echo ':: Installing bootloader'\n"+strings.Join(bootCmds, "\n"),
		"exit",
	)

	return strings.Join(blocks, "\n\n") + "\n", nil
}

// localeCommands uncomments every requested locale in /etc/locale.gen,
// regenerates the locales and writes the first one to /etc/locale.conf as
// the system default.
func localeCommands(locales []string) string {
	lines := []string{"sed "}
	for _, l := range locales {
		lines = append(lines, fmt.Sprintf("    --expression 's/^#%s$/%s/' ", l, l))
	}
	lines = append(lines, "    --in-place /etc/locale.gen")
	sed := strings.Join(lines, "\\\n")
	return sed + "\nlocale-gen\n" + fmt.Sprintf("echo 'LANG=%s' >/etc/locale.conf", locales[0])
}

func hostsFile(hostname string) string {
	lines := []string{
		"127.0.0.1\tlocalhost",
		"::1\tlocalhost",
		"127.0.1.1\t" + hostname,
	}
	return fmt.Sprintf("cat <<%s >/etc/hosts\n%s\n%s", hostsMarker, strings.Join(lines, "\n"), hostsMarker)
}

// userBlock creates one account and prompts for its password, rerunning
// passwd until it succeeds.
func userBlock(u install.User) string {
	cmd := "useradd --create-home"
	if len(u.Groups) > 0 {
		cmd += " --groups " + strings.Join(u.Groups, ",")
	}
	if u.Shell != "" {
		cmd += " --shell " + u.Shell
	}
	cmd += " " + u.Name
	return fmt.Sprintf("%s\necho 'Set password for %s:'\nuntil passwd %s; do :; done", cmd, u.Name, u.Name)
}
